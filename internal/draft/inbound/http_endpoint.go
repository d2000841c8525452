package inbound

import (
	"github.com/draftwise/draftwise/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/drafts", end.Create)
	r.GET("/drafts", end.List)
	r.GET("/drafts/:id", end.Get)
	r.PUT("/drafts/:id", end.Update)
	r.DELETE("/drafts/:id", end.Delete)
	r.POST("/drafts/:id/send", end.Send)
	r.POST("/generate", end.Generate)
}
