package inbound

import (
	"github.com/draftwise/draftwise/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/recipients", end.Create)
	r.GET("/recipients", end.List)
	r.GET("/recipients/:id", end.Get)
	r.PUT("/recipients/:id", end.Update)
	r.DELETE("/recipients/:id", end.Delete)
}
