package recipient

import (
	"github.com/draftwise/draftwise/internal/pkg/clock"
	"github.com/draftwise/draftwise/internal/pkg/config"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/router"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	"github.com/draftwise/draftwise/internal/recipient/inbound"
	"github.com/draftwise/draftwise/internal/recipient/outbound/db"
	"github.com/draftwise/draftwise/internal/recipient/usecase"
)

type Dependency struct {
	Store      *db.DB
	Config     config.Config
	Instrument instrument.Instrumentation
	UID        uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	uc := usecase.NewRecipient(usecase.Dependency{
		RepoDB:     dep.Store,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
