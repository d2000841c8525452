package draft

import (
	"github.com/draftwise/draftwise/internal/draft/inbound"
	"github.com/draftwise/draftwise/internal/draft/outbound/db"
	"github.com/draftwise/draftwise/internal/draft/outbound/genai"
	"github.com/draftwise/draftwise/internal/draft/outbound/mailer"
	"github.com/draftwise/draftwise/internal/draft/usecase"
	"github.com/draftwise/draftwise/internal/pkg/clock"
	"github.com/draftwise/draftwise/internal/pkg/config"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/mail"
	"github.com/draftwise/draftwise/internal/pkg/router"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	recipientdb "github.com/draftwise/draftwise/internal/recipient/outbound/db"
)

type Dependency struct {
	Store          *db.DB
	RecipientStore *recipientdb.DB
	Mail           mail.Mail
	Config         config.Config
	Instrument     instrument.Instrumentation
	UID            uid.StringID
	Clock          clock.Clocker
	Validator      validator.Validator
	Router         *router.Router
}

func New(dep Dependency) error {
	genAI := genai.NewClient(genai.Config{
		APIKey:  dep.Config.GetString("genai.api_key"),
		BaseURL: dep.Config.GetString("genai.base_url"),
		Model:   dep.Config.GetString("genai.model"),
		Timeout: dep.Config.GetSecond("genai.timeout_seconds"),
	}, dep.Instrument)

	uc := usecase.NewDraft(usecase.Dependency{
		RepoDB:        dep.Store,
		RepoRecipient: dep.RecipientStore,
		RepoMailer:    mailer.New(dep.Mail, dep.Instrument),
		RepoGenAI:     genAI,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Validator:     dep.Validator,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
