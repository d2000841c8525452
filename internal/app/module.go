package app

import (
	"log/slog"
	"os"

	"github.com/draftwise/draftwise/internal/draft"
	draftdb "github.com/draftwise/draftwise/internal/draft/outbound/db"
	"github.com/draftwise/draftwise/internal/recipient"
	recipientdb "github.com/draftwise/draftwise/internal/recipient/outbound/db"
)

func (a *App) initModules() {
	// The draft module resolves recipients through the same store the
	// recipient module writes to.
	recipientStore := recipientdb.NewDB(a.dbConn, a.ins)

	if err := recipient.New(recipient.Dependency{
		Store:      recipientStore,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.oid,
		Clock:      a.clock,
		Validator:  a.validator,
		Router:     a.router,
	}); err != nil {
		slog.Error("failed to init module recipient", "error", err)
		os.Exit(1)
	}

	if err := draft.New(draft.Dependency{
		Store:          draftdb.NewDB(a.dbConn, a.ins),
		RecipientStore: recipientStore,
		Mail:           a.mail,
		Config:         a.config,
		Instrument:     a.ins,
		UID:            a.oid,
		Clock:          a.clock,
		Validator:      a.validator,
		Router:         a.router,
	}); err != nil {
		slog.Error("failed to init module draft", "error", err)
		os.Exit(1)
	}
}
