package app

import (
	"context"
	"net/http"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/pkg/clock"
	"github.com/draftwise/draftwise/internal/pkg/config"
	"github.com/draftwise/draftwise/internal/pkg/goroutine"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/mail"
	"github.com/draftwise/draftwise/internal/pkg/router"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	oid       uid.StringID
	uuid      uid.StringID

	// resources
	dbConn *badger.DB
	mail   mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
