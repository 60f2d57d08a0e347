// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/MWatkins-UH/chain-pouch-project/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/MWatkins-UH/chain-pouch-project/app/services/ledger/handlers/v1/maintgrp"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/events"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Chain *ledger.Chain
	Evts  *events.Events[ledger.Event]
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", lgh.Events)
	app.Handle(http.MethodGet, version, "/genesis", lgh.Genesis)
	app.Handle(http.MethodGet, version, "/balance", lgh.Balance)
	app.Handle(http.MethodGet, version, "/verify", lgh.Verify)
	app.Handle(http.MethodGet, version, "/blocks/latest", lgh.LatestBlock)
	app.Handle(http.MethodGet, version, "/blocks/list", lgh.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/list/:tid", lgh.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/:number", lgh.BlockByNumber)
	app.Handle(http.MethodPost, version, "/blocks/add", lgh.AddBlock)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	mgh := maintgrp.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
	}

	app.Handle(http.MethodPut, version, "/maintenance/rebuild", mgh.Rebuild)
}
