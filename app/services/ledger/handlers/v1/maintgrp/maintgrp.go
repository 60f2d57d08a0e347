// Package maintgrp maintains the group of handlers for private ledger
// maintenance. These routes are only bound to the private host.
package maintgrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/MWatkins-UH/chain-pouch-project/business/web/errs"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/validate"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/web"
	"go.uber.org/zap"
)

// RebuildRequest is what an operator submits to rebuild the ledger.
type RebuildRequest struct {
	Reason string `json:"reason" validate:"required,max=256"`
}

// Handlers manages the set of maintenance endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *ledger.Chain
}

// Rebuild relinks and rehashes every block in the ledger. This hides any
// edit made to the ledger so every call is logged with the operator's
// reason and the verification state before and after.
func (h Handlers) Rebuild(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req RebuildRequest
	if err := web.Decode(r, &req); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	before := h.Chain.CheckIntegrity()

	relinked, err := h.Chain.Rebuild(req.Reason)
	if err != nil {
		if errors.Is(err, ledger.ErrRebuildReason) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	h.Log.Warnw("AUDIT: ledger rebuilt", "traceid", v.TraceID, "reason", req.Reason, "relinked", relinked,
		"verifiedBefore", before == nil, "verifiedAfter", h.Chain.CheckIntegrity() == nil)

	resp := struct {
		Relinked int    `json:"relinked"`
		Reason   string `json:"reason"`
	}{
		Relinked: relinked,
		Reason:   req.Reason,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
