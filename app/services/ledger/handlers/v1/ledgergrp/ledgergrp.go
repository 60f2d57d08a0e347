// Package ledgergrp maintains the group of handlers for public ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MWatkins-UH/chain-pouch-project/business/web/errs"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/events"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/validate"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *ledger.Chain
	WS    websocket.Upgrader
	Evts  *events.Events[ledger.Event]
}

// AddBlock validates the submitted transaction and appends it to the ledger.
func (h Handlers) AddBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nb NewBlock
	if err := web.Decode(r, &nb); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	blk := nb.toBlock()
	h.Log.Infow("add block", "traceid", v.TraceID, "timestamp", blk.TimeStamp(), "tx", blk.Transaction())

	blk, err = h.appendBlock(blk)
	if err != nil {
		if ve := ledger.GetValidationError(err); ve != nil {
			return errs.NewTrustedWithCode(ve, ve.Code, http.StatusBadRequest)
		}
		return err
	}

	return web.Respond(ctx, w, ledger.NewBlockData(blk), http.StatusOK)
}

// Genesis returns the genesis block.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, ledger.NewBlockData(h.Chain.Genesis()), http.StatusOK)
}

// LatestBlock returns the most recently appended block.
func (h Handlers) LatestBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, ledger.NewBlockData(h.Chain.LatestBlock()), http.StatusOK)
}

// BlockByNumber returns the block at the position named in the path.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	number, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	blk, err := h.Chain.Block(number)
	if err != nil {
		if errors.Is(err, ledger.ErrBlockNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, ledger.NewBlockData(blk), http.StatusOK)
}

// Blocks returns all the blocks, or only the blocks for a transaction id
// when one is provided.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tid := web.Param(r, "tid")

	var blocks []ledger.BlockData
	switch tid {
	case "":
		blocks = h.Chain.Blocks()

	default:
		blocks = h.Chain.QueryByTID(tid)
		if len(blocks) == 0 {
			return errs.NewTrusted(fmt.Errorf("tid[%s]: %w", tid, ledger.ErrBlockNotFound), http.StatusNotFound)
		}
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Balance returns the current balance of the ledger.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	bal := balance{
		Balance:     h.Chain.Balance().StringFixed(2),
		Blocks:      h.Chain.Len(),
		LatestBlock: h.Chain.LatestBlock().Hash(),
		Subscribers: h.Evts.Count(),
	}

	return web.Respond(ctx, w, bal, http.StatusOK)
}

// Verify walks the ledger and reports whether it has been altered.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := verification{Valid: true}

	var ie *ledger.IntegrityError
	if err := h.Chain.VerifyIntegrity(); errors.As(err, &ie) {
		resp = verification{
			Number: ie.Number,
			Reason: ie.Err.Error(),
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the ledger or ticker.
	for {
		select {
		case ev, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteJSON(ev); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// appendBlock appends the block to the ledger.
func (h Handlers) appendBlock(blk ledger.Block) (ledger.Block, error) {
	return shutdownOnPanic(func() (ledger.Block, error) {
		return h.Chain.Append(blk)
	})
}

// shutdownOnPanic runs the append. A corrupted ledger panics inside Append
// and is turned into a shutdown error since the service can't continue
// safely.
func shutdownOnPanic(appendFn func() (ledger.Block, error)) (linked ledger.Block, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = web.NewShutdownError(fmt.Sprintf("ledger corrupted: %v", rec))
		}
	}()

	return appendFn()
}
