package mid

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/web"
)

// Set of values returned to a browser asking to call the ledger api.
var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Accept", "Content-Type", "Content-Length", "Origin"}, ", ")
	corsMaxAge  = strconv.Itoa(int((12 * time.Hour).Seconds()))
)

// Cors sets the response headers needed for Cross-Origin Resource Sharing.
// The preflight headers are only written on OPTIONS requests.
func Cors(origin string) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				hdr.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				hdr.Set("Access-Control-Allow-Methods", corsMethods)
				hdr.Set("Access-Control-Allow-Headers", corsHeaders)
				hdr.Set("Access-Control-Max-Age", corsMaxAge)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
