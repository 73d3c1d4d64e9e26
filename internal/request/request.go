// Package request holds small helpers for reading per-request values.
package request

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/paginate"
)

type contextKey struct{}

// WithID returns a copy of ctx carrying the request id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ID returns the request id stored by WithID, or "".
func ID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Page reads the page number from the query, falling back to the page of the
// URL htmx reports in HX-Current-URL. Missing or invalid values give 1.
func Page(r *http.Request) int {
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		return paginate.ParsePage(raw)
	}

	currentURL := strings.TrimSpace(r.Header.Get("HX-Current-URL"))
	if currentURL == "" {
		return 1
	}

	parsed, err := url.Parse(currentURL)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("hx_current_url", currentURL).
			Msg("Failed to parse HX-Current-URL")
		return 1
	}

	return paginate.ParsePage(parsed.Query().Get("page"))
}
