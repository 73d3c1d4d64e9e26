// internal/api/toasts/handlers.go
package toasts

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/templates/components/toasts"
	"github.com/codr1/Rosterboard/internal/toast"
)

var queue *toast.Queue

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *toast.Queue) {
	if q == nil {
		log.Warn().Msg("InitHandlers called with nil toast queue; toast handlers will be unavailable")
	}
	queue = q
}

// /api/v1/toasts
func HandleToastsList(w http.ResponseWriter, r *http.Request) {
	if queue == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r)
}

// DELETE /api/v1/toasts/{id}
func HandleToastDismiss(w http.ResponseWriter, r *http.Request) {
	if queue == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid toast ID", http.StatusBadRequest)
		return
	}
	// Dismissing an expired toast is not an error.
	queue.Remove(id)
	render(w, r)
}

func render(w http.ResponseWriter, r *http.Request) {
	component := toasts.Container(queue.List())
	// Polled every second; keep intermediaries from caching it.
	headers := map[string]string{"Cache-Control": "no-store"}
	apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render toasts", "Failed to render toasts")
}
