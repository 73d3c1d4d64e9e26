// internal/api/activity/handlers.go
package activity

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/db"
	activitytempl "github.com/codr1/Rosterboard/internal/templates/components/activity"
)

const (
	recentLimit          = 50
	activityQueryTimeout = 5 * time.Second
)

// Lister reads the activity log.
type Lister interface {
	ListRecentActivity(ctx context.Context, limit int64) ([]db.ActivityEntry, error)
}

var lister Lister

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(l Lister) {
	if l == nil {
		log.Warn().Msg("InitHandlers called with nil activity lister; activity handlers will be unavailable")
	}
	lister = l
}

// /api/v1/activity
func HandleActivityList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if lister == nil {
		logger.Error().Msg("Activity lister not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), activityQueryTimeout)
	defer cancel()

	entries, err := lister.ListRecentActivity(ctx, recentLimit)
	errMsg := ""
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list activity")
		errMsg = "Failed to load activity"
	}

	if apiutil.IsJSONRequest(r) {
		if err != nil {
			http.Error(w, errMsg, http.StatusInternalServerError)
			return
		}
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries}); err != nil {
			logger.Error().Err(err).Msg("Failed to write activity response")
		}
		return
	}

	component := activitytempl.ActivityList(entries, errMsg)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render activity list", "Failed to render activity")
}
