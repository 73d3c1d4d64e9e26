// internal/api/dashboard/handlers.go
package dashboard

import (
	"net/http"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	dashboardtempl "github.com/codr1/Rosterboard/internal/templates/components/dashboard"
	"github.com/codr1/Rosterboard/internal/templates/layouts"
)

const defaultTitle = "Rosterboard"

var title = defaultTitle

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(appName string) {
	if appName != "" {
		title = appName
	}
}

// HandleDashboardPage renders the full page for GET /. The active tab comes
// from ?tab= and loads its list after the page arrives.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	active := dashboardtempl.TabByKey(r.URL.Query().Get("tab"))
	page := layouts.Base(title, dashboardtempl.Page(active))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render dashboard page", "Failed to render page")
}

// /health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
