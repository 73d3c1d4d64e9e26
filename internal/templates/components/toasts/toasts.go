package toasts

import (
	"context"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/templates/components/shared"
	"github.com/codr1/Rosterboard/internal/toast"
)

const ContainerID = "toast-container"

var typeClasses = map[toast.Type]string{
	toast.Success: "border-green-400 bg-green-50 text-green-800",
	toast.Error:   "border-red-400 bg-red-50 text-red-800",
	toast.Warning: "border-yellow-400 bg-yellow-50 text-yellow-800",
	toast.Info:    "border-blue-400 bg-blue-50 text-blue-800",
}

// Container polls for the live toasts every second and whenever a mutation
// fires toasts-changed.
func Container(items []toast.Toast) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<div id="%s" class="fixed right-4 top-4 z-50 flex w-80 flex-col gap-2" hx-get="/api/v1/toasts" hx-trigger="every 1s, toasts-changed from:body" hx-swap="outerHTML" aria-live="polite">`,
			ContainerID)
		for _, t := range items {
			classes, ok := typeClasses[t.Type]
			if !ok {
				classes = typeClasses[toast.Info]
			}
			hw.Printf(`<div class="flex items-start justify-between rounded border px-4 py-3 shadow %s" id="%s" role="status">`, classes, t.ID)
			hw.Printf(`<span>%s</span>`, t.Message)
			hw.Printf(`<button type="button" class="ml-3 opacity-70" aria-label="Dismiss" hx-delete="%s" hx-target="#%s" hx-swap="outerHTML">&times;</button></div>`,
				shared.ResourcePath("/api/v1/toasts", t.ID), ContainerID)
		}
		hw.Raw(`</div>`)
	})
}
