package layouts

import (
	"context"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/templates/components/shared"
	"github.com/codr1/Rosterboard/internal/templates/components/toasts"
)

// htmx swaps 422 responses so rejected forms re-render in their modal.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// Base is the full page shell: header, content, the modal slot and the toast
// container.
func Base(title string, content templ.Component) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Printf(`<title>%s</title>`, title)
		hw.Printf(`<meta name="htmx-config" content="%s">`, htmxConfig)
		hw.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		hw.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		hw.Raw(`<link rel="stylesheet" href="/static/css/main.css">`)
		hw.Raw(`</head><body class="min-h-screen bg-gray-50 text-gray-900">`)
		hw.Printf(`<header class="border-b bg-white"><div class="mx-auto max-w-6xl px-4 py-4"><h1 class="text-2xl font-bold">%s</h1></div></header>`, title)
		hw.Raw(`<main class="mx-auto max-w-6xl px-4 py-6">`)
		hw.Component(ctx, content)
		hw.Raw(`</main><div id="modal"></div>`)
		hw.Component(ctx, toasts.Container(nil))
		hw.Raw(`</body></html>`)
	})
}
