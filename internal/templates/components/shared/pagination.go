package shared

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// PaginationData describes a pager. Attrs returns the htmx attributes that
// load the given page; its output is written unescaped.
type PaginationData struct {
	CurrentPage int
	TotalPages  int
	Attrs       func(page int) string
}

// GetPageAttrs builds hx-get attributes for list pagers.
func GetPageAttrs(baseURL, target string) func(page int) string {
	return func(page int) string {
		url := baseURL + "?page=" + strconv.Itoa(page)
		return `hx-get="` + templ.EscapeString(url) + `" hx-target="` + templ.EscapeString(target) + `" hx-swap="outerHTML"`
	}
}

// Pagination renders nothing when there is at most one page.
func Pagination(data PaginationData) templ.Component {
	return Component(func(ctx context.Context, hw *Writer) {
		if data.TotalPages <= 1 || data.Attrs == nil {
			return
		}
		hw.Raw(`<nav class="flex items-center justify-center gap-1 mt-4" aria-label="Pagination">`)
		if data.CurrentPage > 1 {
			hw.Raw(`<button type="button" class="px-3 py-1 rounded border" ` + data.Attrs(data.CurrentPage-1) + `>Previous</button>`)
		}
		for page := 1; page <= data.TotalPages; page++ {
			if page == data.CurrentPage {
				hw.Printf(`<span class="px-3 py-1 rounded bg-blue-600 text-white" aria-current="page">%d</span>`, page)
				continue
			}
			hw.Raw(`<button type="button" class="px-3 py-1 rounded border" ` + data.Attrs(page) + `>` + strconv.Itoa(page) + `</button>`)
		}
		if data.CurrentPage < data.TotalPages {
			hw.Raw(`<button type="button" class="px-3 py-1 rounded border" ` + data.Attrs(data.CurrentPage+1) + `>Next</button>`)
		}
		hw.Raw(`</nav>`)
	})
}
