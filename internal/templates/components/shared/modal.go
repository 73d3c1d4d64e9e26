package shared

import (
	"context"

	"github.com/a-h/templ"
)

// ModalTarget is the element every modal is swapped into.
const ModalTarget = "#modal"

const closeModal = `onclick="document.getElementById('modal').innerHTML=''"`

// CancelButton closes the open modal without a request.
const CancelButton = `<button type="button" class="px-3 py-2 rounded border" ` + closeModal + `>Cancel</button>`

// FieldData describes one labelled form input. Attrs is written unescaped.
type FieldData struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
	Attrs string
}

// Modal wraps body in the dashboard's dialog frame with a close button.
func Modal(title string, body templ.Component) templ.Component {
	return Component(func(ctx context.Context, hw *Writer) {
		hw.Raw(`<div class="fixed inset-0 z-40 flex items-center justify-center bg-black/50" role="dialog" aria-modal="true">`)
		hw.Raw(`<div class="w-full max-w-xl rounded-lg bg-white p-6 shadow-xl dark:bg-gray-800">`)
		hw.Printf(`<div class="flex items-center justify-between mb-4"><h2 class="text-lg font-semibold">%s</h2>`, title)
		hw.Raw(`<button type="button" class="text-gray-500" aria-label="Close" ` + closeModal + `>&times;</button></div>`)
		hw.Component(ctx, body)
		hw.Raw(`</div></div>`)
	})
}

// FieldError renders a form error line when msg is set.
func FieldError(msg string) templ.Component {
	return Component(func(ctx context.Context, hw *Writer) {
		if msg == "" {
			return
		}
		hw.Printf(`<p class="mt-1 text-sm text-red-600" role="alert">%s</p>`, msg)
	})
}

// ErrorBanner renders a store error above a list.
func ErrorBanner(msg string) templ.Component {
	return Component(func(ctx context.Context, hw *Writer) {
		if msg == "" {
			return
		}
		hw.Printf(`<div class="mb-4 rounded border border-red-300 bg-red-50 p-3 text-red-700" role="alert">%s</div>`, msg)
	})
}

// Field writes a labelled input followed by its error line.
func Field(ctx context.Context, hw *Writer, f FieldData) {
	inputType := f.Type
	if inputType == "" {
		inputType = "text"
	}
	hw.Printf(`<label class="block"><span class="text-sm font-medium">%s</span>`, f.Label)
	hw.Printf(`<input class="mt-1 w-full rounded border px-3 py-2" type="%s" name="%s" value="%s"`, inputType, f.Name, f.Value)
	if f.Attrs != "" {
		hw.Raw(" " + f.Attrs)
	}
	hw.Raw(`></label>`)
	hw.Component(ctx, FieldError(f.Error))
}
