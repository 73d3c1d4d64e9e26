// Package htmx reads and writes the htmx request/response headers.
package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Trigger asks the client to dispatch the given events after the swap.
func Trigger(w http.ResponseWriter, events ...string) {
	if len(events) == 0 {
		return
	}
	existing := w.Header().Get("HX-Trigger")
	if existing != "" {
		events = append([]string{existing}, events...)
	}
	w.Header().Set("HX-Trigger", strings.Join(events, ","))
}

// Retarget swaps the response into target instead of the element that issued the request.
func Retarget(w http.ResponseWriter, target, swap string) {
	w.Header().Set("HX-Retarget", target)
	if swap != "" {
		w.Header().Set("HX-Reswap", swap)
	}
}
