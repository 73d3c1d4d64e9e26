package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParseIntField parses a required integer form value.
func ParseIntField(raw string, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	return value, nil
}

// ParseOptionalIntField parses an optional integer form value. Blank gives nil.
func ParseOptionalIntField(raw string, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", field)
	}
	return &value, nil
}

// FormValues returns the trimmed, non-empty values of a repeated form field
// in submission order, without duplicates. ParseForm must have been called.
func FormValues(r *http.Request, key string) []string {
	raw := r.PostForm[key]
	if raw == nil {
		raw = r.Form[key]
	}
	seen := make(map[string]struct{}, len(raw))
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

// PathID reads a non-blank path wildcard.
func PathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return id, nil
}
