package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
)

// ParsePositiveIntQuery reads an optional positive integer query parameter.
// A missing or blank parameter yields zero.
func ParsePositiveIntQuery(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a positive integer")
	}
	return value, nil
}

// QueryString reads a trimmed string query parameter.
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
