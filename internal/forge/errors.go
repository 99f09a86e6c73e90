package forge

import (
	"errors"
	"fmt"
)

// ErrNoToken indicates no forge credential is available in the environment.
var ErrNoToken = errors.New("no GitHub token found: set ZTK_GITHUB_TOKEN or GITHUB_TOKEN")

// ErrNotFound indicates the requested resource does not exist on the forge.
var ErrNotFound = errors.New("not found")

// RequestError wraps a non-2xx forge response.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}
