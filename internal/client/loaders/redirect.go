package loaders

import (
	"fmt"
	"net/http"
)

// Redirect is returned by a loader when the page must not be shown.
type Redirect struct {
	Status   int
	Location string
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect %d to %s", r.Status, r.Location)
}

func found(location string) *Redirect {
	return &Redirect{Status: http.StatusFound, Location: location}
}
