package fakestore

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError is returned when a catalog call fails, either because the
// request never completed (StatusCode == 0) or because upstream answered
// with a non-2xx status.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fakestore %s %s: status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fakestore %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a FetchError carrying a 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound
}
