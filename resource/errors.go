package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch marks failures to obtain the bytes of a resource.
	ErrFetch = errors.New("resource: fetch failed")
	// ErrDecode marks bytes that could not be decoded into an image.
	ErrDecode = errors.New("resource: decode failed")
	// ErrUnsupportedScheme is returned for URLs no fetcher handles.
	ErrUnsupportedScheme = errors.New("resource: unsupported scheme")
)

// LoadError reports a resource that could not be loaded.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("resource: load %s: %v", shorten(e.URL), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// shorten keeps data URIs readable in logs.
func shorten(u string) string {
	const limit = 64
	if len(u) <= limit {
		return u
	}
	return u[:limit] + "..."
}
