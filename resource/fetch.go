package resource

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultMaxBytes bounds the size of a fetched resource.
const DefaultMaxBytes = 32 << 20

// Fetcher returns the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// DataFetcher decodes data: URIs, base64 or percent-encoded.
type DataFetcher struct{}

// Fetch implements Fetcher.
func (DataFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(rawURL, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", ErrFetch)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without payload", ErrFetch)
	}
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return b, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return []byte(s), nil
}

// FileFetcher reads file: URLs and bare paths. Relative paths resolve
// against Root.
type FileFetcher struct {
	Root     string
	MaxBytes int64
}

// Fetch implements Fetcher.
func (f FileFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Scheme == "file" {
		p = u.Path
	}
	if !filepath.IsAbs(p) && f.Root != "" {
		p = filepath.Join(f.Root, p)
	}
	file, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer file.Close()
	return readLimited(file, f.MaxBytes)
}

// HTTPFetcher fetches http and https URLs. Limiter, when set, throttles
// outgoing requests.
type HTTPFetcher struct {
	Client   *http.Client
	Limiter  *rate.Limiter
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher allowing rps requests per second with
// the given burst. rps <= 0 disables throttling.
func NewHTTPFetcher(client *http.Client, rps float64, burst int) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &HTTPFetcher{Client: client}
	if rps > 0 {
		f.Limiter = rate.NewLimiter(rate.Limit(rps), max(1, burst))
	}
	return f
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	return readLimited(resp.Body, f.MaxBytes)
}

// Router dispatches on the URL scheme.
type Router struct {
	Data Fetcher
	File Fetcher
	HTTP Fetcher
}

// NewRouter returns a Router with data, file and throttled HTTP support.
func NewRouter(root string, rps float64) *Router {
	return &Router{
		Data: DataFetcher{},
		File: FileFetcher{Root: root},
		HTTP: NewHTTPFetcher(nil, rps, 4),
	}
}

// Fetch implements Fetcher.
func (r *Router) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var f Fetcher
	switch scheme(rawURL) {
	case "data":
		f = r.Data
	case "http", "https":
		f = r.HTTP
	case "file", "":
		f = r.File
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %w %q", ErrFetch, ErrUnsupportedScheme, scheme(rawURL))
	}
	return f.Fetch(ctx, rawURL)
}

func scheme(rawURL string) string {
	i := strings.IndexByte(rawURL, ':')
	if i <= 1 {
		// No scheme, or a Windows drive letter.
		return ""
	}
	s := strings.ToLower(rawURL[:i])
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return ""
		}
	}
	return s
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrFetch, limit)
	}
	return b, nil
}
