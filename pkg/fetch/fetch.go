// pkg/fetch/fetch.go
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
)

// DefaultTimeout bounds a whole request including the body transfer
const DefaultTimeout = 30 * time.Second

// maxPreGrow caps the buffer reserved from a declared Content-Length
const maxPreGrow = 64 << 20

var (
	ErrEmptyURL = errors.New("url is required")
	ErrStatus   = errors.New("unexpected http status")
)

// Fetcher retrieves the raw bytes behind a URL. progress, when non-nil,
// receives the downloaded fraction in [0,1] (only when the size is known).
type Fetcher interface {
	Fetch(ctx context.Context, url string, progress func(float64)) ([]byte, error)
}

// HTTPFetcher is the default Fetcher backed by net/http
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPFetcher creates a fetcher with the given timeout (<= 0 uses DefaultTimeout)
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{Client: http.DefaultClient, Timeout: timeout}
}

// IsRemote reports whether path is an http(s) URL
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads url. Transport failures, timeouts and non-2xx answers are
// KindNetwork errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, progress func(float64)) ([]byte, error) {
	if url == "" {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "fetch", url, ErrEmptyURL)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindArgument, "fetch", url, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindNetwork, "fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, assetpipe.NewError(assetpipe.KindNetwork, "fetch", url,
			fmt.Errorf("%w: %s", ErrStatus, resp.Status))
	}

	var buf bytes.Buffer
	buf.Grow(preGrow(resp.ContentLength))
	total := resp.ContentLength
	body := &assetpipe.ProgressReader{Reader: resp.Body}
	if progress != nil && total > 0 {
		var read int64
		body.OnRead = func(n int) {
			read += int64(n)
			progress(min(float64(read)/float64(total), 1))
		}
	}
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, assetpipe.NewError(assetpipe.KindNetwork, "fetch", url, err)
	}
	if progress != nil {
		progress(1)
	}
	return buf.Bytes(), nil
}

// preGrow is how many bytes to reserve for a body of the declared length
func preGrow(contentLength int64) int {
	if contentLength <= 0 {
		return 0
	}
	return int(min(contentLength, maxPreGrow))
}
