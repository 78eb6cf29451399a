// pkg/fetch/fetch_test.go
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	payload := bytes.Repeat([]byte("asset"), 10000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer srv.Close()

	var fractions []float64
	data, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), srv.URL+"/m.zip", func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
}

func TestFetchOversizedContentLength(t *testing.T) {
	// Declares a terabyte body, then closes after a few bytes
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, rw, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprintf(rw, "HTTP/1.1 200 OK\r\nContent-Length: %d\r\n\r\nshort", int64(1)<<40)
		rw.Flush()
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), srv.URL+"/huge.zip", nil)
	require.Error(t, err)
	assert.True(t, assetpipe.IsKind(err, assetpipe.KindNetwork))
}

func TestPreGrow(t *testing.T) {
	assert.Equal(t, 0, preGrow(-1))
	assert.Equal(t, 0, preGrow(0))
	assert.Equal(t, 1024, preGrow(1024))
	assert.Equal(t, maxPreGrow, preGrow(int64(1)<<40))
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPFetcher(0).Fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, assetpipe.IsKind(err, assetpipe.KindNetwork))
	assert.ErrorIs(t, err, ErrStatus)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(50*time.Millisecond).Fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, assetpipe.IsKind(err, assetpipe.KindNetwork))
}

func TestFetchArguments(t *testing.T) {
	_, err := NewHTTPFetcher(0).Fetch(context.Background(), "", nil)
	assert.True(t, assetpipe.IsKind(err, assetpipe.KindArgument))

	_, err = NewHTTPFetcher(time.Second).Fetch(context.Background(), "http://127.0.0.1:1/none", nil)
	assert.True(t, assetpipe.IsKind(err, assetpipe.KindNetwork))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.glb"))
	assert.True(t, IsRemote("HTTP://example.com/a.glb"))
	assert.False(t, IsRemote("/tmp/a.glb"))
	assert.False(t, IsRemote("C:/models/a.glb"))
}
