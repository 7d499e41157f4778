package relayservice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchInvalidURL(t *testing.T) {
	s := NewRelayService(5*time.Second, 0)

	testCases := []string{
		"",
		"not a url",
		"/relative/path",
		"ftp://example.com/image.png",
		"example.com/image.png",
	}

	for _, rawURL := range testCases {
		t.Run(rawURL, func(t *testing.T) {
			res, err := s.Fetch(context.Background(), rawURL)
			assert.ErrorIs(t, err, ErrInvalidURL)
			assert.Nil(t, res)
		})
	}
}

func TestFetchPassesThroughBytesAndContentType(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02, 0x03}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer upstream.Close()

	s := NewRelayService(5*time.Second, 0)

	res, err := s.Fetch(context.Background(), upstream.URL+"/cat.png")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.ContentType)

	body, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestFetchDefaultContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// suppress content sniffing so the header stays empty
		w.Header()["Content-Type"] = nil
		w.Write([]byte("image-bytes"))
	}))
	defer upstream.Close()

	s := NewRelayService(5*time.Second, 0)

	res, err := s.Fetch(context.Background(), upstream.URL)
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, DefaultContentType, res.ContentType)
}

func TestFetchUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	s := NewRelayService(5*time.Second, 0)

	res, err := s.Fetch(context.Background(), upstream.URL+"/missing.png")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetchSizeCap(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 1024))
	}))
	defer upstream.Close()

	s := NewRelayService(5*time.Second, 16)

	res, err := s.Fetch(context.Background(), upstream.URL)
	assert.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Len(t, body, 16)
}

func TestFetchTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	s := NewRelayService(1*time.Second, 0)

	res, err := s.Fetch(context.Background(), upstream.URL)
	assert.ErrorIs(t, err, ErrRelay)
	assert.Nil(t, res)
}

func TestFetchCancelledContext(t *testing.T) {
	blocked := make(chan struct{})

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer upstream.Close()
	defer close(blocked)

	s := NewRelayService(30*time.Second, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	res, err := s.Fetch(ctx, upstream.URL)
	assert.ErrorIs(t, err, ErrRelay)
	assert.Nil(t, res)
}
