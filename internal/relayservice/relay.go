package relayservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrInvalidURL = errors.New("invalid image url")
	ErrRelay      = errors.New("upstream fetch failed")
)

// DefaultContentType is used when the upstream response carries no
// Content-Type header.
const DefaultContentType = "image/jpeg"

// RelayService fetches externally hosted images on behalf of the client so
// the browser never loads them cross-origin. One outbound request per
// inbound request, no caching.
type RelayService struct {
	client   *http.Client
	maxBytes int64
}

// Result is an upstream response ready for streaming. The caller owns Body
// and must close it.
type Result struct {
	Body        io.ReadCloser
	ContentType string
	StatusCode  int
}

// NewRelayService builds a relay with a hard outbound timeout and a response
// size cap. maxBytes <= 0 disables the cap.
func NewRelayService(timeout time.Duration, maxBytes int64) *RelayService {
	return &RelayService{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch dispatches a GET for rawURL and hands back the response for
// streaming. The scheme of the URL selects plain or secure transport. The
// request carries ctx, so a client disconnect cancels the upstream fetch and
// releases the outbound socket. Upstream error statuses are returned as a
// Result for the caller to propagate, not as an error.
func (s *RelayService) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrInvalidURL
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelay, err)
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}

	body := res.Body
	if s.maxBytes > 0 {
		body = &limitedReadCloser{r: io.LimitReader(res.Body, s.maxBytes), c: res.Body}
	}

	return &Result{
		Body:        body,
		ContentType: contentType,
		StatusCode:  res.StatusCode,
	}, nil
}

// limitedReadCloser caps how much of the upstream body can be streamed while
// still closing the underlying connection.
type limitedReadCloser struct {
	r io.Reader
	c io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	return l.r.Read(p)
}

func (l *limitedReadCloser) Close() error {
	return l.c.Close()
}
