package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jletan/inkpost/internal/blogservice"
	"github.com/jletan/inkpost/internal/common"
	"github.com/jletan/inkpost/internal/relayservice"
	"github.com/jletan/inkpost/internal/userservice"
)

// mockProducer satisfies common.MessageProducer so handler tests do not need
// a running broker.
type mockProducer struct {
	mu        sync.Mutex
	published [][]byte
}

func (p *mockProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, msg)
	return nil
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// testResponse mirrors the apiResponse envelope on the reading side.
type testResponse struct {
	StatusCode int            `json:"statusCode"`
	Data       map[string]any `json:"data"`
	Message    any            `json:"message"`
	Success    bool           `json:"success"`
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, testResponse) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var body testResponse
	err = json.Unmarshal(responseBody, &body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, body
}

func newTestApplication(t *testing.T) *application {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := loadConfig("../.test.env")
	assert.NoError(t, err)

	return &application{
		config:       cfg,
		logger:       logger,
		userService:  userservice.NewUserService(db, &mockProducer{}),
		blogService:  blogservice.NewBlogService(db),
		relayService: relayservice.NewRelayService(time.Duration(cfg.RelayTimeoutSeconds)*time.Second, cfg.RelayMaxBytes),
	}
}

func (ts *testServer) post(t *testing.T, path string, data any) (int, http.Header, testResponse) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(jsonPayload))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, testResponse) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) put(t *testing.T, path string, data any) (int, http.Header, testResponse) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPut, ts.URL+path, bytes.NewReader(jsonPayload))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, testResponse) {
	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}
