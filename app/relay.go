package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jletan/inkpost/internal/relayservice"
)

// imageProxyHandler streams an externally hosted image back to the client.
// The response body is copied through without whole-payload buffering; the
// inbound request context rides along on the outbound fetch, so a client
// disconnect tears down the upstream connection as well.
func (app *application) imageProxyHandler(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		app.badRequestErrorResponse(w, r, errors.New("missing url parameter"))
		return
	}

	res, err := app.relayService.Fetch(r.Context(), rawURL)
	if err != nil {
		switch {
		case errors.Is(err, relayservice.ErrInvalidURL):
			app.badRequestErrorResponse(w, r, err)
		case errors.Is(err, relayservice.ErrRelay):
			app.logError(r, err)
			app.writeErrorResponse(w, r, http.StatusInternalServerError, "could not fetch the requested image")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		app.writeErrorResponse(w, r, res.StatusCode, fmt.Sprintf("upstream returned status %d", res.StatusCode))
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, res.Body); err != nil {
		// the client went away mid-stream; nothing more to send
		app.logError(r, err)
	}
}
