package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Ping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(logger, func(context.Context) error { return nil })

	recorder := httptest.NewRecorder()
	server.handlePing(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestServer_Health(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Healthy storage answers 200", func(t *testing.T) {
		server := New(logger, func(context.Context) error { return nil })

		recorder := httptest.NewRecorder()
		server.handleHealth(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Unreachable storage answers 503", func(t *testing.T) {
		server := New(logger, func(context.Context) error { return errors.New("connection refused") })

		recorder := httptest.NewRecorder()
		server.handleHealth(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})
}
