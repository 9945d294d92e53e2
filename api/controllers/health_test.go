package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthLive()(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestHealthReadyWithoutCache(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthReady(nil, nil)(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 when the cache is disabled, got %d", resp.Code)
	}
}

func TestHealthReadyCachePingFails(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthReady(stubPinger{err: errors.New("dial tcp: refused")}, nil)(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the cache ping fails, got %d", resp.Code)
	}
}
