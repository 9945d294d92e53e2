package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubForwarder struct {
	status int
	body   []byte
	err    error

	lastKind string
	lastName string
	lastPage int
}

func (s *stubForwarder) Forward(_ context.Context, kind, name string) (int, []byte, error) {
	s.lastKind, s.lastName = kind, name
	return s.status, s.body, s.err
}

func (s *stubForwarder) ForwardPage(_ context.Context, page int) (int, []byte, error) {
	s.lastPage = page
	return s.status, s.body, s.err
}

func TestProxyForwardsCategoryRequest(t *testing.T) {
	fwd := &stubForwarder{status: http.StatusOK, body: []byte(`{"products":[]}`)}

	resp := httptest.NewRecorder()
	Proxy(fwd, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=s&name=water", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if fwd.lastKind != "s" || fwd.lastName != "water" {
		t.Fatalf("unexpected forward args: kind=%q name=%q", fwd.lastKind, fwd.lastName)
	}
	if resp.Body.String() != `{"products":[]}` {
		t.Fatalf("expected the upstream body verbatim, got %q", resp.Body.String())
	}
}

func TestProxyPassesThroughUpstreamStatus(t *testing.T) {
	fwd := &stubForwarder{status: http.StatusNotFound, body: []byte(`{"message":"no such brand"}`)}

	resp := httptest.NewRecorder()
	Proxy(fwd, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=b&name=ghost", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected the upstream 404 verbatim, got %d", resp.Code)
	}
	if resp.Body.String() != `{"message":"no such brand"}` {
		t.Fatalf("expected the upstream body verbatim, got %q", resp.Body.String())
	}
}

func TestProxyForwardsPageForAll(t *testing.T) {
	fwd := &stubForwarder{status: http.StatusOK, body: []byte(`{}`)}

	resp := httptest.NewRecorder()
	Proxy(fwd, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=all&page=4", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if fwd.lastPage != 4 {
		t.Fatalf("expected page 4, got %d", fwd.lastPage)
	}
}

func TestProxyDefaultsPageToOne(t *testing.T) {
	fwd := &stubForwarder{status: http.StatusOK, body: []byte(`{}`)}

	resp := httptest.NewRecorder()
	Proxy(fwd, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=all", nil))

	if fwd.lastPage != 1 {
		t.Fatalf("expected page 1 by default, got %d", fwd.lastPage)
	}
}

func TestProxyRejectsMissingType(t *testing.T) {
	resp := httptest.NewRecorder()
	Proxy(&stubForwarder{}, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?name=water", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProxyRejectsMissingName(t *testing.T) {
	resp := httptest.NewRecorder()
	Proxy(&stubForwarder{}, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=s", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProxyReportsTransportFailure(t *testing.T) {
	fwd := &stubForwarder{err: errors.New("connection refused")}

	resp := httptest.NewRecorder()
	Proxy(fwd, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/proxy?type=s&name=water", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on transport failure, got %d", resp.Code)
	}
}
