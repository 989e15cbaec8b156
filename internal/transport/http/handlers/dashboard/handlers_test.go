package dashboardhandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"perfdash/internal/domain/dashboard"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	NewHandler(dashboard.NewService(nil), nil).RegisterRoutes(r)
	return r
}

func TestAliasFromPath(t *testing.T) {
	cases := map[string]string{
		"/api/dashboard/jsmith":      "jsmith",
		"/api/dashboard/":            "",
		"/api/dashboard/a/b/c":       "c",
		"/api/team-dashboard/mgr-01": "mgr-01",
	}
	for path, want := range cases {
		if got := aliasFromPath(path); got != want {
			t.Fatalf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestHandleUsersSample(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload dashboard.UserList
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Users) != 3 || payload.Users[0].Alias != "jsmith" {
		t.Fatalf("unexpected users %+v", payload.Users)
	}
}

func TestHandleUserDashboardNestedPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/x/y/jsmith", nil))

	var payload dashboard.UserDashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.UserAlias != "jsmith" || len(payload.Metrics) != 3 {
		t.Fatalf("unexpected dashboard %+v", payload)
	}
}

func TestHandleUserDashboardPDF(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/jsmith?format=pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected pdf body")
	}
}

func TestHandleTeamDashboardPDF(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/team-dashboard/?format=PDF", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `inline; filename="team-dashboard-report.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
}
