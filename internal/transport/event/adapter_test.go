package event

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"perfdash/internal/app/server"
	"perfdash/internal/domain/dashboard"
)

func newTestAdapter() *Adapter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := dashboard.NewService(nil, dashboard.WithLogger(logger))
	return NewAdapter(server.NewRouter(service, server.RouterOptions{Logger: logger}))
}

func TestHandleDefaultsToGET(t *testing.T) {
	resp, err := newTestAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{Path: "/api/users"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload dashboard.UserList
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(payload.Users))
	}
}

func TestHandleFlattensHeaders(t *testing.T) {
	resp, err := newTestAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		Path:       "/anything",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Body != "" {
		t.Fatalf("unexpected preflight response %+v", resp)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("expected flattened CORS header, got %v", resp.Headers)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("unexpected content type %q", resp.Headers["Content-Type"])
	}
}

func TestHandleRoutingFailureIsAResponse(t *testing.T) {
	resp, err := newTestAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("routing failures should not be errors: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if strings.TrimSpace(resp.Body) != `{"error":"Endpoint not found"}` {
		t.Fatalf("unexpected body %q", resp.Body)
	}
}

func TestHandleCarriesRequestID(t *testing.T) {
	resp, err := newTestAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		Path:           "/api/dashboard/mjohnson",
		RequestContext: events.APIGatewayProxyRequestContext{RequestID: "gw-123"},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.Headers["X-Request-Id"] != "gw-123" {
		t.Fatalf("expected request id to propagate, got %v", resp.Headers)
	}
}

func TestHandlePDFIsBase64(t *testing.T) {
	resp, err := newTestAdapter().Handle(context.Background(), events.APIGatewayProxyRequest{
		Path:                  "/api/team-dashboard/manager1",
		QueryStringParameters: map[string]string{"format": "pdf"},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !resp.IsBase64Encoded {
		t.Fatal("expected base64 encoded body")
	}
	body, err := base64.StdEncoding.DecodeString(resp.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.HasPrefix(string(body), "%PDF-") {
		t.Fatal("expected pdf document")
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	w := newResponseWriter()
	w.Header().Add("Vary", "Origin")
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("short and stout"))

	resp := w.proxyResponse()
	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("expected first status, got %d", resp.StatusCode)
	}
	if resp.Headers["Vary"] != "Origin,Accept" {
		t.Fatalf("unexpected flattened header %q", resp.Headers["Vary"])
	}
	if resp.Body != "short and stout" || resp.IsBase64Encoded {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestHandleMalformedEventIsNotFound(t *testing.T) {
	adapter := newTestAdapter()
	adapter.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := map[string]events.APIGatewayProxyRequest{
		"invalid method": {HTTPMethod: "GET X", Path: "/api/users"},
		"invalid body":   {HTTPMethod: http.MethodGet, Path: "/api/users", Body: "%%%", IsBase64Encoded: true},
	}
	for name, evt := range cases {
		resp, err := adapter.Handle(context.Background(), evt)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", name, resp.StatusCode)
		}
		if strings.TrimSpace(resp.Body) != `{"error":"Endpoint not found"}` {
			t.Fatalf("%s: unexpected body %q", name, resp.Body)
		}
		if resp.Headers["Access-Control-Allow-Origin"] != "*" {
			t.Fatalf("%s: expected CORS headers, got %v", name, resp.Headers)
		}
	}
}
