package event

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"perfdash/internal/transport/http/api"
)

// Adapter runs API Gateway proxy events through an http.Handler.
type Adapter struct {
	Handler http.Handler
	Logger  *slog.Logger
}

func NewAdapter(handler http.Handler) *Adapter {
	return &Adapter{Handler: handler, Logger: slog.Default()}
}

// Handle never returns an error. Routing outcomes and events that cannot be
// turned into a request are both encoded in the response status.
func (a *Adapter) Handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	w := newResponseWriter()
	req, err := newRequest(ctx, evt)
	if err != nil {
		a.logger().WarnContext(ctx, "rejected malformed event", "err", err, "method", evt.HTTPMethod, "path", evt.Path)
		api.SetCORSHeaders(w.Header())
		api.NotFound(w, nil)
		return w.proxyResponse(), nil
	}

	a.Handler.ServeHTTP(w, req)
	return w.proxyResponse(), nil
}

func (a *Adapter) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func newRequest(ctx context.Context, evt events.APIGatewayProxyRequest) (*http.Request, error) {
	method := evt.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	query := url.Values{}
	for key, value := range evt.QueryStringParameters {
		query.Set(key, value)
	}
	for key, values := range evt.MultiValueQueryStringParameters {
		query[key] = values
	}
	target := &url.URL{Path: evt.Path, RawQuery: query.Encode()}

	body := evt.Body
	if evt.IsBase64Encoded && body != "" {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("decode event body: %w", err)
		}
		body = string(decoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.URL = target
	req.RequestURI = target.RequestURI()
	for key, value := range evt.Headers {
		req.Header.Set(key, value)
	}
	for key, values := range evt.MultiValueHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if evt.RequestContext.RequestID != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", evt.RequestContext.RequestID)
	}
	return req, nil
}

type responseWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        strings.Builder
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: http.Header{}, status: http.StatusOK}
}

func (w *responseWriter) Header() http.Header { return w.header }

func (w *responseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	return w.body.Write(b)
}

func (w *responseWriter) proxyResponse() events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(w.header))
	for key, values := range w.header {
		headers[key] = strings.Join(values, ",")
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode: w.status,
		Headers:    headers,
		Body:       w.body.String(),
	}
	if isBinary(w.header.Get("Content-Type")) {
		resp.Body = base64.StdEncoding.EncodeToString([]byte(resp.Body))
		resp.IsBase64Encoded = true
	}
	return resp
}

func isBinary(contentType string) bool {
	return strings.HasPrefix(contentType, "application/pdf")
}
