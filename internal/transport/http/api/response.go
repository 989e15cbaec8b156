package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"perfdash/internal/requestctx"
)

const (
	MsgNotFound     = "Endpoint not found"
	MsgInternal     = "Internal server error"
	MsgUnauthorized = "Unauthorized"
)

type ErrorBody struct {
	Error string `json:"error"`
}

// SetCORSHeaders applies the header set carried by every response.
func SetCORSHeaders(h http.Header) {
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

// WriteJSON encodes payload before touching the response so an encoding
// failure can still become a clean 500. r may be nil.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	ctx := requestContext(r)
	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "encode response failed", "err", err, "status", status, "request_id", requestctx.GetRequestID(ctx))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Error: MsgInternal})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.WarnContext(ctx, "write json failed", "err", err, "request_id", requestctx.GetRequestID(ctx))
	}
}

func Success(w http.ResponseWriter, r *http.Request, data any) {
	WriteJSON(w, r, http.StatusOK, data)
}

func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorBody{Error: message})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusNotFound, MsgNotFound)
}

func InternalError(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusInternalServerError, MsgInternal)
}

func WritePDF(w http.ResponseWriter, r *http.Request, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		ctx := requestContext(r)
		slog.WarnContext(ctx, "write pdf failed", "err", err, "request_id", requestctx.GetRequestID(ctx))
	}
}
