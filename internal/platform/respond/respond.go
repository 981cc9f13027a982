// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response (success or error) follows one JSON envelope so the
// browser client can render pages, toasts and form errors uniformly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
//
// Message carries the short confirmation shown as a toast after a mutation
// ("Review saved", "Added to favorites").
type SuccessEnvelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// RedirectEnvelope is written alongside a 303 so API clients can follow it too.
type RedirectEnvelope struct {
	Redirect string `json:"redirect"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Message writes a 200 OK response carrying data and a confirmation message.
func Message(writer http.ResponseWriter, data any, message string) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data, Message: message})
}

// Created writes a 201 Created response with data and a confirmation message.
func Created(writer http.ResponseWriter, data any, message string) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data, Message: message})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Redirect answers 303 See Other towards location.
//
// Gated page reads use it instead of an error when the caller may not see the page.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "page_redirected",
		slog.String("location", location),
	)
	writer.Header().Set("Location", location)
	JSON(writer, http.StatusSeeOther, RedirectEnvelope{Redirect: location})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
