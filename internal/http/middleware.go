package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrBadRequest marks failures that should surface as 400 instead of 500
// when they escape to the error middleware.
var ErrBadRequest = errors.New("bad request")

type errorBody struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace"`
}

// errorMiddleware is the single global error boundary. Any panic raised
// downstream is caught exactly once here and translated into a structured
// JSON response; inner layers never format panic responses themselves.
func (s *Server) errorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			status := http.StatusInternalServerError
			var message string
			switch v := rec.(type) {
			case error:
				message = v.Error()
				if errors.Is(v, ErrBadRequest) {
					status = http.StatusBadRequest
				}
			default:
				message = fmt.Sprint(v)
			}

			stack := string(debug.Stack())
			s.logger.Error("request panic",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("error", message),
			)
			writeJSON(w, status, errorBody{
				Status:     status,
				Message:    message,
				StackTrace: stack,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
