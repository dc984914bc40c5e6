package http

import (
	"errors"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code       int         `json:"code"`
	Kind       string      `json:"kind,omitempty"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

type Violation struct {
	ID     string `json:"id"`
	Detail string `json:"detail,omitempty"`
}

// StatusCode maps an error kind onto its HTTP status.
func StatusCode(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidInput, errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Internal errors are not echoed to the client.
func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	code := StatusCode(kind)

	body := Error{Code: code, Message: err.Error()}
	if kind != errs.KindUnknown {
		body.Kind = kind.String()
	}

	var batchErr *errs.BatchError
	if errors.As(err, &batchErr) {
		body.Message = batchErr.Message
		for _, v := range batchErr.Violations {
			body.Violations = append(body.Violations, Violation{ID: v.ID, Detail: v.Detail})
		}
	}

	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		body.Message = http.StatusText(code)
	}

	return c.JSON(code, body)
}

func writeStatus(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}
