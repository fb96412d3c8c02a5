package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	authmw "github.com/Skotchmaster/pharmacy/pkg/middleware/auth"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

// reason drops the sentinel prefix so clients see only the detail.
func reason(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func serverError(l *slog.Logger, event, msg string, err error) error {
	l.Error(event, "status", http.StatusInternalServerError, "reason", msg, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"message": msg, "error": err.Error()})
}

// fail maps service errors onto HTTP statuses. notFoundMsg and faultMsg are
// the client-facing messages for 404 and 500.
func fail(l *slog.Logger, event string, err error, notFoundMsg, faultMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		msg := reason(err, service.ErrValidation)
		l.Warn(event, "status", http.StatusBadRequest, "reason", msg, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "bad credentials", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Credentials")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "reason", notFoundMsg, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrConflict):
		msg := reason(err, service.ErrConflict)
		l.Warn(event, "status", http.StatusConflict, "reason", msg, "error", err)
		return echo.NewHTTPError(http.StatusConflict, msg)
	default:
		return serverError(l, event, faultMsg, err)
	}
}

func badID(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", "id is not a uuid", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
}

func principal(c echo.Context) (tokens.Principal, error) {
	p, ok := authmw.PrincipalFrom(c)
	if !ok {
		return tokens.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return p, nil
}
