package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
)

const adminNotFound = "Admin not found"

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	p, err := principal(c)
	if err != nil {
		return err
	}

	a, err := h.Svc.GetProfile(ctx, p)
	if err != nil {
		return fail(l, "get_profile_error", err, adminNotFound, "Error fetching profile")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ProfileHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	p, err := principal(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_profile_error", err)
	}

	a, err := h.Svc.UpdateProfile(ctx, p, req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			l.Warn("update_profile_error", "status", http.StatusBadRequest, "reason", "email already in use")
			return echo.NewHTTPError(http.StatusBadRequest, "Email already in use")
		}
		return fail(l, "update_profile_error", err, adminNotFound, "Error updating profile")
	}

	l.Info("update_profile_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully", "admin": a})
}
