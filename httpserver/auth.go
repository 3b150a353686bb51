package httpserver

import (
	"errors"
	"net/http"

	"moviestore/auth"
	"moviestore/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/token", s.handleToken)
	g.POST("/auth/refresh", s.handleRefresh)
}

// handleToken exchanges account credentials for an access and refresh token.
func (s *Server) handleToken(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAccountLocked) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "account temporarily locked")
		}
		return err
	}

	return writeSuccess(c, http.StatusOK, tokens)
}

func (s *Server) handleRefresh(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, tokens)
}
