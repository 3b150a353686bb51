package httpserver

import (
	"moviestore/auth"
	"moviestore/catalog"
	"moviestore/errs"

	"github.com/labstack/echo/v4"
)

const (
	servicesKey = "catalog.services"
	accountKey  = "user"
)

// unitOfWork opens one catalog scope for the request and releases it once the
// handler has written its response.
func (s *Server) unitOfWork(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Catalog == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "catalog not configured")
		}
		return s.Catalog.Scope(c.Request().Context(), func(services catalog.Services) error {
			c.Set(servicesKey, services)
			return next(c)
		})
	}
}

func services(c echo.Context) catalog.Services {
	services, _ := c.Get(servicesKey).(catalog.Services)
	return services
}

// currentAccount returns the account the access token was issued to.
func currentAccount(c echo.Context) (auth.Account, bool) {
	account, ok := c.Get(accountKey).(auth.Account)
	return account, ok
}
