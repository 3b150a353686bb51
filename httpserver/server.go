package httpserver

import (
	"context"
	"net/http"

	"moviestore/auth"
	"moviestore/catalog"
	"moviestore/errs"
	"moviestore/pkg/config"
	"moviestore/pkg/jwt"
	"moviestore/pkg/logger"
	"moviestore/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// AccessTokenParser validates bearer tokens on private routes.
type AccessTokenParser interface {
	ParseAccessToken(token string) (auth.Account, error)
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Logger *zap.SugaredLogger

	// Catalog opens one unit of work per private request.
	Catalog catalog.Scoper

	AuthService auth.Service

	Tokens AccessTokenParser
}

func Default(cfg *config.Config) *Server {
	s := &Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Logger:       logger.NOOPLogger,
		Tokens:       jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL()),
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		s.AllowOrigins = origins
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()
	s.RegisterHealthRoutes()

	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE
	private := api.Group("")
	private.Use(echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: s.parseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.Errorf(errs.EUNAUTHORIZED, "invalid or missing access token")
		},
	}))
	private.Use(s.unitOfWork)
	s.RegisterPrivateRoutes(private)

	return s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterAuthRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group) {
	s.RegisterMovieRoutes(g)
	s.RegisterCategoryRoutes(g)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) parseToken(c echo.Context, token string) (interface{}, error) {
	account, err := s.Tokens.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// handleError maps application errors to HTTP status codes and renders them
// in the response envelope.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := http.StatusInternalServerError, "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			status, message = http.StatusBadRequest, errs.ErrorMessage(err)
		case errs.ENOTFOUND:
			status, message = http.StatusNotFound, errs.ErrorMessage(err)
		case errs.ECONFLICT:
			status, message = http.StatusConflict, errs.ErrorMessage(err)
		case errs.EUNAUTHORIZED:
			status, message = http.StatusUnauthorized, errs.ErrorMessage(err)
		case errs.ENOTIMPLEMENTED:
			status, message = http.StatusNotImplemented, errs.ErrorMessage(err)
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if status >= http.StatusInternalServerError {
		account, _ := currentAccount(c)
		s.Logger.Errorw("request failed",
			"request_id", requestID,
			"account", account.Username,
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"request_id": requestID}).
			Error(err)
	} else {
		s.Logger.Debugw("request rejected",
			"request_id", requestID,
			"status", status,
			"error", err,
		)
	}

	if err := writeError(c, status, message, err); err != nil {
		s.Logger.Errorw("write error response", "request_id", requestID, "error", err)
	}
}
