package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/dashboard"
	"github.com/trezcool/masomo-console/core/navigation"
)

type Options struct {
	Conf           *core.Config
	Logger         core.Logger
	Validate       *validator.Validate
	Translator     ut.Translator
	NavigationSvc  *navigation.Service
	DashboardSvc   *dashboard.Service
	DisableReqLogs bool

	// optional
	Requests       RequestObserver
	MetricsHandler http.Handler
	HealthCheck    func(ctx context.Context) error
}

type Server struct {
	opts     *Options
	app      *echo.Echo
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(opts *Options) *Server {
	s := &Server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.opts.Requests != nil {
		s.app.Use(metricsMiddleware(s.opts.Requests))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.GET("/health", s.health)
	if s.opts.MetricsHandler != nil {
		s.app.GET("/metrics", echo.WrapHandler(s.opts.MetricsHandler))
	}

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(jwtConfig(conf))

	registerNavigationAPI(v1, jwt, s.opts.NavigationSvc, s.opts.Validate)
	registerDashboardAPI(v1, jwt, s.opts.DashboardSvc)
}

// Start blocks until the server stops; failures are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.opts.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Masomo Console API!")
}

func (s *Server) health(ctx echo.Context) error {
	if s.opts.HealthCheck != nil {
		if err := s.opts.HealthCheck(ctx.Request().Context()); err != nil {
			s.opts.Logger.Warn("health check failed", err)
			return errHttpNotHealthy
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok", "build": s.opts.Conf.Build})
}
