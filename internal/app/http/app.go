package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/middleware"
	httprouters "listing_editor/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// IdentityResolver возвращает владельца bearer токена.
type IdentityResolver interface {
	CurrentUser(ctx context.Context, token string) (models.Agent, error)
}

type Options struct {
	Host          string
	Port          string
	ReadTimeout   time.Duration
	SessionSecret string
	AllowOrigins  []string
	// IdentityTTL время жизни кэша агента в cookie сессии.
	IdentityTTL time.Duration
	// BodyLimit ограничивает размер запроса, например "30M".
	BodyLimit string
}

type Server struct {
	log      *slog.Logger
	e        *echo.Echo
	routers  *httprouters.Routers
	identity IdentityResolver
	opts     Options
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers, identity IdentityResolver) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = opts.ReadTimeout

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	store := sessions.NewCookieStore([]byte(opts.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.IdentityTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     opts.AllowOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, traceHeader},
		AllowCredentials: true,
	}))
	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}
	e.Use(middleware.PrometheusMetrics)

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:      log,
		e:        e,
		routers:  routers,
		identity: identity,
		opts:     opts,
	}
}

// Echo нужен тестам, чтобы гонять запросы через httptest.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.e.Group("/api/v1")
	{
		editorGroup := api.Group("/editor", s.agentOnlyMiddleware)
		{
			editorGroup.GET("/catalogs", s.routers.Catalogs)
			editorGroup.GET("/submissions", s.routers.ListSubmissions)

			editorGroup.POST("/sessions", s.routers.OpenSession)
			editorGroup.GET("/sessions/:id", s.routers.GetSession)
			editorGroup.DELETE("/sessions/:id", s.routers.CloseSession)
			editorGroup.PATCH("/sessions/:id/draft", s.routers.UpdateDraft)
			editorGroup.PUT("/sessions/:id/amenities/:improvement_id", s.routers.CheckAmenity)
			editorGroup.DELETE("/sessions/:id/amenities/:improvement_id", s.routers.UncheckAmenity)
			editorGroup.PUT("/sessions/:id/images", s.routers.ReplaceImages)
			editorGroup.DELETE("/sessions/:id/images/:image_id", s.routers.DeleteImage)
			editorGroup.POST("/sessions/:id/validate", s.routers.ValidateDraft)
			editorGroup.POST("/sessions/:id/submit", s.routers.Submit)
		}
	}
}
