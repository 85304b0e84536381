package http

import (
	"embed"
	"html/template"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/layer-3/inkgate/ports"
	"github.com/layer-3/inkgate/service"
	"github.com/layer-3/inkgate/transport/client"
)

//go:embed templates/*.html
var templateFS embed.FS

// RouterConfig holds what the web companion needs
type RouterConfig struct {
	AuthService *service.AuthService
	Store       ports.TokenStore
	API         *client.Client
	Metrics     ports.Metrics
	// Gatherer exposes /metrics when set
	Gatherer prometheus.Gatherer
	// LoginPath serves the sign-in form and is where the gate redirects
	LoginPath string
	// RootPath is the protected landing page
	RootPath string
	Logger   *slog.Logger
}

// SetupRouter sets up the Gin router
func SetupRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = service.DefaultLoginPath
	}
	rootPath := cfg.RootPath
	if rootPath == "" {
		rootPath = service.DefaultRootPath
	}

	handlers := NewAuthHandlers(cfg.AuthService, cfg.API, loginPath, logger)
	gate := service.NewGate(loginPath)

	router.GET("/healthz", handlers.Health)
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Credential flows
	router.GET(loginPath, handlers.LoginForm)
	router.POST(loginPath, handlers.Login)
	router.GET(RegisterPath, handlers.RegisterForm)
	router.POST(RegisterPath, handlers.Register)
	router.POST("/logout", handlers.Logout)

	// Protected routes
	protected := router.Group("/")
	protected.Use(AccessGate(cfg.Store, gate, cfg.Metrics))
	{
		protected.GET(rootPath, handlers.Dashboard)
		protected.GET("/app/api/*path", handlers.Proxy)
		if rootPath != "/app" {
			protected.GET("/app", handlers.Dashboard)
		}
	}

	return router
}
