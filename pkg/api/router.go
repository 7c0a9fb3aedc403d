package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"workshop-registration/pkg/middleware"
	"workshop-registration/pkg/web"
)

// RouterConfig carries what the router needs beyond the handlers
type RouterConfig struct {
	Logger            *slog.Logger
	CORSAllowedOrigin string
	MetricsHandler    http.Handler
}

// NewRouter registers middleware and routes on a new gin engine
func NewRouter(h *Handlers, cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.SetHTMLTemplate(web.Templates())

	router.GET("/", h.ShowForm)
	router.POST("/", h.SubmitForm)
	router.GET("/health", h.HealthCheck)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	apiGroup.GET("/form", h.GetFormState)
	apiGroup.PATCH("/form", h.UpdateForm)
	apiGroup.POST("/form/submit", h.SubmitFormState)
	apiGroup.OPTIONS("/*path", func(c *gin.Context) {})

	return router, nil
}
