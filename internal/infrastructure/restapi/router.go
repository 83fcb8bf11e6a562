package restapi

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every API handler.
type Handlers struct {
	Staking     *StakingHandler
	Portfolio   *PortfolioHandler
	Actions     *ActionHandler
	Preferences *PreferenceHandler
	Navigation  *NavigationHandler
}

// RouterOptions configures the non-API routes.
type RouterOptions struct {
	AllowOrigins []string
	// Metrics is served at /metrics when set.
	Metrics http.Handler
	// SwaggerSpecFile is served at /docs/swagger.yaml with the UI at /swagger/ when set.
	SwaggerSpecFile string
}

// SetupRouter configures and returns the Gin engine.
func SetupRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	if opts.SwaggerSpecFile != "" {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecFile)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/chains", h.Portfolio.ListChainsHandler)

		v1.GET("/staking/:wallet", h.Staking.GetStakingHandler)
		v1.POST("/staking/:wallet/refresh", h.Staking.RefreshStakingHandler)

		v1.GET("/portfolio/:wallet", h.Portfolio.GetPortfolioHandler)

		v1.POST("/actions", h.Actions.PrepareActionHandler)
		v1.GET("/actions/:id", h.Actions.GetActionHandler)
		v1.POST("/actions/:id/confirm", h.Actions.ConfirmActionHandler)

		v1.GET("/preferences/theme", h.Preferences.GetThemeHandler)
		v1.PUT("/preferences/theme", h.Preferences.PutThemeHandler)
		v1.POST("/preferences/theme/toggle", h.Preferences.ToggleThemeHandler)

		v1.GET("/navigation", h.Navigation.GetRoutesHandler)
		v1.GET("/navigation/:key", h.Navigation.GetRouteHandler)
		v1.GET("/landing", h.Navigation.GetLandingHandler)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
