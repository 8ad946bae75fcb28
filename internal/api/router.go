package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-manager/internal/api/handlers/health"
	recipeHandler "recipe-manager/internal/api/handlers/recipe"
	"recipe-manager/internal/api/middleware"
	"recipe-manager/internal/core/auth"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/core/store"
	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，食譜為純文字資料
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, recipeStore store.RecipeStore) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("store_enabled", cfg.Store.Enabled),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化比對器與食譜服務
	matcher := recipeService.NewMatcher(&cfg.Dedup)
	recipeSvc := recipeService.NewService(recipeStore, matcher)
	if recipeSvc == nil {
		common.LogError("Failed to initialize recipe service")
		return nil, fmt.Errorf("failed to initialize recipe service")
	}

	// 初始化身份服務客戶端
	authClient := auth.NewClient(cfg)

	common.LogInfo("Recipe service initialized successfully",
		zap.Bool("store_initialized", recipeStore != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(authClient))
	{
		handler := recipeHandler.NewHandler(recipeSvc)

		// 註冊食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			// 新增食譜（含重複檢查），並攔截短時間內的重複提交
			recipeGroup.POST("", middleware.Deduplication(cfg), handler.HandleSaveRecipe)

			// 列出與讀取
			recipeGroup.GET("", handler.HandleListRecipes)
			recipeGroup.GET("/:id", handler.HandleGetRecipe)

			// 內容比對
			recipeGroup.POST("/check", handler.HandleCheckDuplicate)

			// 管理員限定操作
			recipeGroup.DELETE("/:id", middleware.RequireAdmin(), handler.HandleDeleteRecipe)
			recipeGroup.POST("/cleanup", middleware.RequireAdmin(), handler.HandleCleanupDuplicates)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
