package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"library-lending/pkg/common/config"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/web/handler"
	"library-lending/pkg/web/middleware"
)

// Services 由 main 组装后注入
type Services struct {
	Catalog         *service.CatalogService
	Loans           *service.LoanService
	Recommendations *service.RecommendationService
	// Database 可为空, 为空时健康检查不探测数据库
	Database handler.Pinger
}

// RegisterAPIs 注册所有API路由
func RegisterAPIs(h *server.Hertz, cfg *config.Config, svc Services) {
	// 初始化Handler实例
	healthHandler := handler.NewHealthCheckHandler(svc.Database)
	bookHandler := handler.NewBookHandler(svc.Catalog)
	userHandler := handler.NewUserHandler(svc.Catalog)
	reviewHandler := handler.NewReviewHandler(svc.Catalog)
	loanHandler := handler.NewLoanHandler(svc.Loans)
	reportHandler := handler.NewReportHandler(svc.Loans)
	recommendationHandler := handler.NewRecommendationHandler(svc.Recommendations)

	// 注册全局中间件（按执行顺序）
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.SecurityCheckMiddleware(cfg.Middleware.Security),
		middleware.TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Interval,
		),
	)

	// 基础接口组
	h.GET("/health", healthHandler.AdvancedHealthCheck)

	// 业务接口组
	apiGroup := h.Group("/api/v1")
	{
		books := apiGroup.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.POST("", bookHandler.Create)
			books.GET("/:id", bookHandler.Get)
			books.PUT("/:id", bookHandler.Replace)
			books.DELETE("/:id", bookHandler.Delete)
			books.GET("/:id/loans", loanHandler.OfBook)
			books.GET("/:id/reviews", bookHandler.Reviews)
		}

		users := apiGroup.Group("/users")
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Replace)
			users.DELETE("/:id", userHandler.Delete)
			users.GET("/:id/loans", loanHandler.OfUser)
			users.GET("/:id/recommendations", recommendationHandler.ForUser)
		}

		loans := apiGroup.Group("/loans")
		{
			loans.GET("", loanHandler.List)
			loans.POST("", loanHandler.Create)
			loans.GET("/:id", loanHandler.Get)
			loans.PUT("/:id", loanHandler.Replace)
			loans.PATCH("/:id", loanHandler.Return)
			loans.DELETE("/:id", loanHandler.Delete)
		}

		reviews := apiGroup.Group("/reviews")
		{
			reviews.POST("", reviewHandler.Create)
			reviews.GET("/:userId/:bookId", reviewHandler.Get)
			reviews.PUT("/:userId/:bookId", reviewHandler.Replace)
			reviews.DELETE("/:userId/:bookId", reviewHandler.Delete)
		}

		reports := apiGroup.Group("/reports")
		{
			reports.GET("/users", reportHandler.ByUser)
			reports.GET("/books", reportHandler.ByBook)
		}
	}
}
