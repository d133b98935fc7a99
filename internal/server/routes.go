package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"carmarket/internal/config"
	"carmarket/internal/handler"
	adminHandler "carmarket/internal/handler/admin"
	authHandler "carmarket/internal/handler/auth"
	listingHandler "carmarket/internal/handler/listing"
	reviewHandler "carmarket/internal/handler/review"
	shortlistHandler "carmarket/internal/handler/shortlist"
	"carmarket/internal/model/account"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/server/middleware"
	"carmarket/internal/service"
)

// Services 路由依赖的业务服务
type Services struct {
	Auth      service.AuthService
	Account   service.AccountService
	Listing   service.ListingService
	Shortlist service.ShortlistService
	Review    service.ReviewService
}

// NewRouter 创建 Gin 引擎并注册全部路由
func NewRouter(cfg *config.Config, svcs *Services, db handler.Pinger) *gin.Engine {
	engine := gin.New()

	// 全局中间件
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(logger.Component("http")))
	engine.Use(middleware.CORS(cfg.Server.AllowOrigins))

	// 健康检查
	healthHandler := handler.NewHealthHandler(db)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHdl := authHandler.NewHandler(svcs.Auth, svcs.Account)
	adminHdl := adminHandler.NewHandler(svcs.Account)
	listingHdl := listingHandler.NewHandler(svcs.Listing)
	shortlistHdl := shortlistHandler.NewHandler(svcs.Shortlist)
	reviewHdl := reviewHandler.NewHandler(svcs.Review)

	v1 := engine.Group("/api/v1")

	// 认证接口（公开）
	v1.POST("/auth/login", authHdl.Login)

	// 需要认证的接口
	authed := v1.Group("")
	authed.Use(middleware.Auth(svcs.Auth))
	authed.GET("/auth/me", authHdl.GetMe)

	// 用户与档案管理（管理员）
	admin := authed.Group("/admin", middleware.RequireRole(account.RoleAdmin))
	{
		admin.POST("/users", adminHdl.CreateUser)
		admin.GET("/users", adminHdl.FilterUsers)
		admin.GET("/users/:username", adminHdl.GetUser)
		admin.PUT("/users/:username", adminHdl.UpdateUser)
		admin.POST("/users/:username/suspend", adminHdl.SuspendUser)
		admin.POST("/users/:username/reenable", adminHdl.ReenableUser)

		admin.POST("/profiles", adminHdl.CreateProfile)
		admin.GET("/profiles", adminHdl.GetProfiles)
		admin.GET("/profiles/search", adminHdl.SearchProfiles)
		admin.PUT("/profiles/:role", adminHdl.UpdateProfile)
		admin.POST("/profiles/:role/suspend", adminHdl.SuspendProfile)
		admin.POST("/profiles/:role/reenable", adminHdl.ReenableProfile)
	}

	// 车源（浏览对所有登录用户开放）
	authed.GET("/listings", listingHdl.ListListings)
	authed.GET("/listings/search", listingHdl.SearchListings)
	authed.GET("/listings/:id", listingHdl.GetListing)
	authed.GET("/listings/:id/metrics", listingHdl.GetMetrics)
	authed.POST("/listings/:id/views", listingHdl.TrackView)
	authed.POST("/listings/:id/shortlists", listingHdl.TrackShortlist)
	authed.GET("/agents/:agent_id/listings", listingHdl.ListAgentListings)
	authed.GET("/agents/:agent_id/reviews", reviewHdl.GetAgentReviews)

	// 车源维护（归属校验在业务层完成）
	owners := authed.Group("", middleware.RequireRole(account.RoleAgent, account.RoleSeller))
	{
		owners.PUT("/listings/:id", listingHdl.UpdateListing)
		owners.DELETE("/listings/:id", listingHdl.DeleteListing)
		owners.POST("/listings/:id/images", listingHdl.AddImage)
		owners.DELETE("/listings/:id/images/:image_id", listingHdl.RemoveImage)
	}
	authed.POST("/listings", middleware.RequireRole(account.RoleAgent), listingHdl.CreateListing)

	// 卖家
	authed.GET("/seller/metrics", middleware.RequireRole(account.RoleSeller), listingHdl.SellerMetrics)

	// 买家收藏单
	buyer := authed.Group("/shortlist", middleware.RequireRole(account.RoleBuyer))
	{
		buyer.POST("", shortlistHdl.SaveListing)
		buyer.GET("", shortlistHdl.GetShortlist)
		buyer.GET("/search", shortlistHdl.SearchShortlist)
		buyer.DELETE("/:listing_id", shortlistHdl.RemoveFromShortlist)
	}

	// 评价；评价人角色（buyer / seller）由业务层校验
	authed.POST("/reviews", reviewHdl.CreateReview)
	authed.PUT("/reviews/:id", reviewHdl.EditReview)
	authed.POST("/listings/:id/reviews", reviewHdl.RateAndReview)

	return engine
}
