package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"carmarket/internal/config"
	"carmarket/internal/pkg/cache"
	"carmarket/internal/pkg/jwt"
	"carmarket/internal/pkg/mongodb"
	"carmarket/internal/pkg/storage"
	"carmarket/internal/pkg/storagefactory"
	accountRepo "carmarket/internal/repository/account"
	listingRepo "carmarket/internal/repository/listing"
	reviewRepo "carmarket/internal/repository/review"
	shortlistRepo "carmarket/internal/repository/shortlist"
	"carmarket/internal/service"
)

const defaultJWTSecret = "default-secret-key-change-in-production"

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New 创建服务器实例
// MongoDB 为必需依赖；Redis 与图片存储可选，连接失败时降级运行
func New(cfg *config.Config) (*Server, error) {
	setGinMode(cfg.Server.Mode)

	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongo.uri is required")
	}
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	// 创建索引（唯一约束依赖这些索引）
	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// 初始化 Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without name cache")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化图片存储 (可选)
	var objectStorage storage.Storage
	if cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(context.Background(), &cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("type", cfg.Storage.Type).Msg("failed to initialize storage, listing images disabled")
		} else {
			objectStorage = st
			log.Info().Str("type", st.GetStorageType()).Msg("initialized listing image storage")
		}
	}

	db := mongoClient.Database()
	users := accountRepo.NewUserRepo(db)
	profiles := accountRepo.NewProfileRepo(db)
	listings := listingRepo.NewListingRepo(db)
	shortlists := shortlistRepo.NewShortlistRepo(db)
	reviews := reviewRepo.NewReviewRepo(db)

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	shortlistOpts := []service.ShortlistOption{service.WithUnavailableName(cfg.Market.UnavailableName)}
	if redisCache != nil {
		shortlistOpts = append(shortlistOpts, service.WithNameCache(cache.NewNameCache(redisCache, cfg.Market.NameCacheTTL)))
	}

	var imageStorage service.ObjectStorage
	if objectStorage != nil {
		imageStorage = objectStorage
	}

	svcs := &Services{
		Auth:      service.NewAuthService(users, profiles, jwt.NewJWT(jwtSecret, accessTokenExpiry)),
		Account:   service.NewAccountService(users, profiles),
		Listing:   service.NewListingService(listings, shortlists, imageStorage),
		Shortlist: service.NewShortlistService(shortlists, listings, users, shortlistOpts...),
		Review:    service.NewReviewService(reviews, users, listings),
	}

	engine := NewRouter(cfg, svcs, mongoClient)
	mountLocalMedia(engine, &cfg.Storage, objectStorage)

	return &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}, nil
}

func setGinMode(mode string) {
	switch mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// mountLocalMedia 本地存储时由本服务提供图片访问
func mountLocalMedia(engine *gin.Engine, cfg *config.StorageConfig, st storage.Storage) {
	if st == nil || st.GetStorageType() != string(storage.StorageTypeLocal) || cfg.Local == nil {
		return
	}
	u, err := url.Parse(cfg.Local.BaseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		log.Warn().Str("base_url", cfg.Local.BaseURL).Msg("local storage base_url has no path, images are not served")
		return
	}
	engine.Static(u.Path, cfg.Local.BasePath)
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}
		return err
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
