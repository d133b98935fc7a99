package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"carmarket/internal/config"
	"carmarket/internal/model/account"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
	accountrepo "carmarket/internal/repository/account"
	"carmarket/internal/service"
)

// defaultProfiles 初始角色档案及其权限
var defaultProfiles = []service.CreateProfileRequest{
	{Role: account.RoleAdmin, Rights: []string{"manage_users", "manage_profiles"}},
	{Role: account.RoleAgent, Rights: []string{"create_listing", "update_listing", "delete_listing", "view_listing", "view_reviews"}},
	{Role: account.RoleBuyer, Rights: []string{"view_listing", "search_listing", "shortlist", "rate_agent"}},
	{Role: account.RoleSeller, Rights: []string{"view_metrics", "rate_agent"}},
}

func main() {
	// 1. 加载配置（与 cmd/root.go 保持一致的搜索路径）
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.carmarket")

	viper.SetEnvPrefix("CARMARKET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "used_car_marketplace")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "No config file loaded (%v), using defaults and environment variables\n", err)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	// 2. 连接 MongoDB
	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	db := client.Database()
	ctx := context.Background()

	if err := mongodb.EnsureIndexes(db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	accounts := service.NewAccountService(accountrepo.NewUserRepo(db), accountrepo.NewProfileRepo(db))

	// 3. 初始化角色档案，已存在的跳过
	for i := range defaultProfiles {
		req := defaultProfiles[i]
		if _, err := accounts.CreateProfile(ctx, &req); err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				log.Info().Str("role", req.Role).Msg("profile exists, skipped")
				continue
			}
			log.Fatal().Err(err).Str("role", req.Role).Msg("create profile failed")
		}
		log.Info().Str("role", req.Role).Msg("profile created")
	}

	// 4. 读取环境变量或使用默认值
	username := envOr("INIT_ADMIN_USERNAME", "admin")
	passwordPlain := envOr("INIT_ADMIN_PASSWORD", "admin123")
	email := envOr("INIT_ADMIN_EMAIL", "admin@example.com")

	// 5. 创建管理员；已存在时更新为管理员角色并恢复
	_, err = accounts.CreateUser(ctx, &service.CreateUserRequest{
		Username: username,
		Password: passwordPlain,
		Email:    email,
		Role:     account.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Info().Str("username", username).Msg("admin user created")
	case apperr.Is(err, apperr.KindConflict):
		log.Info().Str("username", username).Msg("admin user exists, will update role/status")
		role := account.RoleAdmin
		if err := accounts.UpdateUser(ctx, username, &service.UpdateUserRequest{
			Email:    &email,
			Password: &passwordPlain,
			Role:     &role,
		}); err != nil {
			log.Fatal().Err(err).Msg("update admin user failed")
		}
		if err := accounts.ReenableUser(ctx, username); err != nil {
			log.Fatal().Err(err).Msg("re-enable admin user failed")
		}
	default:
		log.Fatal().Err(err).Msg("create admin user failed")
	}

	fmt.Printf("Admin initialized: username=%s password=%s role=%s\n",
		username, passwordPlain, account.RoleAdmin)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
