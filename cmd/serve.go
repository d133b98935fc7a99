package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"carmarket/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketplace API server",
	Long: `Start the used car marketplace API.

MongoDB is required; Redis (display name cache) and image storage are optional
and the server keeps running without them.`,
	Example: `  carmarket serve --mongo-uri mongodb://db:27017 --storage minio
  CARMARKET_AUTH_JWT_SECRET=... carmarket serve -p 9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	flags.StringP("host", "H", "0.0.0.0", "server host")
	flags.IntP("port", "p", 8080, "server port")
	flags.String("mode", "release", "server mode (debug/release/test)")

	flags.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	flags.String("mongo-database", "used_car_marketplace", "MongoDB database name")
	flags.String("redis-addr", "localhost:6379", "Redis address for the display name cache (empty to disable)")
	flags.String("storage", "local", "listing image storage (local/oss/minio)")

	flags.String("jwt-secret", "", "JWT signing secret (recommend using env: CARMARKET_AUTH_JWT_SECRET)")

	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	_ = viper.BindPFlag("server.host", flags.Lookup("host"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))
	_ = viper.BindPFlag("server.mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("mongo.uri", flags.Lookup("mongo-uri"))
	_ = viper.BindPFlag("mongo.database", flags.Lookup("mongo-database"))
	_ = viper.BindPFlag("redis.addr", flags.Lookup("redis-addr"))
	_ = viper.BindPFlag("storage.type", flags.Lookup("storage"))
	_ = viper.BindPFlag("auth.jwt_secret", flags.Lookup("jwt-secret"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("mode", cfg.Server.Mode).
		Str("database", cfg.Mongo.Database).
		Str("storage", cfg.Storage.Type).
		Bool("name_cache", cfg.Redis.Addr != "").
		Dur("token_expiry", cfg.Auth.AccessTokenExpiry).
		Msg("starting marketplace API")

	return srv.Run(ctx, addr)
}
