package storagefactory

import (
	"context"
	"fmt"

	"carmarket/internal/config"
	"carmarket/internal/pkg/storage"
	"carmarket/internal/pkg/storage/local"
	"carmarket/internal/pkg/storage/minio"
	"carmarket/internal/pkg/storage/oss"
)

// NewStorage 根据配置创建存储实例
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "local":
		if cfg.Local == nil {
			return nil, fmt.Errorf("local storage config is required")
		}
		s, err := local.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "oss":
		if cfg.OSS == nil {
			return nil, fmt.Errorf("OSS storage config is required")
		}
		s, err := oss.NewOSSStorage(
			cfg.OSS.Endpoint,
			cfg.OSS.Bucket,
			cfg.OSS.AccessKeyID,
			cfg.OSS.AccessKeySecret,
		)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "minio":
		if cfg.MinIO == nil {
			return nil, fmt.Errorf("MinIO storage config is required")
		}
		s, err := minio.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure minio bucket: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
