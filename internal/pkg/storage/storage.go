package storage

import (
	"context"
	"io"
)

// Storage 车源图片存储接口
type Storage interface {
	// Upload 上传文件，返回可访问的URL
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)

	// Delete 删除文件，文件不存在视为成功
	Delete(ctx context.Context, key string) error

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
	StorageTypeMinIO StorageType = "minio" // MinIO
)
