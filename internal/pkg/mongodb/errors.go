package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound 文档不存在（或更新/删除未匹配任何文档）
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate 违反唯一索引
	ErrDuplicate = errors.New("duplicate key")
)

// Translate 将驱动错误转换为仓库层错误
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
