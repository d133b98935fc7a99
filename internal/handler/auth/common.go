package auth

import (
	"time"

	"carmarket/internal/model/account"
	httputil "carmarket/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID        string `json:"id"`         // 用户ID
	Username  string `json:"username"`   // 用户名
	Email     string `json:"email"`      // 邮箱
	Role      string `json:"role"`       // 角色：user_admin/used_car_agent/buyer/seller
	Suspended bool   `json:"suspended"`  // 是否挂起
	CreatedAt string `json:"created_at"` // 创建时间
}

// ProfileInfo 角色档案信息
type ProfileInfo struct {
	Role      string   `json:"role"`
	Rights    []string `json:"rights"`
	Suspended bool     `json:"suspended"`
}

// ToUserInfo 将User实体转换为UserInfo（不含凭据）
func ToUserInfo(user *account.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Suspended: user.Suspended,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToProfileInfo 将Profile实体转换为ProfileInfo
func ToProfileInfo(profile *account.Profile) ProfileInfo {
	rights := profile.Rights
	if rights == nil {
		rights = []string{}
	}
	return ProfileInfo{
		Role:      profile.Role,
		Rights:    rights,
		Suspended: profile.Suspended,
	}
}
