package admin

import (
	authHandler "carmarket/internal/handler/auth"
	"carmarket/internal/model/account"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// Handler 管理员处理器（用户与角色档案管理）
type Handler struct {
	accountService service.AccountService
}

// NewHandler 创建管理员处理器
func NewHandler(accountService service.AccountService) *Handler {
	return &Handler{
		accountService: accountService,
	}
}

func toUserInfos(users []*account.User) []authHandler.UserInfo {
	infos := make([]authHandler.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, authHandler.ToUserInfo(u))
	}
	return infos
}

func toProfileInfos(profiles []*account.Profile) []authHandler.ProfileInfo {
	infos := make([]authHandler.ProfileInfo, 0, len(profiles))
	for _, p := range profiles {
		infos = append(infos, authHandler.ToProfileInfo(p))
	}
	return infos
}
