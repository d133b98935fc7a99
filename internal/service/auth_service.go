package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"carmarket/internal/model/account"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/jwt"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
	"carmarket/internal/pkg/password"
)

// AuthService 登录认证服务
type AuthService interface {
	Authenticate(ctx context.Context, username, pwd string) (*LoginResult, error)
	ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

type authService struct {
	users    UserStore
	profiles ProfileStore
	jwt      *jwt.JWT
	log      zerolog.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(users UserStore, profiles ProfileStore, tokens *jwt.JWT) AuthService {
	return &authService{
		users:    users,
		profiles: profiles,
		jwt:      tokens,
		log:      logger.Component("auth"),
	}
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
	User        *account.User
	Profile     *account.Profile
}

// Authenticate 校验用户名与凭据
// 用户不存在、凭据不符、账号挂起都返回 Unauthorized；
// 用户角色没有对应档案属于数据不一致，返回 Internal
func (s *authService) Authenticate(ctx context.Context, username, pwd string) (*LoginResult, error) {
	if username == "" || pwd == "" {
		return nil, apperr.BadRequest("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, apperr.Internal(err, "failed to load user")
	}
	if !password.Verify(pwd, user.Password) {
		return nil, apperr.Unauthorized("invalid username or password")
	}
	if user.Suspended {
		return nil, apperr.Unauthorized("account is suspended")
	}

	profile, err := s.profiles.FindByRole(ctx, user.Role)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			s.log.Error().Str("user_id", user.ID).Str("role", user.Role).Msg("user role has no profile")
			return nil, apperr.Internal(nil, "role %q of user %q has no profile", user.Role, user.Username)
		}
		return nil, apperr.Internal(err, "failed to load profile")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to generate access token")
		return nil, apperr.Internal(err, "failed to generate token")
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int(s.jwt.Expiration().Seconds()),
		TokenType:   "Bearer",
		User:        user,
		Profile:     profile,
	}, nil
}

// ValidateToken 校验访问令牌，并确认令牌对应的账号仍然有效
// 签发之后被挂起或删除的账号立即失效，角色以库中当前值为准
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, apperr.Unauthorized("token expired")
		}
		return nil, apperr.Unauthorized("invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, apperr.Unauthorized("account no longer exists")
		}
		return nil, apperr.Internal(err, "failed to load user")
	}
	if user.Suspended {
		s.log.Debug().Str("user_id", user.ID).Msg("rejected token of suspended account")
		return nil, apperr.Unauthorized("account is suspended")
	}
	claims.Username = user.Username
	claims.Role = user.Role
	return claims, nil
}
