package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"carmarket/internal/model/account"
	"carmarket/internal/pkg/apperr"
	"carmarket/internal/pkg/id"
	"carmarket/internal/pkg/logger"
	"carmarket/internal/pkg/mongodb"
	"carmarket/internal/pkg/password"
)

// AccountService 用户与角色档案服务
// 负责账号的创建、筛选、挂起，以及档案挂起到用户的级联
type AccountService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*account.User, error)
	FilterUsers(ctx context.Context, req *FilterUsersRequest) ([]*account.User, error)
	GetUserByID(ctx context.Context, userID string) (*account.User, error)
	GetUserByUsername(ctx context.Context, username string) (*account.User, error)
	UpdateUser(ctx context.Context, username string, req *UpdateUserRequest) error
	SuspendUser(ctx context.Context, username string) error
	ReenableUser(ctx context.Context, username string) error
	SuspendUsersByRole(ctx context.Context, role string) (int64, error)
	ReenableUsersByRole(ctx context.Context, role string) (int64, error)

	CreateProfile(ctx context.Context, req *CreateProfileRequest) (*account.Profile, error)
	GetProfiles(ctx context.Context, role string) ([]*account.Profile, error)
	SearchProfiles(ctx context.Context, query string) ([]*account.Profile, error)
	UpdateProfile(ctx context.Context, role string, rights []string) error
	SuspendProfile(ctx context.Context, role string) (*CascadeResult, error)
	ReenableProfile(ctx context.Context, role string) (*CascadeResult, error)
}

type accountService struct {
	users    UserStore
	profiles ProfileStore
	log      zerolog.Logger
}

// NewAccountService 创建用户与档案服务
func NewAccountService(users UserStore, profiles ProfileStore) AccountService {
	return &accountService{
		users:    users,
		profiles: profiles,
		log:      logger.Component("account"),
	}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string
	Password string
	Email    string
	Role     string
}

// CreateUser 创建用户
// 角色必须已有对应档案，否则该用户将无法登录
func (s *accountService) CreateUser(ctx context.Context, req *CreateUserRequest) (*account.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	role := strings.TrimSpace(req.Role)
	if username == "" || req.Password == "" || email == "" || role == "" {
		return nil, apperr.BadRequest("username, password, email and role are required")
	}
	if len(req.Password) > password.MaxLength {
		return nil, apperr.BadRequest("password must be at most %d bytes", password.MaxLength)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		return nil, apperr.Internal(err, "failed to look up user")
	}
	if existing != nil {
		return nil, apperr.Conflict("username %q already exists", username)
	}

	if err := s.requireProfile(ctx, role); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		return nil, apperr.Internal(err, "failed to store credential")
	}

	user := &account.User{
		ID:       id.New(),
		Username: username,
		Password: hashed,
		Email:    email,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return nil, apperr.Conflict("username %q already exists", username)
		}
		s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, apperr.Internal(err, "failed to create user")
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role).Msg("user created")
	return user, nil
}

func (s *accountService) requireProfile(ctx context.Context, role string) error {
	_, err := s.profiles.FindByRole(ctx, role)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodb.ErrNotFound):
		return apperr.BadRequest("role %q has no profile", role)
	default:
		return apperr.Internal(err, "failed to look up profile")
	}
}

// FilterUsersRequest 用户筛选请求
// Status 取值 active / suspended，为空表示不限
type FilterUsersRequest struct {
	Username string
	Email    string
	Role     string
	Status   string
}

// FilterUsers 筛选用户，结果可为空
func (s *accountService) FilterUsers(ctx context.Context, req *FilterUsersRequest) ([]*account.User, error) {
	filter := account.UserFilter{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Role:     strings.TrimSpace(req.Role),
	}
	switch strings.ToLower(strings.TrimSpace(req.Status)) {
	case "":
	case account.StatusActive:
		filter.Suspended = boolPtr(false)
	case account.StatusSuspended:
		filter.Suspended = boolPtr(true)
	default:
		return nil, apperr.BadRequest("status must be %q or %q", account.StatusActive, account.StatusSuspended)
	}

	users, err := s.users.Find(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to filter users")
		return nil, apperr.Internal(err, "failed to filter users")
	}
	if users == nil {
		users = []*account.User{}
	}
	return users, nil
}

// GetUserByID 根据ID获取用户
func (s *accountService) GetUserByID(ctx context.Context, userID string) (*account.User, error) {
	if !id.IsValid(userID) {
		return nil, apperr.NotFound("user not found")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}
	return user, nil
}

// GetUserByUsername 根据用户名获取用户
func (s *accountService) GetUserByUsername(ctx context.Context, username string) (*account.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.BadRequest("username is required")
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}
	return user, nil
}

// UpdateUserRequest 更新用户请求（nil 表示不修改）
type UpdateUserRequest struct {
	Email    *string
	Password *string
	Role     *string
}

// UpdateUser 更新用户邮箱、凭据或角色
func (s *accountService) UpdateUser(ctx context.Context, username string, req *UpdateUserRequest) error {
	upd := account.UserUpdate{Email: req.Email, Role: req.Role}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) == "" {
		return apperr.BadRequest("email must not be empty")
	}
	if req.Password != nil {
		if *req.Password == "" {
			return apperr.BadRequest("password must not be empty")
		}
		if len(*req.Password) > password.MaxLength {
			return apperr.BadRequest("password must be at most %d bytes", password.MaxLength)
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return apperr.Internal(err, "failed to store credential")
		}
		upd.Password = &hashed
	}
	if upd.Role != nil {
		if err := s.requireProfile(ctx, *upd.Role); err != nil {
			return err
		}
	}
	if upd.IsEmpty() {
		return apperr.BadRequest("no update data provided")
	}

	if err := s.users.Update(ctx, username, upd); err != nil {
		return notFoundOr(err, "user not found", "failed to update user")
	}
	return nil
}

// SuspendUser 挂起用户
func (s *accountService) SuspendUser(ctx context.Context, username string) error {
	return s.setUserSuspended(ctx, username, true)
}

// ReenableUser 恢复用户
func (s *accountService) ReenableUser(ctx context.Context, username string) error {
	return s.setUserSuspended(ctx, username, false)
}

func (s *accountService) setUserSuspended(ctx context.Context, username string, suspended bool) error {
	if err := s.users.SetSuspended(ctx, username, suspended); err != nil {
		return notFoundOr(err, "user not found", "failed to update user")
	}
	s.log.Info().Str("username", username).Bool("suspended", suspended).Msg("user suspension changed")
	return nil
}

// SuspendUsersByRole 批量挂起某角色下的用户，影响数为 0 不是错误
func (s *accountService) SuspendUsersByRole(ctx context.Context, role string) (int64, error) {
	return s.setRoleSuspended(ctx, role, true)
}

// ReenableUsersByRole 批量恢复某角色下的用户
func (s *accountService) ReenableUsersByRole(ctx context.Context, role string) (int64, error) {
	return s.setRoleSuspended(ctx, role, false)
}

func (s *accountService) setRoleSuspended(ctx context.Context, role string, suspended bool) (int64, error) {
	n, err := s.users.SetSuspendedByRole(ctx, role, suspended)
	if err != nil {
		return 0, apperr.Internal(err, "failed to update users with role %q", role)
	}
	return n, nil
}

// CreateProfileRequest 创建档案请求
type CreateProfileRequest struct {
	Role   string
	Rights []string
}

// CreateProfile 创建角色档案，每个角色至多一个
func (s *accountService) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*account.Profile, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		return nil, apperr.BadRequest("role is required")
	}
	rights := req.Rights
	if rights == nil {
		rights = []string{}
	}

	profile := &account.Profile{
		ID:     id.New(),
		Role:   role,
		Rights: rights,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return nil, apperr.Conflict("profile with role %q already exists", role)
		}
		s.log.Error().Err(err).Str("role", role).Msg("failed to create profile")
		return nil, apperr.Internal(err, "failed to create profile")
	}

	s.log.Info().Str("role", role).Msg("profile created")
	return profile, nil
}

// GetProfiles role 为空时返回全部档案，否则返回该角色的档案
func (s *accountService) GetProfiles(ctx context.Context, role string) ([]*account.Profile, error) {
	if role == "" {
		profiles, err := s.profiles.List(ctx)
		if err != nil {
			return nil, apperr.Internal(err, "failed to list profiles")
		}
		return profiles, nil
	}

	profile, err := s.profiles.FindByRole(ctx, role)
	if err != nil {
		return nil, notFoundOr(err, "profile not found", "failed to load profile")
	}
	return []*account.Profile{profile}, nil
}

// SearchProfiles 按正则搜索角色名与权限
func (s *accountService) SearchProfiles(ctx context.Context, query string) ([]*account.Profile, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.BadRequest("query parameter is required")
	}
	if _, err := regexp.Compile(query); err != nil {
		return nil, apperr.BadRequest("invalid search pattern: %v", err)
	}

	profiles, err := s.profiles.Search(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err, "failed to search profiles")
	}
	if profiles == nil {
		profiles = []*account.Profile{}
	}
	return profiles, nil
}

// UpdateProfile 更新档案权限；内容未变化同样视为成功
func (s *accountService) UpdateProfile(ctx context.Context, role string, rights []string) error {
	if rights == nil {
		return apperr.BadRequest("no update data provided")
	}
	if err := s.profiles.UpdateRights(ctx, role, rights); err != nil {
		return notFoundOr(err, "profile not found", "failed to update profile")
	}
	return nil
}

// CascadeResult 档案挂起/恢复的级联结果
type CascadeResult struct {
	Role          string `json:"role"`
	Suspended     bool   `json:"suspended"`
	UsersAffected int64  `json:"users_affected"`
}

// SuspendProfile 挂起档案并级联挂起该角色下所有用户
func (s *accountService) SuspendProfile(ctx context.Context, role string) (*CascadeResult, error) {
	return s.cascade(ctx, role, true)
}

// ReenableProfile 恢复档案并级联恢复该角色下所有用户
func (s *accountService) ReenableProfile(ctx context.Context, role string) (*CascadeResult, error) {
	return s.cascade(ctx, role, false)
}

// cascade 两步写入：先写档案，再批量写用户
// 两个集合之间没有原子性；第二步失败时返回 Internal，
// 重新调用同一操作会再次执行（幂等的）用户批量更新，从而修复不一致状态
func (s *accountService) cascade(ctx context.Context, role string, suspended bool) (*CascadeResult, error) {
	if strings.TrimSpace(role) == "" {
		return nil, apperr.BadRequest("role is required")
	}

	if err := s.profiles.SetSuspended(ctx, role, suspended); err != nil {
		return nil, notFoundOr(err, "profile not found", "failed to update profile")
	}

	n, err := s.users.SetSuspendedByRole(ctx, role, suspended)
	if err != nil {
		s.log.Warn().Err(err).
			Str("role", role).
			Bool("suspended", suspended).
			Msg("profile updated but cascade to users failed")
		return nil, apperr.Internal(err,
			"profile %q updated (suspended=%t) but cascade to users failed; retry the operation to apply it to users",
			role, suspended)
	}

	s.log.Info().Str("role", role).Bool("suspended", suspended).Int64("users", n).Msg("profile cascade applied")
	return &CascadeResult{Role: role, Suspended: suspended, UsersAffected: n}, nil
}

// notFoundOr 将仓库层 ErrNotFound 映射为 NotFound，其余映射为 Internal
func notFoundOr(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperr.NotFound("%s", notFoundMsg)
	}
	return apperr.Internal(err, "%s", internalMsg)
}

func boolPtr(b bool) *bool { return &b }
