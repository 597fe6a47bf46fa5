package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/pawhaven/internal/cache"
	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuthService 顾客认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	cache    *cache.Store
	now      func() time.Time
}

// NewUserAuthService 创建顾客认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, store *cache.Store) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo, cache: store, now: time.Now}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册参数
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Locale      string
}

// AuthResult 登录/注册结果
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// GenerateUserJWT 生成用户 Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	ttl := hoursOr(s.cfg.UserJWT.ExpireHours, 72)
	if rememberMe {
		ttl = hoursOr(s.cfg.UserJWT.RememberMeExpireHours, 720)
	}
	claims := UserJWTClaims{
		UserID:           user.ID,
		Email:            user.Email,
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: registeredClaims(s.now(), ttl),
	}
	token, err := signToken(s.cfg.UserJWT.SecretKey, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// ParseUserJWT 解析用户 Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	if err := parseToken(s.cfg.UserJWT.SecretKey, tokenString, claims); err != nil || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate 校验 Token、账号状态与 Token 版本
func (s *UserAuthService) Authenticate(ctx context.Context, tokenString string) (*UserJWTClaims, error) {
	claims, err := s.ParseUserJWT(tokenString)
	if err != nil {
		return nil, err
	}
	state, hit, cacheErr := s.cache.GetUserAuthState(ctx, claims.UserID)
	if cacheErr != nil || !hit || state == nil {
		user, err := s.userRepo.GetByID(claims.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrInvalidToken
		}
		state = cache.BuildUserAuthState(user)
		_ = s.cache.SetUserAuthState(ctx, state)
	}
	if !isActiveUserStatus(state.Status) {
		return nil, ErrUserDisabled
	}
	if claims.TokenVersion != state.TokenVersion || !issuedAfter(claims.IssuedAt, state.TokenInvalidBefore) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Register 注册并直接签发 Token
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = nicknameFromEmail(email)
	}
	locale := strings.TrimSpace(input.Locale)
	if locale == "" {
		locale = "en"
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  name,
		Locale:       locale,
		Status:       constants.UserStatusActive,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 并发注册撞唯一索引
		if again, getErr := s.userRepo.GetByEmail(email); getErr == nil && again != nil {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	token, expiresAt, err := s.GenerateUserJWT(user, false)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	logger.Infow("user_registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login 邮箱密码登录
func (s *UserAuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || !verifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredential
	}
	if !isActiveUserStatus(user.Status) {
		return nil, ErrUserDisabled
	}
	token, expiresAt, err := s.GenerateUserJWT(user, rememberMe)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = s.cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// GetUserByID 获取用户
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword 修改密码，已签发的 Token 失效
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !verifyPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := s.now()
	user.PasswordHash = hashed
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = s.cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return nil
}

// UpdateProfile 更新昵称与语言
func (s *UserAuthService) UpdateProfile(userID uint, displayName, locale *string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	changed := false
	if displayName != nil {
		if trimmed := strings.TrimSpace(*displayName); trimmed != "" && trimmed != user.DisplayName {
			user.DisplayName = trimmed
			changed = true
		}
	}
	if locale != nil {
		if trimmed := strings.TrimSpace(*locale); trimmed != "" && trimmed != user.Locale {
			user.Locale = trimmed
			changed = true
		}
	}
	if !changed {
		return user, nil
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail 去空白、转小写并校验格式
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", newValidationError(ErrInvalidEmail, "email")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", newValidationError(ErrInvalidEmail, "email")
	}
	return trimmed, nil
}

func nicknameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func isActiveUserStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), constants.UserStatusActive)
}
