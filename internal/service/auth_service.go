package service

import (
	"context"
	"strings"
	"time"

	"github.com/pawhaven/internal/cache"
	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 管理员认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	cache     *cache.Store
	now       func() time.Time
}

// NewAuthService 创建管理员认证服务
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, store *cache.Store) *AuthService {
	return &AuthService{cfg: cfg, adminRepo: adminRepo, cache: store, now: time.Now}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// JWTClaims 管理员 JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成管理员 Token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	claims := JWTClaims{
		AdminID:          admin.ID,
		Username:         admin.Username,
		TokenVersion:     admin.TokenVersion,
		RegisteredClaims: registeredClaims(s.now(), hoursOr(s.cfg.JWT.ExpireHours, 24)),
	}
	token, err := signToken(s.cfg.JWT.SecretKey, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// ParseJWT 解析管理员 Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	if err := parseToken(s.cfg.JWT.SecretKey, tokenString, claims); err != nil || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate 校验 Token 并返回鉴权快照，快照优先读缓存
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*JWTClaims, *cache.AdminAuthState, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, nil, err
	}
	state, hit, cacheErr := s.cache.GetAdminAuthState(ctx, claims.AdminID)
	if cacheErr != nil || !hit || state == nil {
		admin, err := s.adminRepo.GetByID(claims.AdminID)
		if err != nil {
			return nil, nil, err
		}
		if admin == nil {
			return nil, nil, ErrInvalidToken
		}
		state = cache.BuildAdminAuthState(admin)
		_ = s.cache.SetAdminAuthState(ctx, state)
	}
	if claims.TokenVersion != state.TokenVersion || !issuedAfter(claims.IssuedAt, state.TokenInvalidBefore) {
		return nil, nil, ErrTokenRevoked
	}
	return claims, state, nil
}

// Login 管理员登录
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !verifyPassword(admin.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredential
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := s.now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = s.cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin))
	logger.Infow("admin_login", "admin_id", admin.ID)
	return admin, token, expiresAt, nil
}

// ChangePassword 修改管理员密码，旧 Token 全部失效
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if !verifyPassword(admin.PasswordHash, oldPassword) {
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
	admin.PasswordHash = hashed
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = s.cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin))
	return nil
}
