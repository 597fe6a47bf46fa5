package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// AuthEventService 认证审计服务，写入失败只影响审计本身
type AuthEventService struct {
	repo repository.AuthEventRepository
	now  func() time.Time
}

// NewAuthEventService 创建认证审计服务
func NewAuthEventService(repo repository.AuthEventRepository) *AuthEventService {
	return &AuthEventService{repo: repo, now: time.Now}
}

// AuthEventInput 审计记录输入，Err 为空视为成功
type AuthEventInput struct {
	ActorType  string
	ActorID    uint
	Identifier string
	Event      string
	Err        error
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// Record 写入审计记录
func (s *AuthEventService) Record(input AuthEventInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	actor := strings.ToLower(strings.TrimSpace(input.ActorType))
	if actor != constants.AuthActorAdmin {
		actor = constants.AuthActorUser
	}
	identifier := strings.TrimSpace(input.Identifier)
	if actor == constants.AuthActorUser {
		if normalized, err := NormalizeEmail(identifier); err == nil {
			identifier = normalized
		}
	}
	event := &models.AuthEvent{
		ActorType:  actor,
		ActorID:    input.ActorID,
		Identifier: identifier,
		Event:      input.Event,
		Result:     constants.AuthResultSuccess,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  s.now(),
	}
	if input.Err != nil {
		event.Result = constants.AuthResultFailed
		event.FailReason = AuthFailReason(input.Err)
	}
	return s.repo.Create(event)
}

// List 管理端查询
func (s *AuthEventService) List(filter repository.AuthEventListFilter) ([]models.AuthEvent, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthEvent{}, 0, nil
	}
	return s.repo.List(filter)
}

// AuthFailReason 把认证错误归类为稳定的原因标识
func AuthFailReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredential):
		return "invalid_credential"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCaptchaInvalid), errors.Is(err, ErrCaptchaRequired):
		return "captcha_invalid"
	case errors.Is(err, ErrEmailExists):
		return "email_exists"
	case errors.Is(err, ErrInvalidEmail):
		return "email_invalid"
	case errors.Is(err, ErrWeakPassword):
		return "password_weak"
	case errors.Is(err, ErrInvalidPassword):
		return "old_password_invalid"
	}
	return "internal_error"
}
