package public

import (
	"errors"
	"strings"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
	Locale      string `json:"locale"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	RememberMe  bool   `json:"rememberMe"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// UpdateProfileRequest 修改资料
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Locale      *string `json:"locale"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func authPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	}
}

// GetCaptcha 获取图片验证码，未启用时返回 enabled=false
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	audit := service.AuthEventInput{ActorType: constants.AuthActorUser, Identifier: req.Email, Event: constants.AuthEventRegister}
	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		audit.Err = err
		shared.RecordAuthEvent(c, h.AuthEventService, audit)
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	result, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Locale:      req.Locale,
	})
	if err != nil {
		audit.Err = err
		shared.RecordAuthEvent(c, h.AuthEventService, audit)
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	audit.ActorID = result.User.ID
	shared.RecordAuthEvent(c, h.AuthEventService, audit)
	response.Created(c, "", authPayload(result))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	audit := service.AuthEventInput{ActorType: constants.AuthActorUser, Identifier: req.Email, Event: constants.AuthEventLogin}
	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		audit.Err = err
		shared.RecordAuthEvent(c, h.AuthEventService, audit)
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	result, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrUserDisabled) {
			requestLog(c).Infow("user_login_disabled", "email", strings.ToLower(strings.TrimSpace(req.Email)))
		}
		audit.Err = err
		shared.RecordAuthEvent(c, h.AuthEventService, audit)
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	audit.ActorID = result.User.ID
	shared.RecordAuthEvent(c, h.AuthEventService, audit)
	response.Success(c, authPayload(result))
}

// GetMe 当前用户资料
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateMe 修改昵称与语言
func (h *Handler) UpdateMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req.DisplayName, req.Locale)
	if err != nil {
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	response.Success(c, user)
}

// ChangePassword 修改密码，旧 Token 全部失效
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword)
	shared.RecordAuthEvent(c, h.AuthEventService, service.AuthEventInput{
		ActorType: constants.AuthActorUser,
		ActorID:   uid,
		Event:     constants.AuthEventPasswordChange,
		Err:       err,
	})
	if err != nil {
		respondMapped(c, err, authErrorRules, "error.internal")
		return
	}
	response.Success(c, nil)
}
