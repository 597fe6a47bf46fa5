package admin

import (
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	audit := service.AuthEventInput{ActorType: constants.AuthActorAdmin, Identifier: req.Username, Event: constants.AuthEventLogin, Err: err}
	if err != nil {
		shared.RecordAuthEvent(c, h.AuthEventService, audit)
		respondMapped(c, err, adminAuthErrorRules, "error.internal")
		return
	}
	audit.ActorID = admin.ID
	shared.RecordAuthEvent(c, h.AuthEventService, audit)
	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		requestLog(c).Warnw("admin_login_roles_failed", "admin_id", admin.ID, "error", err)
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin":      admin,
		"roles":      roles,
	})
}

// GetAdminMe 当前管理员及其角色
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"admin": admin, "roles": roles})
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	err := h.AuthService.ChangePassword(c.Request.Context(), adminID, req.OldPassword, req.NewPassword)
	shared.RecordAuthEvent(c, h.AuthEventService, service.AuthEventInput{
		ActorType: constants.AuthActorAdmin,
		ActorID:   adminID,
		Event:     constants.AuthEventPasswordChange,
		Err:       err,
	})
	if err != nil {
		respondMapped(c, err, adminAuthErrorRules, "error.internal")
		return
	}
	response.Success(c, nil)
}
