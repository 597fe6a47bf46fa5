package admin

import (
	"strings"

	"github.com/pawhaven/internal/authz"
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest 角色策略授予/撤销
type RolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AdminRolesRequest 覆盖管理员角色
type AdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetRolePolicies 角色策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if _, err := authz.NormalizeRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, policies)
}

// GrantRolePolicy 授予策略
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	req, ok := bindRolePolicy(c)
	if !ok {
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	adminID, _ := c.Get("admin_id")
	requestLog(c).Infow("authz_policy_granted", "role", req.Role, "object", req.Object, "action", req.Action, "admin_id", adminID)
	response.Success(c, nil)
}

// RevokeRolePolicy 撤销策略
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	req, ok := bindRolePolicy(c)
	if !ok {
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	adminID, _ := c.Get("admin_id")
	requestLog(c).Infow("authz_policy_revoked", "role", req.Role, "object", req.Object, "action", req.Action, "admin_id", adminID)
	response.Success(c, nil)
}

func bindRolePolicy(c *gin.Context) (RolePolicyRequest, bool) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return req, false
	}
	if _, err := authz.NormalizeRole(req.Role); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return req, false
	}
	return req, true
}

// GetAdminRoles 管理员角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, gin.H{"admin_id": id, "roles": roles})
}

// SetAdminRoles 覆盖管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req AdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	for _, role := range req.Roles {
		if _, err := authz.NormalizeRole(role); err != nil {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
	}
	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, gin.H{"admin_id": id, "roles": roles})
}
