package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:     "readonly_auditor",
			Policies: []Policy{{Object: "/admin/*", Action: "GET"}},
		},
		{
			Role:     "catalog_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/services", Action: "*"},
				{Object: "/admin/services/:id", Action: "*"},
				{Object: "/admin/puppies", Action: "*"},
				{Object: "/admin/puppies/:id", Action: "*"},
				{Object: "/admin/puppies/:id/best-seller", Action: "PATCH"},
				{Object: "/admin/collections", Action: "*"},
				{Object: "/admin/collections/:id", Action: "*"},
			},
		},
		{
			Role:     "order_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/orders/:id/tracking", Action: "PATCH"},
				{Object: "/admin/bookings/:id/status", Action: "PATCH"},
				{Object: "/admin/bookings/:id", Action: "DELETE"},
			},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色，已存在的规则跳过
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.ensureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.ensureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), NormalizeAction(policy.Action)); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
