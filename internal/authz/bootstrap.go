package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "catalog_editor",
			Policies: []Policy{
				{Object: "/upload", Action: "POST"},
				{Object: "/ai-generate", Action: "*"},
				{Object: "/products", Action: "POST"},
				{Object: "/products", Action: "PUT"},
				{Object: "/admin/stats", Action: "GET"},
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/products/export", Action: "GET"},
				{Object: "/admin/products/import", Action: "POST"},
			},
		},
		{
			Role:     "admin",
			Inherits: []string{"catalog_editor"},
			Policies: []Policy{
				{Object: "/admin/emails", Action: "*"},
				{Object: "/admin/emails/:index", Action: "*"},
				{Object: "/admin/ai-template", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}

// BootstrapAdmin 初始化预置角色并授予配置中的管理员 admin 角色
func (s *Service) BootstrapAdmin(email string) error {
	if err := s.BootstrapBuiltinRoles(); err != nil {
		return err
	}
	return s.SetAdminRoles(email, []string{"admin"})
}
