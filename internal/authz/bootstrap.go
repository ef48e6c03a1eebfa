package authz

import (
	"fmt"

	"github.com/foodgram-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "catalog_manager",
			Policies: []Policy{
				{Object: "/admin/tags", Action: "*"},
				{Object: "/admin/tags/:id", Action: "*"},
				{Object: "/admin/ingredients", Action: "*"},
				{Object: "/admin/ingredients/:id", Action: "*"},
				{Object: "/admin/ingredients/import", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "moderator",
			Inherits: []string{"catalog_manager"},
			Policies: []Policy{
				{Object: "/recipes/:id", Action: "PATCH"},
				{Object: "/recipes/:id", Action: "DELETE"},
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/users/:id", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleStaff,
			Inherits: []string{"moderator"},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

func isBuiltinRole(role string) bool {
	for _, seed := range BuiltinRoleSeeds() {
		if name, err := NormalizeRole(seed.Role); err == nil && seed.Immutable && name == role {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 幂等，启动时每次执行；已存在的规则不会重复写入
func (s *Service) BootstrapBuiltinRoles() error {
	e, err := s.ready()
	if err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return fmt.Errorf("authz: seed %s: %w", seed.Role, err)
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return fmt.Errorf("authz: seed %s: %w", parent, err)
			}
			if _, err := e.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("authz: %s inherits %s: %w", role, parentRole, err)
			}
		}
		for _, p := range seed.Policies {
			if err := s.GrantRolePolicy(role, p.Object, p.Action); err != nil {
				return fmt.Errorf("authz: seed policy of %s: %w", role, err)
			}
		}
	}
	return nil
}
