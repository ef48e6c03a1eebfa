package authz

import (
	"fmt"
	"slices"
)

// HasRole 含继承关系
func (s *Service) HasRole(userID uint, role string) (bool, error) {
	want, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	e, err := s.ready()
	if err != nil {
		return false, err
	}
	roles, err := e.GetImplicitRolesForUser(SubjectForUser(userID))
	if err != nil {
		return false, fmt.Errorf("authz: implicit roles of user %d: %w", userID, err)
	}
	return slices.Contains(roles, want), nil
}

// EnsureRole 幂等创建角色，返回规范化后的名字
func (s *Service) EnsureRole(role string) (string, error) {
	name, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if name == roleAnchor {
		return "", ErrReservedRole
	}
	e, err := s.ready()
	if err != nil {
		return "", err
	}
	if _, err := e.AddNamedGroupingPolicy("g", name, roleAnchor); err != nil {
		return "", fmt.Errorf("authz: create %s: %w", name, err)
	}
	return name, nil
}

// ListRoles 按名字排序
func (s *Service) ListRoles() ([]string, error) {
	e, err := s.ready()
	if err != nil {
		return nil, err
	}
	links, err := e.GetFilteredNamedGroupingPolicy("g", 1, roleAnchor)
	if err != nil {
		return nil, fmt.Errorf("authz: list roles: %w", err)
	}
	roles := make([]string, 0, len(links))
	for _, link := range links {
		if len(link) > 0 && isRole(link[0]) {
			roles = append(roles, link[0])
		}
	}
	slices.Sort(roles)
	return roles, nil
}

// DeleteRole 连同策略、继承关系与用户绑定一起删除；内置角色不可删
func (s *Service) DeleteRole(role string) error {
	name, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	switch {
	case name == roleAnchor:
		return ErrReservedRole
	case isBuiltinRole(name):
		return ErrBuiltinRole
	}
	e, err := s.ready()
	if err != nil {
		return err
	}
	if _, err := e.RemoveFilteredPolicy(0, name); err != nil {
		return fmt.Errorf("authz: drop policies of %s: %w", name, err)
	}
	// 作为子角色（含锚点）与作为父角色的关系
	for _, field := range []int{0, 1} {
		if _, err := e.RemoveFilteredNamedGroupingPolicy("g", field, name); err != nil {
			return fmt.Errorf("authz: unlink %s: %w", name, err)
		}
	}
	return nil
}

func (s *Service) rolePolicy(role, object, action string, ensure bool) (string, string, string, error) {
	var (
		name string
		err  error
	)
	if ensure {
		name, err = s.EnsureRole(role)
	} else {
		name, err = NormalizeRole(role)
	}
	if err != nil {
		return "", "", "", err
	}
	act := NormalizeAction(action)
	if act == "" {
		return "", "", "", ErrActionRequired
	}
	return name, NormalizeObject(object), act, nil
}

// GrantRolePolicy 角色不存在时自动创建
func (s *Service) GrantRolePolicy(role, object, action string) error {
	sub, obj, act, err := s.rolePolicy(role, object, action, true)
	if err != nil {
		return err
	}
	e, err := s.ready()
	if err != nil {
		return err
	}
	if _, err := e.AddPolicy(sub, obj, act); err != nil {
		return fmt.Errorf("authz: grant %s %s to %s: %w", act, obj, sub, err)
	}
	return nil
}

// RevokeRolePolicy 策略不存在时不报错
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	sub, obj, act, err := s.rolePolicy(role, object, action, false)
	if err != nil {
		return err
	}
	e, err := s.ready()
	if err != nil {
		return err
	}
	if _, err := e.RemovePolicy(sub, obj, act); err != nil {
		return fmt.Errorf("authz: revoke %s %s from %s: %w", act, obj, sub, err)
	}
	return nil
}

// GetRolePolicies 只含角色直接持有的策略
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	name, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	e, err := s.ready()
	if err != nil {
		return nil, err
	}
	rules, err := e.GetFilteredPolicy(0, name)
	if err != nil {
		return nil, fmt.Errorf("authz: policies of %s: %w", name, err)
	}
	return policiesFromRules(rules), nil
}

// SetUserRoles 整体替换用户的角色，空列表即清空
func (s *Service) SetUserRoles(userID uint, roles []string) error {
	if userID == 0 {
		return ErrUserRequired
	}
	e, err := s.ready()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		name, err := s.EnsureRole(role)
		if err != nil {
			return err
		}
		names = append(names, name)
	}

	subject := SubjectForUser(userID)
	if _, err := e.RemoveFilteredNamedGroupingPolicy("g", 0, subject); err != nil {
		return fmt.Errorf("authz: clear roles of %s: %w", subject, err)
	}
	for _, name := range names {
		if _, err := e.AddNamedGroupingPolicy("g", subject, name); err != nil {
			return fmt.Errorf("authz: bind %s to %s: %w", name, subject, err)
		}
	}
	return nil
}

// GetUserRoles 只含直接绑定的角色
func (s *Service) GetUserRoles(userID uint) ([]string, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	e, err := s.ready()
	if err != nil {
		return nil, err
	}
	bound, err := e.GetRolesForUser(SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("authz: roles of user %d: %w", userID, err)
	}
	roles := slices.DeleteFunc(slices.Clone(bound), func(r string) bool { return !isRole(r) })
	slices.Sort(roles)
	return roles, nil
}

// GetUserPolicies 生效策略，含继承角色带来的部分
func (s *Service) GetUserPolicies(userID uint) ([]Policy, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	e, err := s.ready()
	if err != nil {
		return nil, err
	}
	rules, err := e.GetImplicitPermissionsForUser(SubjectForUser(userID))
	if err != nil {
		return nil, fmt.Errorf("authz: policies of user %d: %w", userID, err)
	}
	return policiesFromRules(rules), nil
}
