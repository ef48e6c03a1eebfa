package authz

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const policyTable = "casbin_rule"

//go:embed rbac_model.conf
var rbacModel string

var (
	ErrUnavailable    = errors.New("authz service unavailable")
	ErrRoleRequired   = errors.New("role is required")
	ErrReservedRole   = errors.New("reserved role is not allowed")
	ErrBuiltinRole    = errors.New("builtin role cannot be deleted")
	ErrActionRequired = errors.New("action is required")
	ErrUserRequired   = errors.New("user id is required")
)

// Service 基于 casbin 的 RBAC，策略随写随存到 casbin_rule 表。
// nil Service 的所有方法返回 ErrUnavailable。
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 建表并加载已有策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz: %w", ErrUnavailable)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", policyTable)
	if err != nil {
		return nil, fmt.Errorf("authz: open policy table: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz: new enforcer: %w", err)
	}
	e.AddFunction("keyMatch2", util.KeyMatch2Func)
	e.EnableAutoSave(true)
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: load policy: %w", err)
	}
	return &Service{enforcer: e}, nil
}

func (s *Service) ready() (*casbin.SyncedEnforcer, error) {
	if s == nil || s.enforcer == nil {
		return nil, ErrUnavailable
	}
	return s.enforcer, nil
}

// Enforce 主体可以是 user:<id> 或 role:<name>
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	e, err := s.ready()
	if err != nil {
		return false, err
	}
	return e.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceUser 菜谱编辑与员工接口共用
func (s *Service) EnforceUser(userID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForUser(userID), obj, act)
}
