package service

import (
	"context"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// UserRoleAssigner 用户角色写入能力
type UserRoleAssigner interface {
	SetUserRoles(userID uint, roles []string) error
}

// UserProfile 用户信息及当前访问者的订阅状态
type UserProfile struct {
	User         models.User
	IsSubscribed bool
}

// UserService 用户查询与员工管理服务
type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	roles            UserRoleAssigner
	audit            *AuthzAuditService
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, subscriptionRepo repository.SubscriptionRepository, roles UserRoleAssigner, audit *AuthzAuditService) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		roles:            roles,
		audit:            audit,
	}
}

// Get 获取用户详情，viewerID 为 0 表示匿名访问
func (s *UserService) Get(viewerID, userID uint) (*UserProfile, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	subscribed, err := s.subscribedSet(viewerID, []uint{user.ID})
	if err != nil {
		return nil, err
	}
	return &UserProfile{User: *user, IsSubscribed: subscribed[user.ID]}, nil
}

// List 分页获取用户列表
func (s *UserService) List(viewerID uint, filter repository.UserListFilter) ([]UserProfile, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	subscribed, err := s.subscribedSet(viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	result := make([]UserProfile, 0, len(users))
	for _, user := range users {
		result = append(result, UserProfile{User: user, IsSubscribed: subscribed[user.ID]})
	}
	return result, total, nil
}

// SetStaffInput 员工权限变更输入
type SetStaffInput struct {
	OperatorID uint
	TargetID   uint
	IsStaff    bool
	RequestID  string
}

// SetStaff 授予或撤销员工权限，同步 RBAC 角色并写审计日志
func (s *UserService) SetStaff(input SetStaffInput) (*models.User, error) {
	if input.TargetID == 0 {
		return nil, ErrNotFound
	}
	if input.OperatorID == input.TargetID && !input.IsStaff {
		return nil, ErrStaffSelfDemote
	}
	target, err := s.userRepo.GetByID(input.TargetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}
	operator, err := s.userRepo.GetByID(input.OperatorID)
	if err != nil {
		return nil, err
	}

	if target.IsStaff != input.IsStaff {
		target.IsStaff = input.IsStaff
		target.UpdatedAt = time.Now()
		if err := s.userRepo.Update(target); err != nil {
			return nil, err
		}
		_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(target))
	}
	if err := s.syncStaffRole(target); err != nil {
		return nil, err
	}

	action := AuthzAuditActionRevokeStaff
	if input.IsStaff {
		action = AuthzAuditActionGrantStaff
	}
	operatorName := ""
	if operator != nil {
		operatorName = operator.Username
	}
	targetID := target.ID
	if err := s.audit.Record(AuthzAuditRecordInput{
		OperatorUserID:   input.OperatorID,
		OperatorUsername: operatorName,
		TargetUserID:     &targetID,
		TargetUsername:   target.Username,
		Action:           action,
		Role:             constants.RoleStaff,
		RequestID:        input.RequestID,
	}); err != nil {
		logger.Warnw("authz_audit_record_failed", "target_user_id", target.ID, "action", action, "error", err)
	}
	return target, nil
}

// SyncStaffRoles 按 is_staff 字段同步所有员工的 RBAC 角色
func (s *UserService) SyncStaffRoles() error {
	isStaff := true
	page := 1
	for {
		users, total, err := s.userRepo.List(repository.UserListFilter{Page: page, PageSize: 100, IsStaff: &isStaff})
		if err != nil {
			return err
		}
		for i := range users {
			if err := s.syncStaffRole(&users[i]); err != nil {
				return err
			}
		}
		if int64(page*100) >= total || len(users) == 0 {
			return nil
		}
		page++
	}
}

func (s *UserService) syncStaffRole(user *models.User) error {
	if s.roles == nil || user == nil {
		return nil
	}
	roles := []string{}
	if user.IsStaff {
		roles = append(roles, constants.RoleStaff)
	}
	return s.roles.SetUserRoles(user.ID, roles)
}

func (s *UserService) subscribedSet(viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	if viewerID == 0 || len(authorIDs) == 0 || s.subscriptionRepo == nil {
		return map[uint]bool{}, nil
	}
	return s.subscriptionRepo.SubscribedAuthorIDs(viewerID, authorIDs)
}
