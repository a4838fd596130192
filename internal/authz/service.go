package authz

import (
	"fmt"
	"strings"

	"github.com/foodiehub/internal/constants"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	userSubjectFmt  = "user:%d"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Service Casbin 授权服务，管理端接口统一经此判定
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并写入基础策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	svc := &Service{enforcer: enforcer}
	if err := svc.ensureBasePolicies(); err != nil {
		return nil, err
	}
	return svc, nil
}

// ensureBasePolicies 管理员角色放行全部 /api/v1/admin 路径
func (s *Service) ensureBasePolicies() error {
	adminRole := RoleSubject(constants.UserRoleAdmin)
	if _, err := s.enforcer.AddPolicy(adminRole, "/api/v1/admin/*", "*"); err != nil {
		return fmt.Errorf("add base policy failed: %w", err)
	}
	return nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), strings.TrimSpace(obj), strings.ToUpper(strings.TrimSpace(act)))
}

// EnforceUser 按用户 ID 判定授权
func (s *Service) EnforceUser(userID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForUser(userID), obj, act)
}

// AssignRole 给用户绑定角色
func (s *Service) AssignRole(userID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	_, err := s.enforcer.AddGroupingPolicy(SubjectForUser(userID), RoleSubject(role))
	return err
}

// RevokeRole 解除用户角色
func (s *Service) RevokeRole(userID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	_, err := s.enforcer.RemoveGroupingPolicy(SubjectForUser(userID), RoleSubject(role))
	return err
}

// SubjectForUser 用户主体标识
func SubjectForUser(userID uint) string {
	return fmt.Sprintf(userSubjectFmt, userID)
}

// RoleSubject 角色主体标识
func RoleSubject(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if strings.HasPrefix(role, rolePrefix) {
		return role
	}
	return rolePrefix + role
}
