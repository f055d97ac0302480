package auth

import (
	"strings"

	"github.com/samber/lo"

	"testhub/pkg/constants"
)

// Permission 内置权限, 形如 "<资源>:<动作>"
type Permission string

const (
	PermUserManage       Permission = "user:manage"
	PermInvitationManage Permission = "invitation:manage"

	PermRequirementWrite Permission = "requirement:write"
	PermTestCaseWrite    Permission = "test_case:write"
	PermTestRunWrite     Permission = "test_run:write"
	PermTagWrite         Permission = "tag:write"
	PermCommentWrite     Permission = "comment:write"
	PermAttachmentWrite  Permission = "attachment:write"
	PermReportView       Permission = "report:view"
	PermSettingsWrite    Permission = "settings:write"
)

// 非管理员角色共享的内容权限
var contentPermissions = []Permission{
	"requirement:*",
	"test_case:*",
	"test_run:*",
	"tag:*",
	"comment:*",
	"attachment:*",
	"report:view",
	"settings:*",
}

// RolePermissions 每个角色拥有的权限集合
var RolePermissions = map[string][]Permission{
	constants.RoleAdmin:     {"*"},
	constants.RoleTester:    contentPermissions,
	constants.RoleDeveloper: contentPermissions,
	constants.RoleViewer:    contentPermissions,
	constants.RoleUser:      contentPermissions,
}

// Allow 判断角色是否拥有所需权限，支持通配符
func Allow(role string, need Permission) bool {
	return lo.SomeBy(RolePermissions[role], func(p Permission) bool {
		return match(p, need)
	})
}

// match "*" 匹配全部; 以 "*" 结尾的段匹配剩余所有段
func match(have, need Permission) bool {
	if have == "*" || have == need {
		return true
	}

	haveParts := strings.Split(string(have), ":")
	needParts := strings.Split(string(need), ":")
	for i, part := range haveParts {
		if part == "*" {
			return true
		}
		if i >= len(needParts) || part != needParts[i] {
			return false
		}
	}
	return len(haveParts) == len(needParts)
}
