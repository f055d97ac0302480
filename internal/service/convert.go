package service

import (
	"strings"

	"github.com/samber/lo"

	"testhub/internal/dto"
	"testhub/internal/model"
)

func toUserBrief(user *model.User) *dto.UserBrief {
	if user == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func toUserBriefs(users []model.User) []dto.UserBrief {
	return lo.Map(users, func(u model.User, _ int) dto.UserBrief { return *toUserBrief(&u) })
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Status:    user.Status,
	}
}

func toTagBriefs(tags []model.Tag) []dto.TagBrief {
	return lo.Map(tags, func(t model.Tag, _ int) dto.TagBrief {
		return dto.TagBrief{ID: t.ID, Name: t.Name}
	})
}

func toRequirementBrief(r *model.Requirement) dto.RequirementBrief {
	return dto.RequirementBrief{ID: r.ID, Title: r.Title, Priority: r.Priority, Status: r.Status}
}

func toRequirementBriefs(requirements []model.Requirement) []dto.RequirementBrief {
	return lo.Map(requirements, func(r model.Requirement, _ int) dto.RequirementBrief {
		return toRequirementBrief(&r)
	})
}

// containsFold 大小写不敏感的子串匹配
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// paginate 对已加载的结果集做内存分页
func paginate[T any](items []T, query *dto.PageQuery) []T {
	offset := query.GetOffset()
	if offset >= len(items) {
		return []T{}
	}
	end := offset + query.GetPageSize()
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// applyString 部分更新: 非 nil 时覆盖
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// trimmedNames 去除首尾空白并去重, 保留首次出现的顺序
func trimmedNames(names []string) []string {
	out := lo.Map(names, func(n string, _ int) string { return strings.TrimSpace(n) })
	return lo.Uniq(out)
}
