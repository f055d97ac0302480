package repository

import (
	stdErrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgErrors "testhub/pkg/errors"
)

// 实体名, 用于 "<entity> not found" 提示
const (
	EntityUser        = "User"
	EntityRequirement = "Requirement"
	EntityTestCase    = "Test case"
	EntityTestRun     = "Test run"
	EntityTestResult  = "Test result"
	EntityTag         = "Tag"
	EntityComment     = "Comment"
	EntityAttachment  = "Attachment"
	EntityInvitation  = "Invitation"
	EntitySession     = "Session"
)

// QueryOption 列表查询的附加条件
type QueryOption func(*gorm.DB) *gorm.DB

func WithWhere(query interface{}, args ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// WithJoin 通过关联表过滤
func WithJoin(join string, query interface{}, args ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins(join).Where(query, args...)
	}
}

func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// orderedSteps 步骤按编号预加载
func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_number ASC")
}

// newestFirst 按创建时间倒序预加载
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

func dbError(message string, err error) error {
	return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, message, err)
}

// findError 记录不存在转换为 NotFound, 其余为数据库错误
func findError(entity, message string, err error) error {
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgErrors.NotFound(entity)
	}
	return dbError(message, err)
}

// writeError 唯一约束冲突转换为 Conflict, 其余为数据库错误
func writeError(conflict, message string, err error) error {
	if stdErrors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgErrors.Conflict(conflict)
	}
	return dbError(message, err)
}

// mustExist 校验主键存在
func mustExist(db *gorm.DB, model interface{}, id int64, entity string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return dbError("查询记录失败", err)
	}
	if count == 0 {
		return pkgErrors.NotFound(entity)
	}
	return nil
}

// mustExistAll 校验一组主键全部存在
func mustExistAll(db *gorm.DB, model interface{}, ids []int64, entity string) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return dbError("查询记录失败", err)
	}
	if count != int64(len(ids)) {
		return pkgErrors.NotFound(entity)
	}
	return nil
}

// link 写入关联行(单条或切片), 已存在时忽略
func link(db *gorm.DB, rows interface{}) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error; err != nil {
		return dbError("写入关联失败", err)
	}
	return nil
}
