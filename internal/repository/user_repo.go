package repository

import (
	"time"

	"gorm.io/gorm"

	"testhub/internal/model"
	pkgErrors "testhub/pkg/errors"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	// FindByLogin 按用户名或邮箱查询
	FindByLogin(login string) (*model.User, error)
	List() ([]*model.User, error)
	Update(user *model.User) error
	Delete(id int64) error
	UpdateLastLogin(id int64, at time.Time) error
	// CountOwned 用户创建的需求、用例与评论总数
	CountOwned(id int64) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Omit("Requirements", "TestCases", "Comments", "TestRuns").Create(user).Error; err != nil {
		return writeError("username or email already exists", "创建用户失败", err)
	}
	return nil
}

func (r *userRepository) FindByID(id int64) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, findError(EntityUser, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, findError(EntityUser, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, findError(EntityUser, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		return nil, findError(EntityUser, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) List() ([]*model.User, error) {
	var users []*model.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, dbError("查询用户列表失败", err)
	}
	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	err := r.db.Model(user).
		Select("username", "email", "first_name", "last_name", "role", "status", "password", "updated_at").
		Updates(user).Error
	if err != nil {
		return writeError("username or email already exists", "更新用户失败", err)
	}
	return nil
}

// Delete 删除用户及其会话、偏好与执行人关联
func (r *userRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Session{}).Error; err != nil {
			return dbError("删除用户会话失败", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.UserPreference{}).Error; err != nil {
			return dbError("删除用户偏好失败", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.TestRunExecutor{}).Error; err != nil {
			return dbError("删除执行人关联失败", err)
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return dbError("删除用户失败", result.Error)
		}
		if result.RowsAffected == 0 {
			return pkgErrors.NotFound(EntityUser)
		}
		return nil
	})
}

func (r *userRepository) UpdateLastLogin(id int64, at time.Time) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error; err != nil {
		return dbError("更新登录时间失败", err)
	}
	return nil
}

func (r *userRepository) CountOwned(id int64) (int64, error) {
	var total int64
	for _, m := range []interface{}{&model.Requirement{}, &model.TestCase{}} {
		var n int64
		if err := r.db.Model(m).Where("created_by_id = ?", id).Count(&n).Error; err != nil {
			return 0, dbError("统计用户数据失败", err)
		}
		total += n
	}
	var comments int64
	if err := r.db.Model(&model.Comment{}).Where("author_id = ?", id).Count(&comments).Error; err != nil {
		return 0, dbError("统计用户数据失败", err)
	}
	return total + comments, nil
}
