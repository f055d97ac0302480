package service

import (
	"strings"

	"github.com/samber/lo"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/pkg/crypto"
	"testhub/internal/repository"
	"testhub/internal/validation"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type UserService interface {
	Create(req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(id int64) (*dto.UserResponse, error)
	GetByUsername(username string) (*dto.UserResponse, error)
	GetByEmail(email string) (*dto.UserResponse, error)
	List() ([]*dto.UserResponse, error)
	Update(id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete 不能删除自己, 也不能删除仍拥有需求、用例或评论的用户
	Delete(id, operatorID int64) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func userFields(u *model.User) validation.UserFields {
	return validation.UserFields{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func (s *userService) Create(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &model.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Status:    constants.UserStatusActive,
	}
	if res := validation.ValidateUser(userFields(user)); !res.Valid {
		return nil, pkgErrors.NewValidationError("user", res.Errors...)
	}
	if err := s.checkUnique(user, 0); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}
	user.Password = hash

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByEmail 邮箱不区分大小写
func (s *userService) GetByEmail(email string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List() ([]*dto.UserResponse, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserResponse { return toUserResponse(u) }), nil
}

func (s *userService) Update(id int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	applyString(&user.FirstName, req.FirstName)
	applyString(&user.LastName, req.LastName)
	applyString(&user.Role, req.Role)
	applyString(&user.Status, req.Status)

	errs := validation.ValidateUser(userFields(user)).Errors
	if !validation.IsEnumValue("user_status", user.Status) {
		errs = append(errs, validation.EnumError("status", "user_status"))
	}
	if len(errs) > 0 {
		return nil, pkgErrors.NewValidationError("user", errs...)
	}
	if err := s.checkUnique(user, user.ID); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
		}
		user.Password = hash
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Delete(id, operatorID int64) error {
	if id == operatorID {
		return pkgErrors.NewValidationError("user", "You cannot delete your own account")
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	owned, err := s.repo.CountOwned(id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return pkgErrors.Conflict("User still owns requirements, test cases or comments")
	}
	return s.repo.Delete(id)
}

// checkUnique 唯一约束冲突转换为字段级提示
func (s *userService) checkUnique(user *model.User, selfID int64) error {
	return ensureUniqueUser(s.repo, user, selfID)
}

func ensureUniqueUser(repo repository.UserRepository, user *model.User, selfID int64) error {
	if existing, err := repo.FindByUsername(user.Username); err == nil && existing.ID != selfID {
		return pkgErrors.Conflict("username already exists")
	} else if err != nil && !pkgErrors.IsNotFound(err) {
		return err
	}
	if existing, err := repo.FindByEmail(user.Email); err == nil && existing.ID != selfID {
		return pkgErrors.Conflict("email already exists")
	} else if err != nil && !pkgErrors.IsNotFound(err) {
		return err
	}
	return nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
