package service

import (
	"github.com/samber/lo"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	pkgErrors "testhub/pkg/errors"
)

type RequirementService interface {
	Create(userID int64, req *dto.CreateRequirementRequest) (*model.Requirement, error)
	GetByID(id int64) (*model.Requirement, error)
	List(query *dto.RequirementQuery) (*dto.PageResponse, error)
	ListByUser(userID int64) ([]*dto.RequirementListItem, error)
	Update(id int64, req *dto.UpdateRequirementRequest) (*model.Requirement, error)
	Delete(id int64) error

	AddTag(requirementID, tagID int64) error
	RemoveTag(requirementID, tagID int64) error
	AddRelated(requirementID, relatedID int64) error
	RemoveRelated(requirementID, relatedID int64) error
}

type requirementService struct {
	repo     repository.RequirementRepository
	userRepo repository.UserRepository
}

func NewRequirementService(repo repository.RequirementRepository, userRepo repository.UserRepository) RequirementService {
	return &requirementService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func requirementFields(r *model.Requirement) validation.RequirementFields {
	return validation.RequirementFields{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Category:    r.Category,
	}
}

func (s *requirementService) Create(userID int64, req *dto.CreateRequirementRequest) (*model.Requirement, error) {
	requirement := &model.Requirement{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
		Version:     req.Version,
		CreatedByID: userID,
	}

	errs := validation.ValidateRequirement(requirementFields(requirement)).Errors
	tagNames := trimmedNames(req.Tags)
	for _, name := range tagNames {
		errs = append(errs, validation.ValidateTag(validation.TagFields{Name: name}).Errors...)
	}
	if len(errs) > 0 {
		return nil, pkgErrors.NewValidationError("requirement", lo.Uniq(errs)...)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(requirement, req.TagIDs, tagNames); err != nil {
		return nil, err
	}
	return s.repo.FindByID(requirement.ID)
}

func (s *requirementService) GetByID(id int64) (*model.Requirement, error) {
	return s.repo.FindByID(id)
}

func (s *requirementService) List(query *dto.RequirementQuery) (*dto.PageResponse, error) {
	requirements, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	filtered := lo.Filter(requirements, func(r *model.Requirement, _ int) bool {
		if query.Keyword != "" && !containsFold(r.Title, query.Keyword) && !containsFold(r.Description, query.Keyword) {
			return false
		}
		if query.Priority != "" && r.Priority != query.Priority {
			return false
		}
		if query.Status != "" && r.Status != query.Status {
			return false
		}
		if query.Category != "" && r.Category != query.Category {
			return false
		}
		if query.TagID != 0 && !lo.ContainsBy(r.Tags, func(t model.Tag) bool { return t.ID == query.TagID }) {
			return false
		}
		return true
	})

	items := lo.Map(paginate(filtered, &query.PageQuery), func(r *model.Requirement, _ int) *dto.RequirementListItem {
		return s.toListItem(r)
	})
	return dto.NewPageResponse(items, int64(len(filtered)), query.GetPage(), query.GetPageSize()), nil
}

func (s *requirementService) ListByUser(userID int64) ([]*dto.RequirementListItem, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	requirements, err := s.repo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(requirements, func(r *model.Requirement, _ int) *dto.RequirementListItem {
		return s.toListItem(r)
	}), nil
}

// Update 补丁合并到已存记录后整体校验
func (s *requirementService) Update(id int64, req *dto.UpdateRequirementRequest) (*model.Requirement, error) {
	requirement, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	applyString(&requirement.Title, req.Title)
	applyString(&requirement.Description, req.Description)
	applyString(&requirement.Category, req.Category)
	applyString(&requirement.Priority, req.Priority)
	applyString(&requirement.Status, req.Status)
	applyString(&requirement.Version, req.Version)

	if res := validation.ValidateRequirement(requirementFields(requirement)); !res.Valid {
		return nil, pkgErrors.NewValidationError("requirement", res.Errors...)
	}

	if err := s.repo.Update(requirement); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *requirementService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *requirementService) AddTag(requirementID, tagID int64) error {
	return s.repo.AddTag(requirementID, tagID)
}

func (s *requirementService) RemoveTag(requirementID, tagID int64) error {
	return s.repo.RemoveTag(requirementID, tagID)
}

// AddRelated 有向关联, 重复添加无副作用
func (s *requirementService) AddRelated(requirementID, relatedID int64) error {
	if requirementID == relatedID {
		return pkgErrors.NewValidationError("requirement", "A requirement cannot be related to itself")
	}
	return s.repo.AddRelated(requirementID, relatedID)
}

func (s *requirementService) RemoveRelated(requirementID, relatedID int64) error {
	return s.repo.RemoveRelated(requirementID, relatedID)
}

func (s *requirementService) toListItem(r *model.Requirement) *dto.RequirementListItem {
	return &dto.RequirementListItem{
		ID:            r.ID,
		Title:         r.Title,
		Category:      r.Category,
		Priority:      r.Priority,
		Status:        r.Status,
		Version:       r.Version,
		CreatedBy:     toUserBrief(r.CreatedBy),
		Tags:          toTagBriefs(r.Tags),
		TestCaseCount: len(r.TestCases),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
