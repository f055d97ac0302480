package service

import (
	"strings"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	pkgErrors "testhub/pkg/errors"
)

type TagService interface {
	Create(req *dto.CreateTagRequest) (*model.Tag, error)
	GetByID(id int64) (*model.Tag, error)
	GetByName(name string) (*model.Tag, error)
	List() ([]*model.Tag, error)
	ListByRequirement(requirementID int64) ([]*model.Tag, error)
	Update(id int64, req *dto.UpdateTagRequest) (*model.Tag, error)
	Delete(id int64) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) Create(req *dto.CreateTagRequest) (*model.Tag, error) {
	tag := &model.Tag{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if res := validation.ValidateTag(validation.TagFields{Name: tag.Name, Description: tag.Description}); !res.Valid {
		return nil, pkgErrors.NewValidationError("tag", res.Errors...)
	}

	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetByID(id int64) (*model.Tag, error) {
	return s.repo.FindByID(id)
}

func (s *tagService) GetByName(name string) (*model.Tag, error) {
	return s.repo.FindByName(strings.TrimSpace(name))
}

func (s *tagService) List() ([]*model.Tag, error) {
	return s.repo.List()
}

func (s *tagService) ListByRequirement(requirementID int64) ([]*model.Tag, error) {
	return s.repo.ListByRequirement(requirementID)
}

func (s *tagService) Update(id int64, req *dto.UpdateTagRequest) (*model.Tag, error) {
	tag, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = strings.TrimSpace(*req.Name)
	}
	applyString(&tag.Description, req.Description)

	if res := validation.ValidateTag(validation.TagFields{Name: tag.Name, Description: tag.Description}); !res.Valid {
		return nil, pkgErrors.NewValidationError("tag", res.Errors...)
	}

	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(id int64) error {
	return s.repo.Delete(id)
}
