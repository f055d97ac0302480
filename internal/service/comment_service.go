package service

import (
	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	pkgErrors "testhub/pkg/errors"
)

type CommentService interface {
	Create(authorID, requirementID int64, req *dto.CommentRequest) (*model.Comment, error)
	ListByRequirement(requirementID int64) ([]*model.Comment, error)
	Update(id int64, req *dto.CommentRequest) (*model.Comment, error)
	Delete(id int64) error
}

type commentService struct {
	repo repository.CommentRepository
}

func NewCommentService(repo repository.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) Create(authorID, requirementID int64, req *dto.CommentRequest) (*model.Comment, error) {
	if res := validation.ValidateComment(validation.CommentFields{Text: req.Text}); !res.Valid {
		return nil, pkgErrors.NewValidationError("comment", res.Errors...)
	}

	comment := &model.Comment{
		Text:          req.Text,
		AuthorID:      authorID,
		RequirementID: requirementID,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return s.repo.FindByID(comment.ID)
}

func (s *commentService) ListByRequirement(requirementID int64) ([]*model.Comment, error) {
	return s.repo.ListByRequirement(requirementID)
}

func (s *commentService) Update(id int64, req *dto.CommentRequest) (*model.Comment, error) {
	if res := validation.ValidateComment(validation.CommentFields{Text: req.Text}); !res.Valid {
		return nil, pkgErrors.NewValidationError("comment", res.Errors...)
	}
	if err := s.repo.UpdateText(id, req.Text); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *commentService) Delete(id int64) error {
	return s.repo.Delete(id)
}
