package service

import (
	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	pkgErrors "testhub/pkg/errors"
)

type AttachmentService interface {
	Create(req *dto.CreateAttachmentRequest) (*model.Attachment, error)
	GetByID(id int64) (*model.Attachment, error)
	ListByRequirement(requirementID int64) ([]*model.Attachment, error)
	ListByTestResult(testResultID int64) ([]*model.Attachment, error)
	Delete(id int64) error
	BulkDelete(ids []int64) (*dto.BulkResult, error)
}

type attachmentService struct {
	repo repository.AttachmentRepository
}

func NewAttachmentService(repo repository.AttachmentRepository) AttachmentService {
	return &attachmentService{repo: repo}
}

// Create 大小与类型校验失败时不写入任何记录
func (s *attachmentService) Create(req *dto.CreateAttachmentRequest) (*model.Attachment, error) {
	if res := validation.ValidateAttachment(req.Size, req.Type); !res.Valid {
		return nil, pkgErrors.NewValidationError("attachment", res.Error)
	}
	if (req.RequirementID == nil) == (req.TestResultID == nil) {
		return nil, pkgErrors.NewValidationError("attachment",
			"Attachment must belong to exactly one requirement or test result")
	}

	attachment := &model.Attachment{
		FileName:      req.FileName,
		Size:          req.Size,
		Type:          req.Type,
		RequirementID: req.RequirementID,
		TestResultID:  req.TestResultID,
	}
	if err := s.repo.Create(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *attachmentService) GetByID(id int64) (*model.Attachment, error) {
	return s.repo.FindByID(id)
}

func (s *attachmentService) ListByRequirement(requirementID int64) ([]*model.Attachment, error) {
	return s.repo.ListByRequirement(requirementID)
}

func (s *attachmentService) ListByTestResult(testResultID int64) ([]*model.Attachment, error) {
	return s.repo.ListByTestResult(testResultID)
}

func (s *attachmentService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *attachmentService) BulkDelete(ids []int64) (*dto.BulkResult, error) {
	affected, err := s.repo.BulkDelete(ids)
	if err != nil {
		return nil, err
	}
	return &dto.BulkResult{Affected: affected}, nil
}
