package service

import (
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/pkg/crypto"
	"testhub/internal/pkg/logger"
	"testhub/internal/repository"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type InvitationService interface {
	// Generate 管理员生成一次性邀请码
	Generate(adminID int64) (*dto.InvitationResponse, error)
	List() ([]*dto.InvitationResponse, error)
	// Validate 只读校验, 不消费邀请码
	Validate(code string) (bool, error)
	// CountExpiredUnused 已过期且从未使用的邀请码数量
	CountExpiredUnused() (int64, error)
}

type invitationService struct {
	repo repository.InvitationRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewInvitationService(repo repository.InvitationRepository, ttl time.Duration) InvitationService {
	if ttl <= 0 {
		ttl = constants.InvitationTTL
	}
	return &invitationService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *invitationService) Generate(adminID int64) (*dto.InvitationResponse, error) {
	code, err := crypto.RandomToken(constants.InvitationCodeBytes)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成邀请码失败", err)
	}

	now := s.now()
	invitation := &model.Invitation{
		Code:        code,
		CreatedByID: adminID,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.repo.Create(invitation); err != nil {
		return nil, err
	}

	logger.Info("生成邀请码", zap.Int64("admin_id", adminID), zap.Time("expires_at", invitation.ExpiresAt))
	return toInvitationResponse(invitation, now), nil
}

func (s *invitationService) List() ([]*dto.InvitationResponse, error) {
	invitations, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	now := s.now()
	return lo.Map(invitations, func(inv *model.Invitation, _ int) *dto.InvitationResponse {
		return toInvitationResponse(inv, now)
	}), nil
}

func (s *invitationService) Validate(code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	invitation, err := s.repo.FindByCode(code)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return invitation.Usable(s.now()), nil
}

func (s *invitationService) CountExpiredUnused() (int64, error) {
	return s.repo.CountExpiredUnused(s.now())
}

func toInvitationResponse(inv *model.Invitation, now time.Time) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		Code:      inv.Code,
		State:     string(inv.State(now)),
		ExpiresAt: inv.ExpiresAt,
		UsedAt:    inv.UsedAt,
		CreatedBy: toUserBrief(inv.CreatedBy),
		CreatedAt: inv.CreatedAt,
	}
}
