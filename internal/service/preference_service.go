package service

import (
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type PreferenceService interface {
	// GetTheme 未设置时返回 light
	GetTheme(userID int64) (string, error)
	SetTheme(userID int64, theme string) (string, error)
}

type preferenceService struct {
	repo repository.PreferenceRepository
}

func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) GetTheme(userID int64) (string, error) {
	pref, err := s.repo.FindByUserID(userID)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return constants.ThemeLight, nil
		}
		return "", err
	}
	return pref.Theme, nil
}

func (s *preferenceService) SetTheme(userID int64, theme string) (string, error) {
	if !validation.IsEnumValue("theme", theme) {
		return "", pkgErrors.NewValidationError("preference", validation.EnumError("theme", "theme"))
	}
	if err := s.repo.Upsert(&model.UserPreference{UserID: userID, Theme: theme}); err != nil {
		return "", err
	}
	return theme, nil
}
