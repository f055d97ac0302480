package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/pkg/config"
	"testhub/internal/pkg/crypto"
	"testhub/internal/pkg/jwt"
	"testhub/internal/pkg/logger"
	"testhub/internal/repository"
	"testhub/internal/validation"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type AuthService interface {
	// Login 用户名或邮箱 + 密码登录, 创建会话并签发Token
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Register 凭邀请码注册; 建用户与消费邀请码在同一事务内
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Logout(sessionID string) error
	// Authenticate 校验Token及其会话, 返回当前用户与会话
	Authenticate(token string) (*model.User, *model.Session, error)
	// EnsureAdmin 按配置确保管理员账号存在
	EnsureAdmin(seed *config.AdminSeedConfig) error
	PurgeExpiredSessions() (int64, error)
}

type authService struct {
	cfg         *config.AuthConfig
	db          *gorm.DB
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

func NewAuthService(
	cfg *config.AuthConfig,
	db *gorm.DB,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
) AuthService {
	return &authService{
		cfg:         cfg,
		db:          db,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(req.Login)
	user, err := s.userRepo.FindByLogin(login)
	if pkgErrors.IsNotFound(err) && strings.Contains(login, "@") {
		user, err = s.userRepo.FindByEmail(strings.ToLower(login))
	}
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		logger.Warn("登录失败: 密码错误", zap.String("login", login))
		return nil, pkgErrors.ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, pkgErrors.ErrUserDisabled
	}

	resp, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateLastLogin(user.ID, s.now()); err != nil {
		logger.Warn("更新登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	logger.Info("用户登录", zap.String("username", user.Username))
	return resp, nil
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user := &model.User{
		Username:  usernameFromEmail(email),
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      constants.RoleUser,
		Status:    constants.UserStatusActive,
	}
	if res := validation.ValidateUser(userFields(user)); !res.Valid {
		return nil, pkgErrors.NewValidationError("user", res.Errors...)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}
	user.Password = hash

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		invitations := repository.NewInvitationRepository(tx)

		invitation, err := invitations.FindByCode(req.InvitationCode)
		if err != nil {
			if pkgErrors.IsNotFound(err) {
				return pkgErrors.ErrInvalidInvitation
			}
			return err
		}
		if !invitation.Usable(now) {
			return pkgErrors.ErrInvalidInvitation
		}

		if err := ensureUniqueUser(users, user, 0); err != nil {
			return err
		}
		if err := users.Create(user); err != nil {
			return err
		}

		// 条件更新, 并发注册时只有一个能成功
		used, err := invitations.MarkUsed(req.InvitationCode, user.ID, now)
		if err != nil {
			return err
		}
		if !used {
			return pkgErrors.ErrInvalidInvitation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("用户注册", zap.String("username", user.Username), zap.Int64("user_id", user.ID))
	return s.issueSession(user)
}

func (s *authService) Logout(sessionID string) error {
	return s.sessionRepo.Delete(sessionID)
}

func (s *authService) Authenticate(token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, pkgErrors.ErrUnauthorized
	}
	claims, err := jwt.ParseToken(&s.cfg.JWT, token)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.FindByID(claims.SessionID())
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil, nil, pkgErrors.ErrSessionExpired
		}
		return nil, nil, err
	}
	if session.UserID != claims.UserID {
		return nil, nil, pkgErrors.ErrInvalidToken
	}
	if session.Expired(s.now()) {
		_ = s.sessionRepo.Delete(session.ID)
		return nil, nil, pkgErrors.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		if pkgErrors.IsNotFound(err) {
			return nil, nil, pkgErrors.ErrSessionExpired
		}
		return nil, nil, err
	}
	if user.Status != constants.UserStatusActive {
		return nil, nil, pkgErrors.ErrUserDisabled
	}
	return user, session, nil
}

func (s *authService) EnsureAdmin(seed *config.AdminSeedConfig) error {
	if seed == nil || !seed.Enabled {
		return nil
	}
	_, err := s.userRepo.FindByUsername(seed.Username)
	if err == nil {
		return nil
	}
	if !pkgErrors.IsNotFound(err) {
		return err
	}

	admin := &model.User{
		Username:  seed.Username,
		Email:     strings.ToLower(seed.Email),
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		Role:      constants.RoleAdmin,
		Status:    constants.UserStatusActive,
	}
	if res := validation.ValidateUser(userFields(admin)); !res.Valid {
		return pkgErrors.NewValidationError("admin", res.Errors...)
	}
	if seed.Password == "" {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "管理员初始密码未配置")
	}

	hash, err := crypto.HashPassword(seed.Password)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}
	admin.Password = hash
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("已创建初始管理员", zap.String("username", admin.Username))
	return nil
}

func (s *authService) PurgeExpiredSessions() (int64, error) {
	return s.sessionRepo.DeleteExpired(s.now())
}

// issueSession 落库会话并签发携带会话ID的Token
func (s *authService) issueSession(user *model.User) (*dto.LoginResponse, error) {
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL()),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(&s.cfg.JWT, session.ID, user.ID, user.Role, session.ExpiresAt)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserInfo(user),
	}, nil
}

// usernameFromEmail 注册用户名取邮箱 @ 之前的部分
func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
