package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/pkg/config"
	"testhub/internal/repository"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

func registerRequest(code, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		InvitationCode: code,
		Email:          email,
		Password:       "s3cret-pass",
		FirstName:      "Erin",
		LastName:       "Stone",
	}
}

func TestInvitation_GenerateValidateUse(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin", constants.RoleAdmin)

	inv, err := f.invitations.Generate(admin.ID)
	require.NoError(t, err)
	assert.Len(t, inv.Code, constants.InvitationCodeBytes*2)
	assert.Equal(t, string(model.InvitationUnused), inv.State)

	valid, err := f.invitations.Validate(inv.Code)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = f.invitations.Validate(inv.Code)
	require.NoError(t, err)
	assert.True(t, valid, "validate must not consume the code")

	resp, err := f.auth.Register(registerRequest(inv.Code, "Erin@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "erin", resp.User.Username)
	assert.Equal(t, "erin@example.com", resp.User.Email)
	assert.Equal(t, constants.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	valid, err = f.invitations.Validate(inv.Code)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = f.auth.Register(registerRequest(inv.Code, "other@example.com"))
	assert.Equal(t, pkgErrors.ErrInvalidInvitation, err)

	list, err := f.invitations.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(model.InvitationUsed), list[0].State)
	assert.Equal(t, "admin", list[0].CreatedBy.Username)
}

func TestInvitation_UnknownAndExpired(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin", constants.RoleAdmin)

	valid, err := f.invitations.Validate("does-not-exist")
	require.NoError(t, err)
	assert.False(t, valid)

	expired := &model.Invitation{Code: "expired-code", CreatedByID: admin.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repository.NewInvitationRepository(f.db).Create(expired))

	valid, err = f.invitations.Validate(expired.Code)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = f.auth.Register(registerRequest(expired.Code, "late@example.com"))
	assert.Equal(t, pkgErrors.ErrInvalidInvitation, err)
	assert.Equal(t, int64(1), f.count(t, &model.User{}))

	n, err := f.invitations.CountExpiredUnused()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegister_DuplicateEmailRollsBack(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin", constants.RoleAdmin)
	inv, err := f.invitations.Generate(admin.ID)
	require.NoError(t, err)

	_, err = f.auth.Register(registerRequest(inv.Code, "admin@example.com"))
	require.Error(t, err)
	assert.True(t, pkgErrors.IsConflict(err))

	valid, err := f.invitations.Validate(inv.Code)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "frank", constants.RoleDeveloper)

	_, err := f.auth.Login(&dto.LoginRequest{Login: "frank", Password: "wrong"})
	assert.Equal(t, pkgErrors.ErrInvalidCredentials, err)

	_, err = f.auth.Login(&dto.LoginRequest{Login: "nobody", Password: "password123"})
	assert.Equal(t, pkgErrors.ErrInvalidCredentials, err)

	resp, err := f.auth.Login(&dto.LoginRequest{Login: "frank@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	got, session, err := f.auth.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID, session.UserID)

	reloaded, err := f.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)

	require.NoError(t, f.auth.Logout(session.ID))
	_, _, err = f.auth.Authenticate(resp.Token)
	assert.Equal(t, pkgErrors.ErrSessionExpired, err)

	_, _, err = f.auth.Authenticate("")
	assert.Equal(t, pkgErrors.CodeUnauthorized, pkgErrors.CodeOf(err))
}

func TestLogin_DisabledUser(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "gina", constants.RoleViewer)

	resp, err := f.auth.Login(&dto.LoginRequest{Login: "gina", Password: "password123"})
	require.NoError(t, err)

	user.Status = constants.UserStatusDisabled
	require.NoError(t, f.userRepo.Update(user))

	_, _, err = f.auth.Authenticate(resp.Token)
	assert.Equal(t, pkgErrors.ErrUserDisabled, err)

	_, err = f.auth.Login(&dto.LoginRequest{Login: "gina", Password: "password123"})
	assert.Equal(t, pkgErrors.ErrUserDisabled, err)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "hank", constants.RoleTester)

	resp, err := f.auth.Login(&dto.LoginRequest{Login: "hank", Password: "password123"})
	require.NoError(t, err)

	svc := f.auth.(*authService)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, _, err = f.auth.Authenticate(resp.Token)
	assert.Equal(t, pkgErrors.ErrSessionExpired, err)
	assert.Zero(t, f.count(t, &model.Session{}))
}

func TestPurgeExpiredSessions(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "ivy", constants.RoleTester)
	_, err := f.auth.Login(&dto.LoginRequest{Login: "ivy", Password: "password123"})
	require.NoError(t, err)

	n, err := f.auth.PurgeExpiredSessions()
	require.NoError(t, err)
	assert.Zero(t, n)

	f.auth.(*authService).now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = f.auth.PurgeExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)
	seed := &config.AdminSeedConfig{
		Enabled:   true,
		Username:  "root",
		Email:     "root@example.com",
		Password:  "change-me-now",
		FirstName: "Root",
		LastName:  "Admin",
	}

	require.NoError(t, f.auth.EnsureAdmin(seed))
	require.NoError(t, f.auth.EnsureAdmin(seed))
	assert.Equal(t, int64(1), f.count(t, &model.User{}))

	admin, err := f.userRepo.FindByUsername("root")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, admin.Role)

	_, err = f.auth.Login(&dto.LoginRequest{Login: "root", Password: "change-me-now"})
	require.NoError(t, err)

	require.NoError(t, f.auth.EnsureAdmin(&config.AdminSeedConfig{}))
}
