package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

func TestCommentService(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "jane", constants.RoleTester)
	req := f.createRequirement(t, user.ID, "Login")

	_, err := f.comments.Create(user.ID, req.ID, &dto.CommentRequest{Text: strings.Repeat("x", 1001)})
	var vErr *pkgErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Comment text cannot exceed 1000 characters"}, vErr.Errors)

	_, err = f.comments.Create(user.ID, 404, &dto.CommentRequest{Text: "hello"})
	assert.True(t, pkgErrors.IsNotFound(err))

	first, err := f.comments.Create(user.ID, req.ID, &dto.CommentRequest{Text: "first"})
	require.NoError(t, err)
	second, err := f.comments.Create(user.ID, req.ID, &dto.CommentRequest{Text: "second"})
	require.NoError(t, err)
	assert.Equal(t, "jane", second.Author.Username)

	list, err := f.comments.ListByRequirement(req.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	edited, err := f.comments.Update(first.ID, &dto.CommentRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Text)

	_, err = f.comments.Update(first.ID, &dto.CommentRequest{Text: "   "})
	require.True(t, pkgErrors.IsValidation(err))

	require.NoError(t, f.comments.Delete(first.ID))
	assert.True(t, pkgErrors.IsNotFound(f.comments.Delete(first.ID)))
}

func TestAttachmentService(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "kate", constants.RoleTester)
	req := f.createRequirement(t, user.ID, "Login")

	tests := []struct {
		name    string
		req     dto.CreateAttachmentRequest
		message string
	}{
		{"too large", dto.CreateAttachmentRequest{Size: constants.MaxAttachmentSize + 1, Type: "image/png", RequirementID: &req.ID}, "File size must be less than 5MB"},
		{"bad type", dto.CreateAttachmentRequest{Size: 10, Type: "application/zip", RequirementID: &req.ID}, "File type not supported"},
		{"no owner", dto.CreateAttachmentRequest{Size: 10, Type: "text/plain"}, "Attachment must belong to exactly one requirement or test result"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.attachments.Create(&tt.req)
			var vErr *pkgErrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, []string{tt.message}, vErr.Errors)
		})
	}
	assert.Zero(t, f.count(t, &model.Attachment{}))

	missing := int64(404)
	_, err := f.attachments.Create(&dto.CreateAttachmentRequest{FileName: "a.txt", Size: 1, Type: "text/plain", RequirementID: &missing})
	assert.True(t, pkgErrors.IsNotFound(err))

	a, err := f.attachments.Create(&dto.CreateAttachmentRequest{FileName: "design.pdf", Size: constants.MaxAttachmentSize, Type: "application/pdf", RequirementID: &req.ID})
	require.NoError(t, err)
	b, err := f.attachments.Create(&dto.CreateAttachmentRequest{FileName: "notes.txt", Size: 12, Type: "text/plain", RequirementID: &req.ID})
	require.NoError(t, err)

	list, err := f.attachments.ListByRequirement(req.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	res, err := f.attachments.BulkDelete([]int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Affected)
	assert.True(t, pkgErrors.IsNotFound(f.attachments.Delete(a.ID)))
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	admin := f.createUser(t, "admin", constants.RoleAdmin)

	created, err := f.users.Create(&dto.CreateUserRequest{
		Username:  "liam",
		Email:     "Liam@Example.com",
		FirstName: "Liam",
		LastName:  "Hart",
		Role:      constants.RoleDeveloper,
		Password:  "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "liam@example.com", created.Email)
	assert.Equal(t, constants.UserStatusActive, created.Status)

	byName, err := f.users.GetByUsername("liam")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	byEmail, err := f.users.GetByEmail(" LIAM@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	_, err = f.users.GetByUsername("nobody")
	assert.True(t, pkgErrors.IsNotFound(err))

	_, err = f.users.Create(&dto.CreateUserRequest{
		Username: "liam2", Email: "liam@example.com", FirstName: "L", LastName: "H", Role: constants.RoleTester, Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "email already exists", err.(*pkgErrors.AppError).Message)

	_, err = f.users.Create(&dto.CreateUserRequest{
		Username: "x", Email: "not-an-email", FirstName: "X", LastName: "Y", Role: "Boss", Password: "password123",
	})
	var vErr *pkgErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"Invalid email format",
		"Invalid role. Must be one of: Admin, Tester, Developer, Viewer, User",
	}, vErr.Errors)

	updated, err := f.users.Update(created.ID, &dto.UpdateUserRequest{Status: strPtr(constants.UserStatusDisabled)})
	require.NoError(t, err)
	assert.Equal(t, constants.UserStatusDisabled, updated.Status)

	_, err = f.users.Update(created.ID, &dto.UpdateUserRequest{Status: strPtr("Gone")})
	require.True(t, pkgErrors.IsValidation(err))

	assert.True(t, pkgErrors.IsValidation(f.users.Delete(admin.ID, admin.ID)))

	f.createRequirement(t, created.ID, "Owned")
	assert.True(t, pkgErrors.IsConflict(f.users.Delete(created.ID, admin.ID)))

	other := f.createUser(t, "mia", constants.RoleViewer)
	require.NoError(t, f.users.Delete(other.ID, admin.ID))
	assert.True(t, pkgErrors.IsNotFound(f.users.Delete(other.ID, admin.ID)))
}

func TestPreferenceService(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "nora", constants.RoleTester)

	theme, err := f.preferences.GetTheme(user.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeLight, theme)

	_, err = f.preferences.SetTheme(user.ID, "blue")
	var vErr *pkgErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Invalid theme. Must be one of: light, dark"}, vErr.Errors)

	for _, want := range []string{constants.ThemeDark, constants.ThemeLight, constants.ThemeDark} {
		_, err = f.preferences.SetTheme(user.ID, want)
		require.NoError(t, err)
		theme, err = f.preferences.GetTheme(user.ID)
		require.NoError(t, err)
		assert.Equal(t, want, theme)
	}
	assert.Equal(t, int64(1), f.count(t, &model.UserPreference{}))
}

func TestLatestResultStatuses(t *testing.T) {
	rows := []repository.ResultStatusRow{
		{ID: 1, TestCaseID: 10, Status: constants.ResultFail},
		{ID: 2, TestCaseID: 11, Status: constants.ResultPass},
		{ID: 3, TestCaseID: 10, Status: constants.ResultPass},
	}
	assert.Equal(t, map[int64]string{10: constants.ResultPass, 11: constants.ResultPass}, LatestResultStatuses(rows))
}

func TestReportSummary(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "otto", constants.RoleTester)
	covered := f.createRequirement(t, user.ID, "Covered")
	f.createRequirement(t, user.ID, "Uncovered")
	a := f.createTestCase(t, user.ID, "A", covered.ID)
	b := f.createTestCase(t, user.ID, "B", covered.ID)
	f.createTestCase(t, user.ID, "C")

	run, err := f.testRuns.Create(newRunRequest())
	require.NoError(t, err)
	for _, r := range []dto.AddTestResultRequest{
		{TestCaseID: a.ID, Status: constants.ResultFail},
		{TestCaseID: a.ID, Status: constants.ResultPass},
		{TestCaseID: b.ID, Status: constants.ResultFail},
	} {
		_, err := f.testRuns.AddResult(run.ID, &r)
		require.NoError(t, err)
	}

	summary, err := f.reports.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalRequirements)
	assert.Equal(t, int64(3), summary.TotalTestCases)
	assert.Equal(t, int64(1), summary.TotalTestRuns)
	assert.Equal(t, int64(1), summary.CoveredRequirements)
	assert.Equal(t, 50.0, summary.CoveragePercent)
	assert.Equal(t, 1, summary.TestsPassed)
	assert.Equal(t, 1, summary.TestsFailed)
	assert.Equal(t, 0, summary.TestsPending)
	assert.Equal(t, 50.0, summary.PassRate)
}
