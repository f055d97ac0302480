package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/pkg/config"
	"testhub/internal/pkg/crypto"
	"testhub/internal/pkg/database"
	"testhub/internal/repository"
	"testhub/pkg/constants"
)

// testDB 每个测试独立的内存库
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// testFileDB 文件库, 允许多连接并发写; 写事务以 BEGIN IMMEDIATE 开启并等待锁
func testFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "testhub.db") + "?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db *gorm.DB

	userRepo repository.UserRepository

	requirements RequirementService
	tags         TagService
	testCases    TestCaseService
	testRuns     TestRunService
	comments     CommentService
	attachments  AttachmentService
	users        UserService
	invitations  InvitationService
	auth         AuthService
	preferences  PreferenceService
	reports      ReportService
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWT:     config.JWTConfig{Secret: "test-secret", Issuer: "testhub"},
		Session: config.SessionConfig{CookieName: constants.DefaultCookieName, TTL: 3600},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)

	userRepo := repository.NewUserRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	return &fixture{
		db:           db,
		userRepo:     userRepo,
		requirements: NewRequirementService(requirementRepo, userRepo),
		tags:         NewTagService(repository.NewTagRepository(db)),
		testCases:    NewTestCaseService(repository.NewTestCaseRepository(db), requirementRepo, userRepo),
		testRuns:     NewTestRunService(repository.NewTestRunRepository(db), userRepo),
		comments:     NewCommentService(repository.NewCommentRepository(db)),
		attachments:  NewAttachmentService(repository.NewAttachmentRepository(db)),
		users:        NewUserService(userRepo),
		invitations:  NewInvitationService(repository.NewInvitationRepository(db), constants.InvitationTTL),
		auth:         NewAuthService(testAuthConfig(), db, userRepo, sessionRepo),
		preferences:  NewPreferenceService(repository.NewPreferenceRepository(db)),
		reports:      NewReportService(repository.NewReportRepository(db)),
	}
}

func (f *fixture) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  hash,
		Role:      role,
		Status:    constants.UserStatusActive,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func (f *fixture) createRequirement(t *testing.T, userID int64, title string, tags ...string) *model.Requirement {
	t.Helper()
	req, err := f.requirements.Create(userID, &dto.CreateRequirementRequest{
		Title:       title,
		Description: title + " description",
		Category:    "Core",
		Priority:    constants.PriorityHigh,
		Status:      constants.StatusDraft,
		Tags:        tags,
	})
	require.NoError(t, err)
	return req
}

func (f *fixture) createTestCase(t *testing.T, userID int64, title string, requirementIDs ...int64) *model.TestCase {
	t.Helper()
	tc, err := f.testCases.Create(userID, &dto.CreateTestCaseRequest{
		Title:          title,
		Description:    title + " description",
		Type:           constants.TestTypeFunctional,
		Priority:       constants.PriorityMedium,
		Status:         constants.StatusDraft,
		Steps:          []dto.StepInput{{Action: "open page", ExpectedResult: "page shown"}},
		RequirementIDs: requirementIDs,
	})
	require.NoError(t, err)
	return tc
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }
