package service

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type TestRunService interface {
	Create(req *dto.CreateTestRunRequest) (*model.TestRun, error)
	GetByID(id int64) (*model.TestRun, error)
	List() ([]*dto.TestRunListItem, error)
	ListByUser(userID int64) ([]*dto.TestRunListItem, error)
	Update(id int64, req *dto.UpdateTestRunRequest) (*model.TestRun, error)
	Delete(id int64) error

	AddResult(testRunID int64, req *dto.AddTestResultRequest) (*model.TestResult, error)
	GetResult(id int64) (*model.TestResult, error)
	UpdateResult(id int64, req *dto.UpdateTestResultRequest) (*model.TestResult, error)
	DeleteResult(id int64) error
}

type testRunService struct {
	repo     repository.TestRunRepository
	userRepo repository.UserRepository
}

func NewTestRunService(repo repository.TestRunRepository, userRepo repository.UserRepository) TestRunService {
	return &testRunService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// validateTestRun 校验通过后返回解析好的起止日期
func validateTestRun(fields validation.TestRunFields) (time.Time, *time.Time, error) {
	if res := validation.ValidateTestRun(fields); !res.Valid {
		return time.Time{}, nil, pkgErrors.NewValidationError("test run", res.Errors...)
	}
	start, _ := validation.ParseDate(fields.StartDate)
	if strings.TrimSpace(fields.EndDate) == "" {
		return start, nil, nil
	}
	end, _ := validation.ParseDate(fields.EndDate)
	return start, &end, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func (s *testRunService) Create(req *dto.CreateTestRunRequest) (*model.TestRun, error) {
	start, end, err := validateTestRun(validation.TestRunFields{
		Name:      req.Name,
		StartDate: req.StartDate,
		Status:    req.Status,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	run := &model.TestRun{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      req.Status,
		Environment: datatypes.JSONMap(req.Environment),
	}
	if err := s.repo.Create(run, req.ExecutorIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(run.ID)
}

func (s *testRunService) GetByID(id int64) (*model.TestRun, error) {
	return s.repo.FindByID(id)
}

func (s *testRunService) List() ([]*dto.TestRunListItem, error) {
	runs, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return lo.Map(runs, func(run *model.TestRun, _ int) *dto.TestRunListItem { return toTestRunListItem(run) }), nil
}

func (s *testRunService) ListByUser(userID int64) ([]*dto.TestRunListItem, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	runs, err := s.repo.ListByExecutor(userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(runs, func(run *model.TestRun, _ int) *dto.TestRunListItem { return toTestRunListItem(run) }), nil
}

func (s *testRunService) Update(id int64, req *dto.UpdateTestRunRequest) (*model.TestRun, error) {
	run, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	fields := validation.TestRunFields{
		Name:      run.Name,
		StartDate: formatDate(&run.StartDate),
		Status:    run.Status,
		EndDate:   formatDate(run.EndDate),
	}
	applyString(&fields.Name, req.Name)
	applyString(&fields.StartDate, req.StartDate)
	applyString(&fields.Status, req.Status)
	applyString(&fields.EndDate, req.EndDate)

	start, end, err := validateTestRun(fields)
	if err != nil {
		return nil, err
	}

	run.Name = fields.Name
	run.Status = fields.Status
	run.StartDate = start
	run.EndDate = end
	applyString(&run.Description, req.Description)
	if req.Environment != nil {
		run.Environment = datatypes.JSONMap(*req.Environment)
	}

	var executorIDs []int64
	if req.ExecutorIDs != nil {
		executorIDs = *req.ExecutorIDs
		if executorIDs == nil {
			executorIDs = []int64{}
		}
	}
	if err := s.repo.Update(run, executorIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *testRunService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// parseExecutionDate 空字符串表示未填写
func parseExecutionDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, ok := validation.ParseDate(value)
	if !ok {
		return nil, pkgErrors.NewValidationError("test result", "Invalid execution date format")
	}
	return &t, nil
}

func (s *testRunService) AddResult(testRunID int64, req *dto.AddTestResultRequest) (*model.TestResult, error) {
	if res := validation.ValidateTestResult(validation.TestResultFields{Status: req.Status}); !res.Valid {
		return nil, pkgErrors.NewValidationError("test result", res.Errors...)
	}
	executedAt, err := parseExecutionDate(req.ExecutionDate)
	if err != nil {
		return nil, err
	}
	if executedAt == nil && req.Status != constants.ResultPending {
		now := time.Now()
		executedAt = &now
	}

	result := &model.TestResult{
		TestRunID:     testRunID,
		TestCaseID:    req.TestCaseID,
		Status:        req.Status,
		ActualResults: req.ActualResults,
		Comments:      req.Comments,
		ExecutionDate: executedAt,
	}
	if err := s.repo.AddResult(result); err != nil {
		return nil, err
	}
	return s.repo.FindResult(result.ID)
}

func (s *testRunService) GetResult(id int64) (*model.TestResult, error) {
	return s.repo.FindResult(id)
}

func (s *testRunService) UpdateResult(id int64, req *dto.UpdateTestResultRequest) (*model.TestResult, error) {
	result, err := s.repo.FindResult(id)
	if err != nil {
		return nil, err
	}

	applyString(&result.Status, req.Status)
	applyString(&result.ActualResults, req.ActualResults)
	applyString(&result.Comments, req.Comments)

	if res := validation.ValidateTestResult(validation.TestResultFields{Status: result.Status}); !res.Valid {
		return nil, pkgErrors.NewValidationError("test result", res.Errors...)
	}
	if req.ExecutionDate != nil {
		executedAt, err := parseExecutionDate(*req.ExecutionDate)
		if err != nil {
			return nil, err
		}
		result.ExecutionDate = executedAt
	}

	if err := s.repo.UpdateResult(result); err != nil {
		return nil, err
	}
	return s.repo.FindResult(id)
}

func (s *testRunService) DeleteResult(id int64) error {
	return s.repo.DeleteResult(id)
}

func toTestRunListItem(run *model.TestRun) *dto.TestRunListItem {
	counts := lo.CountValuesBy(run.Results, func(r model.TestResult) string { return r.Status })
	return &dto.TestRunListItem{
		ID:           run.ID,
		Name:         run.Name,
		Status:       run.Status,
		StartDate:    run.StartDate,
		EndDate:      run.EndDate,
		ExecutedBy:   toUserBriefs(run.ExecutedBy),
		ResultCount:  len(run.Results),
		PassCount:    counts[constants.ResultPass],
		FailCount:    counts[constants.ResultFail],
		PendingCount: counts[constants.ResultPending],
	}
}
