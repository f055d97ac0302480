package service

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/internal/repository"
	"testhub/internal/validation"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

type TestCaseService interface {
	Create(userID int64, req *dto.CreateTestCaseRequest) (*model.TestCase, error)
	GetByID(id int64) (*model.TestCase, error)
	// List 并行加载用例与需求, 在内存中过滤与分页
	List(ctx context.Context, query *dto.TestCaseQuery) (*dto.TestCaseListResponse, error)
	ListByRequirement(requirementID int64) ([]*dto.TestCaseListItem, error)
	ListByUser(userID int64) ([]*dto.TestCaseListItem, error)
	Update(id int64, req *dto.UpdateTestCaseRequest) (*model.TestCase, error)
	Delete(id int64) error

	AddRequirement(testCaseID, requirementID int64) error
	RemoveRequirement(testCaseID, requirementID int64) error

	BulkDelete(ids []int64) (*dto.BulkResult, error)
	BulkUpdate(req *dto.BulkUpdateTestCasesRequest) (*dto.BulkResult, error)
}

type testCaseService struct {
	repo            repository.TestCaseRepository
	requirementRepo repository.RequirementRepository
	userRepo        repository.UserRepository
}

func NewTestCaseService(
	repo repository.TestCaseRepository,
	requirementRepo repository.RequirementRepository,
	userRepo repository.UserRepository,
) TestCaseService {
	return &testCaseService{
		repo:            repo,
		requirementRepo: requirementRepo,
		userRepo:        userRepo,
	}
}

func testCaseFields(tc *model.TestCase) validation.TestCaseFields {
	return validation.TestCaseFields{
		Title:            tc.Title,
		Description:      tc.Description,
		Priority:         tc.Priority,
		Status:           tc.Status,
		Type:             tc.Type,
		AutomationStatus: tc.AutomationStatus,
	}
}

func toSteps(inputs []dto.StepInput) []model.TestStep {
	var steps []model.TestStep
	for _, in := range inputs {
		steps = model.AddStep(steps, in.Action, in.ExpectedResult)
	}
	if steps == nil {
		return []model.TestStep{}
	}
	return steps
}

func (s *testCaseService) Create(userID int64, req *dto.CreateTestCaseRequest) (*model.TestCase, error) {
	testCase := &model.TestCase{
		Title:                req.Title,
		Description:          req.Description,
		Preconditions:        req.Preconditions,
		Type:                 req.Type,
		Priority:             req.Priority,
		Status:               req.Status,
		AutomationStatus:     req.AutomationStatus,
		AutomationScriptPath: req.AutomationScriptPath,
		Steps:                toSteps(req.Steps),
		CreatedByID:          userID,
	}

	if res := validation.ValidateTestCase(testCaseFields(testCase)); !res.Valid {
		return nil, pkgErrors.NewValidationError("test case", res.Errors...)
	}
	if testCase.AutomationStatus == "" {
		testCase.AutomationStatus = constants.AutomationNotAutomated
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(testCase, req.RequirementIDs); err != nil {
		return nil, err
	}
	return s.repo.FindByID(testCase.ID)
}

func (s *testCaseService) GetByID(id int64) (*model.TestCase, error) {
	return s.repo.FindByID(id)
}

func (s *testCaseService) List(ctx context.Context, query *dto.TestCaseQuery) (*dto.TestCaseListResponse, error) {
	var (
		testCases    []*model.TestCase
		requirements []*model.Requirement
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		testCases, err = s.repo.List()
		return err
	})
	g.Go(func() error {
		var err error
		requirements, err = s.requirementRepo.List()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := FilterTestCases(testCases, query)
	items := lo.Map(paginate(filtered, &query.PageQuery), func(tc *model.TestCase, _ int) *dto.TestCaseListItem {
		return toTestCaseListItem(tc)
	})

	return &dto.TestCaseListResponse{
		PageResponse: *dto.NewPageResponse(items, int64(len(filtered)), query.GetPage(), query.GetPageSize()),
		Requirements: lo.Map(requirements, func(r *model.Requirement, _ int) dto.RequirementBrief {
			return toRequirementBrief(r)
		}),
	}, nil
}

// FilterTestCases 关键字匹配标题或描述(不区分大小写), 其余条件精确匹配;
// requirement_ids 命中任意一个即保留
func FilterTestCases(testCases []*model.TestCase, query *dto.TestCaseQuery) []*model.TestCase {
	return lo.Filter(testCases, func(tc *model.TestCase, _ int) bool {
		if query.Keyword != "" && !containsFold(tc.Title, query.Keyword) && !containsFold(tc.Description, query.Keyword) {
			return false
		}
		if query.Type != "" && tc.Type != query.Type {
			return false
		}
		if query.Priority != "" && tc.Priority != query.Priority {
			return false
		}
		if query.Status != "" && tc.Status != query.Status {
			return false
		}
		if len(query.RequirementIDs) > 0 {
			linked := lo.Map(tc.Requirements, func(r model.Requirement, _ int) int64 { return r.ID })
			if len(lo.Intersect(linked, query.RequirementIDs)) == 0 {
				return false
			}
		}
		return true
	})
}

func (s *testCaseService) ListByRequirement(requirementID int64) ([]*dto.TestCaseListItem, error) {
	testCases, err := s.repo.ListByRequirement(requirementID)
	if err != nil {
		return nil, err
	}
	return lo.Map(testCases, func(tc *model.TestCase, _ int) *dto.TestCaseListItem {
		return toTestCaseListItem(tc)
	}), nil
}

func (s *testCaseService) ListByUser(userID int64) ([]*dto.TestCaseListItem, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	testCases, err := s.repo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(testCases, func(tc *model.TestCase, _ int) *dto.TestCaseListItem {
		return toTestCaseListItem(tc)
	}), nil
}

func (s *testCaseService) Update(id int64, req *dto.UpdateTestCaseRequest) (*model.TestCase, error) {
	testCase, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	applyString(&testCase.Title, req.Title)
	applyString(&testCase.Description, req.Description)
	applyString(&testCase.Preconditions, req.Preconditions)
	applyString(&testCase.Type, req.Type)
	applyString(&testCase.Priority, req.Priority)
	applyString(&testCase.Status, req.Status)
	applyString(&testCase.AutomationStatus, req.AutomationStatus)
	applyString(&testCase.AutomationScriptPath, req.AutomationScriptPath)

	if res := validation.ValidateTestCase(testCaseFields(testCase)); !res.Valid {
		return nil, pkgErrors.NewValidationError("test case", res.Errors...)
	}
	if testCase.AutomationStatus == "" {
		testCase.AutomationStatus = constants.AutomationNotAutomated
	}

	var steps []model.TestStep
	if req.Steps != nil {
		steps = toSteps(*req.Steps)
	}
	if err := s.repo.Update(testCase, steps); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

func (s *testCaseService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *testCaseService) AddRequirement(testCaseID, requirementID int64) error {
	return s.repo.AddRequirement(testCaseID, requirementID)
}

func (s *testCaseService) RemoveRequirement(testCaseID, requirementID int64) error {
	return s.repo.RemoveRequirement(testCaseID, requirementID)
}

func (s *testCaseService) BulkDelete(ids []int64) (*dto.BulkResult, error) {
	affected, err := s.repo.BulkDelete(ids)
	if err != nil {
		return nil, err
	}
	return &dto.BulkResult{Affected: affected}, nil
}

// BulkUpdate 只允许批量修改枚举字段, 先校验再执行单条 UPDATE
func (s *testCaseService) BulkUpdate(req *dto.BulkUpdateTestCasesRequest) (*dto.BulkResult, error) {
	fields := make(map[string]interface{})
	var errs []string

	check := func(column, field, enum string, value *string) {
		if value == nil {
			return
		}
		if !validation.IsEnumValue(enum, *value) {
			errs = append(errs, validation.EnumError(field, enum))
			return
		}
		fields[column] = *value
	}
	check("type", "type", "test_type", req.Type)
	check("priority", "priority", "priority", req.Priority)
	check("status", "status", "status", req.Status)
	check("automation_status", "automation_status", "automation_status", req.AutomationStatus)

	if len(errs) > 0 {
		return nil, pkgErrors.NewValidationError("test case", errs...)
	}
	if len(fields) == 0 {
		return nil, pkgErrors.NewValidationError("test case", "No fields to update")
	}

	affected, err := s.repo.BulkUpdate(req.IDs, fields)
	if err != nil {
		return nil, err
	}
	return &dto.BulkResult{Affected: affected}, nil
}

func toTestCaseListItem(tc *model.TestCase) *dto.TestCaseListItem {
	return &dto.TestCaseListItem{
		ID:               tc.ID,
		Title:            tc.Title,
		Description:      tc.Description,
		Type:             tc.Type,
		Priority:         tc.Priority,
		Status:           tc.Status,
		AutomationStatus: tc.AutomationStatus,
		StepCount:        len(tc.Steps),
		CreatedBy:        toUserBrief(tc.CreatedBy),
		Requirements:     toRequirementBriefs(tc.Requirements),
		UpdatedAt:        tc.UpdatedAt,
	}
}
