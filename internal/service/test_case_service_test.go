package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/internal/dto"
	"testhub/internal/model"
	"testhub/pkg/constants"
	pkgErrors "testhub/pkg/errors"
)

func TestTestCaseCreate_StepsAndDefaults(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)

	tc, err := f.testCases.Create(user.ID, &dto.CreateTestCaseRequest{
		Title:       "Checkout",
		Description: "pay with card",
		Type:        constants.TestTypeIntegration,
		Priority:    constants.PriorityHigh,
		Status:      constants.StatusInReview,
		Steps: []dto.StepInput{
			{Action: "add item", ExpectedResult: "cart has 1 item"},
			{Action: "pay", ExpectedResult: "order created"},
			{Action: "open orders", ExpectedResult: "order listed"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AutomationNotAutomated, tc.AutomationStatus)
	require.Len(t, tc.Steps, 3)
	for i, step := range tc.Steps {
		assert.Equal(t, i+1, step.StepNumber)
	}
	assert.Equal(t, "pay", tc.Steps[1].Action)
}

func TestTestCaseCreate_InvalidEnums(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)

	_, err := f.testCases.Create(user.ID, &dto.CreateTestCaseRequest{
		Title:            "Checkout",
		Description:      "pay",
		Type:             "Manual",
		Priority:         constants.PriorityHigh,
		Status:           constants.StatusDraft,
		AutomationStatus: "Maybe",
	})
	var vErr *pkgErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"Invalid type. Must be one of: Functional, Integration, Performance, Security",
		"Invalid automation_status. Must be one of: Not Automated, Automated, In Progress",
	}, vErr.Errors)
	assert.Zero(t, f.count(t, &model.TestCase{}))
}

func TestTestCaseUpdate_ReplacesSteps(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)
	tc := f.createTestCase(t, user.ID, "Login")

	updated, err := f.testCases.Update(tc.ID, &dto.UpdateTestCaseRequest{Title: strPtr("Login v2")})
	require.NoError(t, err)
	assert.Equal(t, "Login v2", updated.Title)
	assert.Len(t, updated.Steps, 1)

	steps := []dto.StepInput{{Action: "a", ExpectedResult: "1"}, {Action: "b", ExpectedResult: "2"}}
	updated, err = f.testCases.Update(tc.ID, &dto.UpdateTestCaseRequest{Steps: &steps})
	require.NoError(t, err)
	require.Len(t, updated.Steps, 2)
	assert.Equal(t, 2, updated.Steps[1].StepNumber)
	assert.Equal(t, int64(2), f.count(t, &model.TestStep{}))
}

func TestTestCaseRequirements_Links(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)
	req := f.createRequirement(t, user.ID, "Auth")
	tc := f.createTestCase(t, user.ID, "Login")

	require.NoError(t, f.testCases.AddRequirement(tc.ID, req.ID))
	require.NoError(t, f.testCases.AddRequirement(tc.ID, req.ID))
	assert.Equal(t, int64(1), f.count(t, &model.TestCaseRequirement{}))

	items, err := f.testCases.ListByRequirement(req.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tc.ID, items[0].ID)

	require.NoError(t, f.testCases.RemoveRequirement(tc.ID, req.ID))
	assert.Zero(t, f.count(t, &model.TestCaseRequirement{}))

	assert.True(t, pkgErrors.IsNotFound(f.testCases.AddRequirement(tc.ID, 404)))
}

func TestTestCaseBulkOperations(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)
	a := f.createTestCase(t, user.ID, "A")
	b := f.createTestCase(t, user.ID, "B")
	c := f.createTestCase(t, user.ID, "C")

	_, err := f.testCases.BulkUpdate(&dto.BulkUpdateTestCasesRequest{IDs: []int64{a.ID, b.ID}, Priority: strPtr("Urgent")})
	require.True(t, pkgErrors.IsValidation(err))

	_, err = f.testCases.BulkUpdate(&dto.BulkUpdateTestCasesRequest{IDs: []int64{a.ID}})
	require.True(t, pkgErrors.IsValidation(err))

	res, err := f.testCases.BulkUpdate(&dto.BulkUpdateTestCasesRequest{
		IDs:      []int64{a.ID, b.ID},
		Priority: strPtr(constants.PriorityLow),
		Status:   strPtr(constants.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Affected)

	got, err := f.testCases.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PriorityLow, got.Priority)
	assert.Equal(t, constants.StatusApproved, got.Status)

	got, err = f.testCases.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PriorityMedium, got.Priority)

	res, err = f.testCases.BulkDelete([]int64{a.ID, c.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Affected)
	assert.Equal(t, int64(1), f.count(t, &model.TestCase{}))
	assert.Equal(t, int64(1), f.count(t, &model.TestStep{}))
}

func TestTestCaseDelete_Twice(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)
	tc := f.createTestCase(t, user.ID, "Login")

	require.NoError(t, f.testCases.Delete(tc.ID))
	assert.True(t, pkgErrors.IsNotFound(f.testCases.Delete(tc.ID)))
}

func TestTestCaseList_SearchFilterPaginate(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "bob", constants.RoleTester)
	auth := f.createRequirement(t, user.ID, "Auth")
	billing := f.createRequirement(t, user.ID, "Billing")

	f.createTestCase(t, user.ID, "Login with password", auth.ID)
	f.createTestCase(t, user.ID, "Login with SSO", auth.ID)
	f.createTestCase(t, user.ID, "Pay invoice", billing.ID)
	f.createTestCase(t, user.ID, "Unlinked")

	resp, err := f.testCases.List(context.Background(), &dto.TestCaseQuery{PageQuery: dto.PageQuery{Keyword: "login"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Requirements, 2)

	resp, err = f.testCases.List(context.Background(), &dto.TestCaseQuery{RequirementIDs: []int64{auth.ID, billing.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)

	resp, err = f.testCases.List(context.Background(), &dto.TestCaseQuery{PageQuery: dto.PageQuery{Page: 2, PageSize: 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Total)
	assert.Len(t, resp.Items.([]*dto.TestCaseListItem), 1)
}

func TestFilterTestCases(t *testing.T) {
	cases := []*model.TestCase{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Login", Type: constants.TestTypeFunctional, Priority: constants.PriorityHigh, Status: constants.StatusDraft},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Load", Description: "LOGIN storm", Type: constants.TestTypePerformance, Priority: constants.PriorityHigh, Status: constants.StatusApproved},
		{BaseModel: model.BaseModel{ID: 3}, Title: "XSS", Type: constants.TestTypeSecurity, Priority: constants.PriorityLow, Status: constants.StatusDraft,
			Requirements: []model.Requirement{{BaseModel: model.BaseModel{ID: 7}}}},
	}

	tests := []struct {
		name  string
		query dto.TestCaseQuery
		want  []int64
	}{
		{"no filter", dto.TestCaseQuery{}, []int64{1, 2, 3}},
		{"keyword matches description", dto.TestCaseQuery{PageQuery: dto.PageQuery{Keyword: "login"}}, []int64{1, 2}},
		{"type", dto.TestCaseQuery{Type: constants.TestTypeSecurity}, []int64{3}},
		{"priority and status", dto.TestCaseQuery{Priority: constants.PriorityHigh, Status: constants.StatusDraft}, []int64{1}},
		{"requirement any of", dto.TestCaseQuery{RequirementIDs: []int64{5, 7}}, []int64{3}},
		{"no match", dto.TestCaseQuery{Type: constants.TestTypeIntegration}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTestCases(cases, &tt.query)
			var ids []int64
			for _, tc := range got {
				ids = append(ids, tc.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
