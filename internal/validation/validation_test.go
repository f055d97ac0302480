package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/pkg/constants"
)

func validRequirement() RequirementFields {
	return RequirementFields{
		Title:       "Login page",
		Description: "Users can log in with email",
		Priority:    constants.PriorityHigh,
		Status:      constants.StatusDraft,
		Category:    "Auth",
	}
}

func validTestCase() TestCaseFields {
	return TestCaseFields{
		Title:       "Login succeeds",
		Description: "Valid credentials log the user in",
		Priority:    constants.PriorityMedium,
		Status:      constants.StatusApproved,
		Type:        constants.TestTypeFunctional,
	}
}

func validUser() UserFields {
	return UserFields{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Role:      constants.RoleTester,
	}
}

func TestValidRecordsPass(t *testing.T) {
	cases := []struct {
		name string
		got  Result
	}{
		{"requirement", ValidateRequirement(validRequirement())},
		{"test case", ValidateTestCase(validTestCase())},
		{"test run", ValidateTestRun(TestRunFields{Name: "Sprint 1", StartDate: "2024-01-05", Status: constants.TestRunNotStarted})},
		{"user", ValidateUser(validUser())},
		{"comment", ValidateComment(CommentFields{Text: "looks good"})},
		{"tag", ValidateTag(TagFields{Name: "regression", Description: "rerun every release"})},
		{"test result", ValidateTestResult(TestResultFields{Status: constants.ResultPass})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.got.Valid)
			assert.Empty(t, tc.got.Errors)
			assert.NotNil(t, tc.got.Errors)
		})
	}
}

func TestValidateRequirement_MissingField(t *testing.T) {
	cases := []struct {
		field string
		clear func(*RequirementFields)
	}{
		{"title", func(f *RequirementFields) { f.Title = "" }},
		{"description", func(f *RequirementFields) { f.Description = "   " }},
		{"priority", func(f *RequirementFields) { f.Priority = "" }},
		{"status", func(f *RequirementFields) { f.Status = "" }},
		{"category", func(f *RequirementFields) { f.Category = "\t" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := validRequirement()
			tc.clear(&f)

			got := ValidateRequirement(f)
			assert.False(t, got.Valid)
			require.Len(t, got.Errors, 1)
			assert.Equal(t, tc.field+" is required", got.Errors[0])
		})
	}
}

func TestValidateTestCase_MissingField(t *testing.T) {
	cases := []struct {
		field string
		clear func(*TestCaseFields)
	}{
		{"title", func(f *TestCaseFields) { f.Title = "" }},
		{"description", func(f *TestCaseFields) { f.Description = "" }},
		{"priority", func(f *TestCaseFields) { f.Priority = "" }},
		{"status", func(f *TestCaseFields) { f.Status = "" }},
		{"type", func(f *TestCaseFields) { f.Type = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := validTestCase()
			tc.clear(&f)

			got := ValidateTestCase(f)
			assert.False(t, got.Valid)
			assert.Equal(t, []string{tc.field + " is required"}, got.Errors)
		})
	}
}

func TestValidateUser_MissingField(t *testing.T) {
	cases := []struct {
		field string
		clear func(*UserFields)
	}{
		{"username", func(f *UserFields) { f.Username = "" }},
		{"email", func(f *UserFields) { f.Email = "" }},
		{"first_name", func(f *UserFields) { f.FirstName = "" }},
		{"last_name", func(f *UserFields) { f.LastName = "" }},
		{"role", func(f *UserFields) { f.Role = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := validUser()
			tc.clear(&f)

			got := ValidateUser(f)
			assert.False(t, got.Valid)
			assert.Equal(t, []string{tc.field + " is required"}, got.Errors)
		})
	}
}

func TestValidateTestRun_MissingField(t *testing.T) {
	base := TestRunFields{Name: "Sprint 1", StartDate: "2024-01-05", Status: constants.TestRunInProgress}

	noName := base
	noName.Name = ""
	assert.Equal(t, []string{"name is required"}, ValidateTestRun(noName).Errors)

	noStart := base
	noStart.StartDate = ""
	assert.Equal(t, []string{"start_date is required"}, ValidateTestRun(noStart).Errors)

	blankStart := base
	blankStart.StartDate = "   "
	assert.Equal(t, []string{"start_date is required"}, ValidateTestRun(blankStart).Errors)

	blankEnd := base
	blankEnd.EndDate = "   "
	assert.True(t, ValidateTestRun(blankEnd).Valid, "blank end date counts as absent")

	noStatus := base
	noStatus.Status = ""
	assert.Equal(t, []string{"status is required"}, ValidateTestRun(noStatus).Errors)
}

func TestEnumFields(t *testing.T) {
	t.Run("each declared value is accepted", func(t *testing.T) {
		for _, p := range constants.Priorities {
			f := validRequirement()
			f.Priority = p
			assert.True(t, ValidateRequirement(f).Valid, p)
		}
		for _, s := range constants.Statuses {
			f := validRequirement()
			f.Status = s
			assert.True(t, ValidateRequirement(f).Valid, s)
		}
		for _, typ := range constants.TestTypes {
			f := validTestCase()
			f.Type = typ
			assert.True(t, ValidateTestCase(f).Valid, typ)
		}
		for _, a := range constants.AutomationStatuses {
			f := validTestCase()
			f.AutomationStatus = a
			assert.True(t, ValidateTestCase(f).Valid, a)
		}
		for _, r := range constants.Roles {
			f := validUser()
			f.Role = r
			assert.True(t, ValidateUser(f).Valid, r)
		}
		for _, s := range constants.TestRunStatuses {
			assert.True(t, ValidateTestRun(TestRunFields{Name: "n", StartDate: "2024-01-01", Status: s}).Valid, s)
		}
		for _, s := range constants.ResultStatuses {
			assert.True(t, ValidateTestResult(TestResultFields{Status: s}).Valid, s)
		}
	})

	t.Run("values outside the set name the allowed set", func(t *testing.T) {
		f := validRequirement()
		f.Priority = "Urgent"
		got := ValidateRequirement(f)
		assert.False(t, got.Valid)
		assert.Equal(t, []string{"Invalid priority. Must be one of: High, Medium, Low"}, got.Errors)

		tc := validTestCase()
		tc.Type = "Smoke"
		tc.AutomationStatus = "Maybe"
		got = ValidateTestCase(tc)
		assert.Equal(t, []string{
			"Invalid type. Must be one of: Functional, Integration, Performance, Security",
			"Invalid automation_status. Must be one of: Not Automated, Automated, In Progress",
		}, got.Errors)

		u := validUser()
		u.Role = "Root"
		got = ValidateUser(u)
		assert.Equal(t, []string{"Invalid role. Must be one of: Admin, Tester, Developer, Viewer, User"}, got.Errors)
	})

	t.Run("enum values are not coerced", func(t *testing.T) {
		f := validRequirement()
		f.Priority = "high"
		assert.False(t, ValidateRequirement(f).Valid)
	})
}

func TestRequiredErrorsComeFirst(t *testing.T) {
	got := ValidateRequirement(RequirementFields{Priority: "Urgent", Status: "Draft"})
	assert.Equal(t, []string{
		"title is required",
		"description is required",
		"category is required",
		"Invalid priority. Must be one of: High, Medium, Low",
	}, got.Errors)
}

func TestValidateUser_Email(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b@sub.example.org", true},
		{"alice", false},
		{"alice@", false},
		{"@example.com", false},
		{"alice@example", false},
		{"ali ce@example.com", false},
		{"alice@@example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			f := validUser()
			f.Email = tc.email
			got := ValidateUser(f)
			assert.Equal(t, tc.valid, got.Valid)
			if !tc.valid {
				assert.Equal(t, []string{"Invalid email format"}, got.Errors)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	assert.Equal(t, []string{"Comment text is required"}, ValidateComment(CommentFields{Text: "  "}).Errors)
	assert.True(t, ValidateComment(CommentFields{Text: strings.Repeat("a", 1000)}).Valid)
	assert.Equal(t, []string{"Comment text cannot exceed 1000 characters"},
		ValidateComment(CommentFields{Text: strings.Repeat("a", 1001)}).Errors)
}

func TestValidateTag(t *testing.T) {
	assert.Equal(t, []string{"Tag name is required"}, ValidateTag(TagFields{}).Errors)
	assert.Equal(t, []string{"Tag name cannot exceed 50 characters"},
		ValidateTag(TagFields{Name: strings.Repeat("x", 51)}).Errors)
	assert.Equal(t, []string{"Tag description cannot exceed 200 characters"},
		ValidateTag(TagFields{Name: "smoke", Description: strings.Repeat("x", 201)}).Errors)
}

func TestValidateTestRun_Dates(t *testing.T) {
	cases := []struct {
		name      string
		start     string
		end       string
		wantValid bool
		wantErrs  []string
	}{
		{"end before start", "2024-01-10", "2024-01-05", false, []string{"End date must be after start date"}},
		{"end after start", "2024-01-05", "2024-01-10", true, []string{}},
		{"same day", "2024-01-05", "2024-01-05", true, []string{}},
		{"no end date", "2024-01-05", "", true, []string{}},
		{"datetime input", "2024-01-05T09:30", "2024-01-05T18:00", true, []string{}},
		{"rfc3339", "2024-01-05T09:30:00Z", "2024-01-06T09:30:00Z", true, []string{}},
		{"bad start", "yesterday", "2024-01-05", false, []string{"Invalid start date format"}},
		{"bad end", "2024-01-05", "2024-13-40", false, []string{"Invalid end date format"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateTestRun(TestRunFields{
				Name:      "Sprint 1",
				StartDate: tc.start,
				EndDate:   tc.end,
				Status:    constants.TestRunNotStarted,
			})
			assert.Equal(t, tc.wantValid, got.Valid)
			assert.Equal(t, tc.wantErrs, got.Errors)
		})
	}
}

func TestValidateTestRun_DateErrorsLast(t *testing.T) {
	got := ValidateTestRun(TestRunFields{StartDate: "2024-01-10", EndDate: "2024-01-05", Status: "Paused"})
	assert.Equal(t, []string{
		"name is required",
		"Invalid status. Must be one of: Not Started, In Progress, Completed, Aborted",
		"End date must be after start date",
	}, got.Errors)
}

func TestValidateAttachment(t *testing.T) {
	cases := []struct {
		name     string
		size     int64
		mimeType string
		want     AttachmentResult
	}{
		{"too large", 6_000_000, "application/pdf", AttachmentResult{Error: "File size must be less than 5MB"}},
		{"size checked before type", 6_000_000, "application/zip", AttachmentResult{Error: "File size must be less than 5MB"}},
		{"type not allowed", 1_000, "application/zip", AttachmentResult{Error: "File type not supported"}},
		{"pdf", 1_000, "application/pdf", AttachmentResult{Valid: true}},
		{"exactly 5MB", constants.MaxAttachmentSize, "image/png", AttachmentResult{Valid: true}},
		{"docx", 10, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", AttachmentResult{Valid: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateAttachment(tc.size, tc.mimeType))
		})
	}
}

func TestValidationDoesNotMutateInput(t *testing.T) {
	f := RequirementFields{Title: "  padded  ", Priority: "Urgent"}
	before := f
	_ = ValidateRequirement(f)
	assert.Equal(t, before, f)
}
