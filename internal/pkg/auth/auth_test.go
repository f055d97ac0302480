package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	cases := []struct {
		role string
		need Permission
		want bool
	}{
		{"Admin", PermUserManage, true},
		{"Admin", PermRequirementWrite, true},
		{"Tester", PermRequirementWrite, true},
		{"Viewer", PermTestRunWrite, true},
		{"User", PermReportView, true},
		{"Tester", PermUserManage, false},
		{"Developer", PermInvitationManage, false},
		{"Unknown", PermReportView, false},
		{"", PermReportView, false},
	}

	for _, tc := range cases {
		t.Run(tc.role+"/"+string(tc.need), func(t *testing.T) {
			assert.Equal(t, tc.want, Allow(tc.role, tc.need))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, match("report:view", "report:view"))
	assert.True(t, match("report:*", "report:export"))
	assert.True(t, match("report:*", "report:export:csv"))
	assert.False(t, match("report:view", "report:view:all"))
	assert.False(t, match("report:view", "report"))
	assert.False(t, match("tag:*", "report:view"))
}
