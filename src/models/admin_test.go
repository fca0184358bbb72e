package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{StatusApproved, StatusSuspended, true},
		{StatusSuspended, StatusApproved, true},
		{StatusPending, StatusApproved, false},  // approval goes through the approve endpoint
		{StatusPending, StatusSuspended, false},
		{StatusRejected, StatusApproved, false}, // rejection is terminal
		{StatusRejected, StatusSuspended, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusRejected, false},
		{StatusSuspended, StatusRejected, false},
		{"UNKNOWN", StatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransitionAdminStatus(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestQuestionTypeHelpers(t *testing.T) {
	assert.True(t, IsValidQuestionType(QuestionSingleChoice))
	assert.True(t, IsValidQuestionType(QuestionScale))
	assert.False(t, IsValidQuestionType("ESSAY"))

	assert.True(t, IsChoiceType(QuestionSingleChoice))
	assert.True(t, IsChoiceType(QuestionMultipleChoice))
	assert.False(t, IsChoiceType(QuestionText))
	assert.False(t, IsChoiceType(QuestionYesNo))
}

func TestPrincipalRoles(t *testing.T) {
	staff := Principal{ID: "a", Role: RoleStaff, InstitutionID: "i"}
	assert.True(t, staff.HasRole(RoleAdmin, RoleStaff))
	assert.False(t, staff.HasRole(RoleSystemAdmin))
	assert.True(t, staff.IsInstitutionStaff())

	sysAdmin := Principal{ID: "b", Role: RoleSystemAdmin}
	assert.False(t, sysAdmin.IsInstitutionStaff())
	assert.True(t, sysAdmin.HasRole(RoleSystemAdmin))
}
