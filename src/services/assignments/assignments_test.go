package assignments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
)

// The target check runs before any storage access, so it is testable on its own.
func TestCreateRejectsAmbiguousTarget(t *testing.T) {
	cases := []struct {
		name string
		req  models.QuestionAssignmentRequest
	}{
		{"neither user nor group", models.QuestionAssignmentRequest{QuestionID: "q"}},
		{"both user and group", models.QuestionAssignmentRequest{QuestionID: "q", UserID: "u", GroupID: "g"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Create("inst", "admin", tc.req)
			require.Error(t, err)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
			assert.Equal(t, 400, appErr.Status)
		})
	}
}
