package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
)

func TestLoginGateAllowsActiveInstitution(t *testing.T) {
	assert.NoError(t, loginGate(&models.Institution{Name: "Hope Center", IsActive: true}))
}

func TestLoginGateRejectsDeactivatedInstitution(t *testing.T) {
	err := loginGate(&models.Institution{Name: "Hope Center", IsActive: false})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.Code)
}

func TestLoginGateRejectsMissingInstitution(t *testing.T) {
	err := loginGate(nil)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
}
