package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
)

func TestValidateStructPasses(t *testing.T) {
	req := models.AdminRegisterRequest{
		Name:          "Jamie Park",
		Email:         "jamie@example.com",
		Password:      "longenough1",
		Role:          "STAFF",
		InstitutionID: "abc",
	}
	assert.NoError(t, ValidateStruct(req))
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	req := models.AdminRegisterRequest{
		Name:     "J",
		Email:    "not-an-email",
		Password: "short",
		Role:     "OWNER",
	}

	err := ValidateStruct(req)
	require.Error(t, err)

	valErr, ok := err.(*apperrors.ValidationError)
	require.True(t, ok)

	fields := map[string]string{}
	for _, fe := range valErr.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
	assert.Contains(t, fields, "Role")
	assert.Contains(t, fields, "InstitutionID")
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be at least 8", fields["Password"])
}

func TestValidateStructCarriesRejectedValue(t *testing.T) {
	req := struct {
		Priority int    `validate:"gte=0"`
		Email    string `validate:"email"`
	}{Priority: -3, Email: "not-an-email"}

	err := ValidateStruct(req)
	require.Error(t, err)

	valErr, ok := err.(*apperrors.ValidationError)
	require.True(t, ok)

	values := map[string]interface{}{}
	for _, fe := range valErr.Fields {
		values[fe.Field] = fe.RejectedValue
	}
	// the raw value, not a stringified copy
	assert.Equal(t, -3, values["Priority"])
	assert.Equal(t, "not-an-email", values["Email"])
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hashed)
	assert.True(t, CheckPassword(hashed, "s3cret-password"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
