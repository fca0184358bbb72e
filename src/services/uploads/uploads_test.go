package uploads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"welfare-center-api/src/models"
)

func TestRespondUpdateStampsFirstResponder(t *testing.T) {
	admin := primitive.NewObjectID()
	now := time.Now()

	set := respondUpdate(&models.Upload{}, admin.Hex(), "thanks, noted", now)

	assert.Equal(t, "thanks, noted", set["adminResponse"])
	assert.Equal(t, true, set["adminRead"])
	assert.Equal(t, now, set["adminResponseDate"])
	require.Contains(t, set, "adminId")
	assert.Equal(t, admin, set["adminId"])
}

func TestRespondUpdateKeepsOriginalResponder(t *testing.T) {
	firstResponder := primitive.NewObjectID()
	secondResponder := primitive.NewObjectID()

	set := respondUpdate(
		&models.Upload{AdminID: &firstResponder},
		secondResponder.Hex(), "edited reply", time.Now())

	assert.Equal(t, "edited reply", set["adminResponse"])
	assert.NotContains(t, set, "adminId")
}

func TestRespondUpdateSkipsMalformedResponderID(t *testing.T) {
	set := respondUpdate(&models.Upload{}, "not-a-hex-id", "reply", time.Now())
	assert.NotContains(t, set, "adminId")
}
