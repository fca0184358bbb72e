package responses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"welfare-center-api/src/models"
)

func makeResponse(question, user primitive.ObjectID, submittedAt time.Time, answer string) models.QuestionResponse {
	return models.QuestionResponse{
		ID:           primitive.NewObjectID(),
		QuestionID:   question,
		UserID:       user,
		ResponseData: bson.M{"value": answer},
		SubmittedAt:  submittedAt,
	}
}

func TestDedupLatestWinsWithinDay(t *testing.T) {
	question := primitive.NewObjectID()
	user := primitive.NewObjectID()
	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	rows := []models.QuestionResponse{
		makeResponse(question, user, day, "first"),
		makeResponse(question, user, day.Add(2*time.Hour), "second"),
		makeResponse(question, user, day.Add(5*time.Hour), "third"),
	}

	result := DedupLatestPerDay(rows, time.UTC)
	require.Len(t, result, 1)
	assert.Equal(t, "third", result[0].Response.ResponseData["value"])
	assert.Equal(t, 3, result[0].Count)
}

func TestDedupSeparatesDays(t *testing.T) {
	question := primitive.NewObjectID()
	user := primitive.NewObjectID()
	monday := time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC)

	rows := []models.QuestionResponse{
		makeResponse(question, user, monday, "mon"),
		makeResponse(question, user, tuesday, "tue"),
	}

	result := DedupLatestPerDay(rows, time.UTC)
	require.Len(t, result, 2)
	// newest first
	assert.Equal(t, "tue", result[0].Response.ResponseData["value"])
	assert.Equal(t, 1, result[0].Count)
	assert.Equal(t, "mon", result[1].Response.ResponseData["value"])
	assert.Equal(t, 1, result[1].Count)
}

func TestDedupSeparatesUsersAndQuestions(t *testing.T) {
	question := primitive.NewObjectID()
	otherQuestion := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	rows := []models.QuestionResponse{
		makeResponse(question, alice, at, "alice-q1"),
		makeResponse(question, bob, at.Add(time.Minute), "bob-q1"),
		makeResponse(otherQuestion, alice, at.Add(2*time.Minute), "alice-q2"),
	}

	result := DedupLatestPerDay(rows, time.UTC)
	assert.Len(t, result, 3)
	for _, d := range result {
		assert.Equal(t, 1, d.Count)
	}
}

func TestDedupDayBoundaryFollowsLocation(t *testing.T) {
	question := primitive.NewObjectID()
	user := primitive.NewObjectID()
	seoul := time.FixedZone("KST", 9*60*60)

	// same UTC day, but midnight KST falls between the two submissions
	first := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)  // 23:00 KST Aug 29
	second := time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC) // 01:00 KST Aug 30

	rows := []models.QuestionResponse{
		makeResponse(question, user, first, "a"),
		makeResponse(question, user, second, "b"),
	}

	assert.Len(t, DedupLatestPerDay(rows, time.UTC), 1)
	assert.Len(t, DedupLatestPerDay(rows, seoul), 2)
}

func TestDedupEmptyAndNilLocation(t *testing.T) {
	assert.Empty(t, DedupLatestPerDay(nil, time.UTC))
	assert.Empty(t, DedupLatestPerDay([]models.QuestionResponse{}, nil))
}
