package responses

import (
	"sort"
	"time"

	"welfare-center-api/src/models"
)

type dedupKey struct {
	date       string
	questionID string
	userID     string
}

// DedupedResponse pairs a surviving response with the size of its same-day
// group. Count > 1 means the member re-submitted that day.
type DedupedResponse struct {
	Response models.QuestionResponse
	Count    int
}

// DedupLatestPerDay collapses append-only response rows to one row per
// (calendar day, question, user): the latest submission of the day wins and the
// group size is reported alongside. Days are bucketed in loc; the result is
// ordered newest first.
func DedupLatestPerDay(rows []models.QuestionResponse, loc *time.Location) []DedupedResponse {
	if loc == nil {
		loc = time.Local
	}

	groups := map[dedupKey]*DedupedResponse{}
	order := []dedupKey{}
	for _, row := range rows {
		key := dedupKey{
			date:       row.SubmittedAt.In(loc).Format("2006-01-02"),
			questionID: row.QuestionID.Hex(),
			userID:     row.UserID.Hex(),
		}
		g, ok := groups[key]
		if !ok {
			groups[key] = &DedupedResponse{Response: row, Count: 1}
			order = append(order, key)
			continue
		}
		g.Count++
		if row.SubmittedAt.After(g.Response.SubmittedAt) {
			g.Response = row
		}
	}

	result := make([]DedupedResponse, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Response.SubmittedAt.After(result[j].Response.SubmittedAt)
	})
	return result
}
