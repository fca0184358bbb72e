package dashboard

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
)

func startOfToday() time.Time {
	now := time.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// Stats aggregates the institution's headline numbers. CompletionRate is
// today's distinct respondents over active members.
func Stats(institutionID string) (*models.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	stats := &models.DashboardStats{}
	stats.TotalUsers, _ = database.UserCollection.CountDocuments(ctx, bson.M{"institutionId": instOID})
	stats.ActiveUsers, _ = database.UserCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "isActive": true})
	stats.TotalGroups, _ = database.UserGroupCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "isActive": true})
	stats.TotalQuestions, _ = database.QuestionCollection.CountDocuments(ctx, bson.M{"institutionId": instOID})
	stats.ActiveQuestions, _ = database.QuestionCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "isActive": true})
	stats.ActiveAssignments, _ = database.AssignmentCollection.CountDocuments(ctx, bson.M{"institutionId": instOID})
	stats.UnreadUploads, _ = database.UploadCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "adminRead": false})
	stats.PendingAdminCount, _ = database.AdminCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "status": models.StatusPending})

	todayFilter := bson.M{
		"institutionId": instOID,
		"submittedAt":   bson.M{"$gte": startOfToday()},
	}
	stats.TodayResponses, _ = database.ResponseCollection.CountDocuments(ctx, todayFilter)
	if respondents, err := database.ResponseCollection.Distinct(ctx, "userId", todayFilter); err == nil {
		stats.TodayRespondents = int64(len(respondents))
	}
	if stats.ActiveUsers > 0 {
		stats.CompletionRate = float64(stats.TodayRespondents) / float64(stats.ActiveUsers)
	}
	return stats, nil
}

// Trends returns daily response counts for the last days calendar days,
// including empty days, oldest first.
func Trends(institutionID string, days int) ([]models.DailyResponseCount, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	windowStart := startOfToday().AddDate(0, 0, -(days - 1))

	pipeline := []bson.M{
		{"$match": bson.M{
			"institutionId": instOID,
			"submittedAt":   bson.M{"$gte": windowStart},
		}},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$submittedAt",
				"timezone": time.Local.String(),
			}},
			"responses":   bson.M{"$sum": 1},
			"respondents": bson.M{"$addToSet": "$userId"},
		}},
	}

	cursor, err := database.ResponseCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate response trends")
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Date        string               `bson:"_id"`
		Responses   int64                `bson:"responses"`
		Respondents []primitive.ObjectID `bson:"respondents"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, apperrors.Internal("failed to decode response trends")
	}

	byDate := map[string]models.DailyResponseCount{}
	for _, b := range buckets {
		byDate[b.Date] = models.DailyResponseCount{
			Date:        b.Date,
			Responses:   b.Responses,
			Respondents: int64(len(b.Respondents)),
		}
	}

	trend := make([]models.DailyResponseCount, 0, days)
	for i := 0; i < days; i++ {
		date := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		if point, ok := byDate[date]; ok {
			trend = append(trend, point)
		} else {
			trend = append(trend, models.DailyResponseCount{Date: date})
		}
	}
	return trend, nil
}

// Groups returns per-group member counts and today's submission counts.
func Groups(institutionID string) ([]models.GroupStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.UserGroupCollection.Find(ctx, bson.M{"institutionId": instOID, "isActive": true}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query groups")
	}
	defer cursor.Close(ctx)

	var groups []models.UserGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, apperrors.Internal("failed to decode groups")
	}

	today := startOfToday()
	stats := make([]models.GroupStats, 0, len(groups))
	for _, g := range groups {
		memberIDs := []primitive.ObjectID{}
		memberCursor, err := database.UserGroupMemberCollection.Find(ctx, bson.M{"groupId": g.ID, "isActive": true})
		if err == nil {
			var members []models.UserGroupMember
			if err := memberCursor.All(ctx, &members); err == nil {
				for _, m := range members {
					memberIDs = append(memberIDs, m.UserID)
				}
			}
		}

		var responsesToday int64
		if len(memberIDs) > 0 {
			responsesToday, _ = database.ResponseCollection.CountDocuments(ctx, bson.M{
				"userId":      bson.M{"$in": memberIDs},
				"submittedAt": bson.M{"$gte": today},
			})
		}

		stats = append(stats, models.GroupStats{
			GroupID:        g.ID,
			GroupName:      g.Name,
			MemberCount:    int64(len(memberIDs)),
			ResponsesToday: responsesToday,
		})
	}
	return stats, nil
}

// Recent returns the latest responses, uploads and member registrations
// merged into one feed, newest first. activityType narrows the feed to a
// single source when set.
func Recent(institutionID string, limit int, activityType string) ([]models.RecentActivity, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	wants := func(t string) bool { return activityType == "" || activityType == t }

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	userNames := map[primitive.ObjectID]string{}
	lookupName := func(id primitive.ObjectID) string {
		if name, ok := userNames[id]; ok {
			return name
		}
		var user models.User
		name := ""
		if err := database.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err == nil {
			name = user.Name
		}
		userNames[id] = name
		return name
	}

	feed := []models.RecentActivity{}

	if wants("RESPONSE") {
		respOpts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}).SetLimit(int64(limit))
		respCursor, err := database.ResponseCollection.Find(ctx, bson.M{"institutionId": instOID}, respOpts)
		if err == nil {
			var rows []models.QuestionResponse
			if err := respCursor.All(ctx, &rows); err == nil {
				for _, r := range rows {
					summary := ""
					var question models.Question
					if err := database.QuestionCollection.FindOne(ctx, bson.M{"_id": r.QuestionID}).Decode(&question); err == nil {
						summary = question.Title
					}
					feed = append(feed, models.RecentActivity{
						Type:       "RESPONSE",
						UserID:     r.UserID,
						UserName:   lookupName(r.UserID),
						Summary:    summary,
						OccurredAt: r.SubmittedAt,
					})
				}
			}
		}
	}

	if wants("UPLOAD") {
		uploadOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
		uploadCursor, err := database.UploadCollection.Find(ctx, bson.M{"institutionId": instOID}, uploadOpts)
		if err == nil {
			var rows []models.Upload
			if err := uploadCursor.All(ctx, &rows); err == nil {
				for _, u := range rows {
					feed = append(feed, models.RecentActivity{
						Type:       "UPLOAD",
						UserID:     u.UserID,
						UserName:   lookupName(u.UserID),
						Summary:    u.Title,
						OccurredAt: u.CreatedAt,
					})
				}
			}
		}
	}

	if wants("USER_REGISTERED") {
		userOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
		userCursor, err := database.UserCollection.Find(ctx, bson.M{"institutionId": instOID}, userOpts)
		if err == nil {
			var rows []models.User
			if err := userCursor.All(ctx, &rows); err == nil {
				for _, u := range rows {
					feed = append(feed, models.RecentActivity{
						Type:       "USER_REGISTERED",
						UserID:     u.ID,
						UserName:   u.Name,
						Summary:    "joined the institution",
						OccurredAt: u.CreatedAt,
					})
				}
			}
		}
	}

	// merge sort by time, newest first, then trim
	for i := 1; i < len(feed); i++ {
		for j := i; j > 0 && feed[j].OccurredAt.After(feed[j-1].OccurredAt); j-- {
			feed[j], feed[j-1] = feed[j-1], feed[j]
		}
	}
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
