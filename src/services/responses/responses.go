package responses

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
)

// Submit appends a response row for an assignment the member can reach, either
// directly or through an active group membership. Same-day re-submissions stack
// up; the read side picks the latest.
func Submit(userID string, req models.QuestionResponseRequest) (*models.QuestionResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}
	assignmentOID, err := primitive.ObjectIDFromHex(req.AssignmentID)
	if err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}

	var assignment models.QuestionAssignment
	if err := database.AssignmentCollection.FindOne(ctx, bson.M{"_id": assignmentOID}).Decode(&assignment); err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}

	reachable := assignment.UserID != nil && *assignment.UserID == userOID
	if !reachable && assignment.GroupID != nil {
		count, err := database.UserGroupMemberCollection.CountDocuments(ctx, bson.M{
			"groupId":  *assignment.GroupID,
			"userId":   userOID,
			"isActive": true,
		})
		if err != nil {
			return nil, apperrors.Internal("failed to check group membership")
		}
		reachable = count > 0
	}
	if !reachable {
		return nil, apperrors.Forbidden("this question is not assigned to you")
	}

	response := models.QuestionResponse{
		InstitutionID: assignment.InstitutionID,
		AssignmentID:  assignment.ID,
		QuestionID:    assignment.QuestionID,
		UserID:        userOID,
		ResponseData:  req.Answer,
		SubmittedAt:   time.Now(),
	}

	result, err := database.ResponseCollection.InsertOne(ctx, response)
	if err != nil {
		return nil, apperrors.Internal("failed to save response")
	}
	response.ID = result.InsertedID.(primitive.ObjectID)
	return &response, nil
}

// MyQuestions returns the member's active assigned questions, direct
// assignments first by priority, with today's completion state folded in from
// the latest same-day response.
func MyQuestions(userID string) ([]models.UserQuestion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	groupIDs := []primitive.ObjectID{}
	memberCursor, err := database.UserGroupMemberCollection.Find(ctx, bson.M{"userId": userOID, "isActive": true})
	if err == nil {
		var members []models.UserGroupMember
		if err := memberCursor.All(ctx, &members); err == nil {
			for _, m := range members {
				groupIDs = append(groupIDs, m.GroupID)
			}
		}
	}

	filter := bson.M{"$or": bson.A{bson.M{"userId": userOID}}}
	if len(groupIDs) > 0 {
		filter["$or"] = bson.A{
			bson.M{"userId": userOID},
			bson.M{"groupId": bson.M{"$in": groupIDs}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "assignedAt", Value: -1}})
	cursor, err := database.AssignmentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query assignments")
	}
	defer cursor.Close(ctx)

	var assignmentList []models.QuestionAssignment
	if err := cursor.All(ctx, &assignmentList); err != nil {
		return nil, apperrors.Internal("failed to decode assignments")
	}

	todayRows := todayResponses(ctx, userOID)
	deduped := DedupLatestPerDay(todayRows, time.Local)
	latestByAssignment := map[primitive.ObjectID]DedupedResponse{}
	for _, d := range deduped {
		latestByAssignment[d.Response.AssignmentID] = d
	}

	items := make([]models.UserQuestion, 0, len(assignmentList))
	seenQuestions := map[primitive.ObjectID]bool{}
	for _, a := range assignmentList {
		// direct and group assignments can reference the same question;
		// the higher-priority row (sorted first) wins
		if seenQuestions[a.QuestionID] {
			continue
		}

		var question models.Question
		if err := database.QuestionCollection.FindOne(ctx, bson.M{
			"_id": a.QuestionID, "isActive": true,
		}).Decode(&question); err != nil {
			continue
		}
		seenQuestions[a.QuestionID] = true

		item := models.UserQuestion{
			AssignmentID:           a.ID,
			QuestionID:             question.ID,
			Title:                  question.Title,
			Content:                question.Content,
			QuestionType:           question.QuestionType,
			CategoryID:             question.CategoryID,
			Options:                question.Options,
			AllowOtherOption:       question.AllowOtherOption,
			OtherOptionLabel:       question.OtherOptionLabel,
			OtherOptionPlaceholder: question.OtherOptionPlaceholder,
			IsRequired:             question.IsRequired,
			Priority:               a.Priority,
			AssignedAt:             a.AssignedAt,
		}

		if question.CategoryID != nil {
			var category models.Category
			if err := database.CategoryCollection.FindOne(ctx, bson.M{"_id": *question.CategoryID}).Decode(&category); err == nil {
				item.CategoryName = category.Name
			}
		}

		if a.UserID != nil {
			item.AssignmentSource = "USER"
			item.SourceID = a.UserID
		} else if a.GroupID != nil {
			item.AssignmentSource = "GROUP"
			item.SourceID = a.GroupID
			var group models.UserGroup
			if err := database.UserGroupCollection.FindOne(ctx, bson.M{"_id": *a.GroupID}).Decode(&group); err == nil {
				item.SourceName = group.Name
			}
		}

		if latest, ok := latestByAssignment[a.ID]; ok {
			item.IsCompleted = true
			responseID := latest.Response.ID
			submittedAt := latest.Response.SubmittedAt
			item.ResponseID = &responseID
			item.ResponseAnswer = latest.Response.ResponseData
			item.ResponseSubmittedAt = &submittedAt
		}

		items = append(items, item)
	}

	// unanswered questions surface first, then by priority and recency
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsCompleted != items[j].IsCompleted {
			return !items[i].IsCompleted
		}
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].AssignedAt.After(items[j].AssignedAt)
	})
	return items, nil
}

// MyQuestion returns one of the member's assigned questions by assignment id.
func MyQuestion(userID, assignmentID string) (*models.UserQuestion, error) {
	aOID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}

	items, err := MyQuestions(userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].AssignmentID == aOID {
			return &items[i], nil
		}
	}
	return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
}

// MyPending returns the member's questions still unanswered today.
func MyPending(userID string) ([]models.UserQuestion, error) {
	return myQuestionsByState(userID, false)
}

// MyCompleted returns the member's questions already answered today.
func MyCompleted(userID string) ([]models.UserQuestion, error) {
	return myQuestionsByState(userID, true)
}

func myQuestionsByState(userID string, completed bool) ([]models.UserQuestion, error) {
	items, err := MyQuestions(userID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.UserQuestion, 0, len(items))
	for _, item := range items {
		if item.IsCompleted == completed {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// MyStatistics returns the member's completion progress for today.
func MyStatistics(userID string) (*models.UserQuestionStatistics, error) {
	items, err := MyQuestions(userID)
	if err != nil {
		return nil, err
	}

	stats := &models.UserQuestionStatistics{TotalAssigned: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			stats.CompletedToday++
		}
	}
	stats.PendingToday = stats.TotalAssigned - stats.CompletedToday
	if stats.TotalAssigned > 0 {
		stats.CompletionRate = float64(stats.CompletedToday) / float64(stats.TotalAssigned)
	}
	return stats, nil
}

// ByAssignment returns an assignment's responses for reporting. With history
// false, same-day duplicates collapse to the latest submission per user and
// day; with history true every stored row is returned.
func ByAssignment(institutionID, assignmentID string, history bool) (*models.AssignmentResponseSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}
	aOID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}

	var assignment models.QuestionAssignment
	if err := database.AssignmentCollection.FindOne(ctx, bson.M{"_id": aOID, "institutionId": instOID}).Decode(&assignment); err != nil {
		return nil, apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
	}

	rows, err := findResponses(ctx, bson.M{"assignmentId": aOID})
	if err != nil {
		return nil, err
	}

	summary := &models.AssignmentResponseSummary{
		AssignmentID:   assignment.ID,
		QuestionID:     assignment.QuestionID,
		TotalResponses: len(rows),
		Responses:      buildDetails(ctx, rows, history),
	}
	var question models.Question
	if err := database.QuestionCollection.FindOne(ctx, bson.M{"_id": assignment.QuestionID}).Decode(&question); err == nil {
		summary.QuestionTitle = question.Title
		summary.QuestionType = question.QuestionType
	}
	return summary, nil
}

// ByUser returns a member's responses across all questions, deduped unless
// history is requested. from/to bound the submission window (inclusive dates,
// "2006-01-02").
func ByUser(institutionID, userID string, from, to string, history bool) (*models.UserResponseSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userOID, "institutionId": instOID}).Decode(&user); err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	filter := bson.M{"userId": userOID}
	window := bson.M{}
	if from != "" {
		start, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return nil, apperrors.Invalid("VALIDATION_FAILED", "from must be formatted as 2006-01-02")
		}
		window["$gte"] = start
	}
	if to != "" {
		end, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return nil, apperrors.Invalid("VALIDATION_FAILED", "to must be formatted as 2006-01-02")
		}
		window["$lt"] = end.AddDate(0, 0, 1)
	}
	if len(window) > 0 {
		filter["submittedAt"] = window
	}

	rows, err := findResponses(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &models.UserResponseSummary{
		UserID:         user.ID,
		UserName:       user.Name,
		TotalResponses: len(rows),
		Responses:      buildDetails(ctx, rows, history),
	}
	if len(rows) > 0 {
		latest := rows[0].SubmittedAt
		summary.LatestResponseAt = &latest
	}
	return summary, nil
}

// Recent returns the institution's latest raw submissions, newest first.
func Recent(institutionID string, limit int) ([]models.ResponseDetail, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}).SetLimit(int64(limit))
	cursor, err := database.ResponseCollection.Find(ctx, bson.M{"institutionId": instOID}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query responses")
	}
	defer cursor.Close(ctx)

	var rows []models.QuestionResponse
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperrors.Internal("failed to decode responses")
	}
	return buildDetails(ctx, rows, true), nil
}

// History returns every stored submission of one user for one question,
// optionally narrowed to a single local date ("2006-01-02"). Nothing is
// deduped here; this is the audit view behind the latest-per-day reads.
func History(institutionID, questionID, userID, date string) ([]models.ResponseDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}
	qOID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, apperrors.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	filter := bson.M{
		"institutionId": instOID,
		"questionId":    qOID,
		"userId":        userOID,
	}
	if date != "" {
		start, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, apperrors.Invalid("VALIDATION_FAILED", "date must be formatted as 2006-01-02")
		}
		filter["submittedAt"] = bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
	}

	rows, err := findResponses(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildDetails(ctx, rows, true), nil
}

func findResponses(ctx context.Context, filter bson.M) ([]models.QuestionResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := database.ResponseCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query responses")
	}
	defer cursor.Close(ctx)

	var rows []models.QuestionResponse
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperrors.Internal("failed to decode responses")
	}
	return rows, nil
}

// buildDetails resolves question and user names and applies same-day dedup
// unless the full history was requested.
func buildDetails(ctx context.Context, rows []models.QuestionResponse, history bool) []models.ResponseDetail {
	counts := map[dedupKey]int{}
	for _, row := range rows {
		key := dedupKey{
			date:       row.SubmittedAt.In(time.Local).Format("2006-01-02"),
			questionID: row.QuestionID.Hex(),
			userID:     row.UserID.Hex(),
		}
		counts[key]++
	}

	selected := rows
	if !history {
		deduped := DedupLatestPerDay(rows, time.Local)
		selected = make([]models.QuestionResponse, 0, len(deduped))
		for _, d := range deduped {
			selected = append(selected, d.Response)
		}
	}

	questionNames := map[primitive.ObjectID]models.Question{}
	userNames := map[primitive.ObjectID]string{}

	details := make([]models.ResponseDetail, 0, len(selected))
	for _, row := range selected {
		question, ok := questionNames[row.QuestionID]
		if !ok {
			database.QuestionCollection.FindOne(ctx, bson.M{"_id": row.QuestionID}).Decode(&question)
			questionNames[row.QuestionID] = question
		}
		userName, ok := userNames[row.UserID]
		if !ok {
			var user models.User
			if err := database.UserCollection.FindOne(ctx, bson.M{"_id": row.UserID}).Decode(&user); err == nil {
				userName = user.Name
			}
			userNames[row.UserID] = userName
		}

		key := dedupKey{
			date:       row.SubmittedAt.In(time.Local).Format("2006-01-02"),
			questionID: row.QuestionID.Hex(),
			userID:     row.UserID.Hex(),
		}
		details = append(details, models.ResponseDetail{
			ResponseID:        row.ID,
			AssignmentID:      row.AssignmentID,
			QuestionID:        row.QuestionID,
			QuestionTitle:     question.Title,
			QuestionType:      question.QuestionType,
			UserID:            row.UserID,
			UserName:          userName,
			ResponseData:      row.ResponseData,
			SubmittedAt:       row.SubmittedAt,
			IsModified:        counts[key] > 1,
			ModificationCount: counts[key],
		})
	}
	return details
}

func todayResponses(ctx context.Context, userID primitive.ObjectID) []models.QuestionResponse {
	now := time.Now().In(time.Local)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	rows, err := findResponses(ctx, bson.M{
		"userId":      userID,
		"submittedAt": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		return nil
	}
	return rows
}
