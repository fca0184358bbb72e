package assignments

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
)

func notFound() *apperrors.AppError {
	return apperrors.NotFound("ASSIGNMENT_NOT_FOUND", "question assignment not found")
}

// Create assigns a question to exactly one of a user or a group. The same
// (question, target) pair cannot be assigned twice.
func Create(institutionID, assignedBy string, req models.QuestionAssignmentRequest) (*models.QuestionAssignment, error) {
	if (req.UserID == "") == (req.GroupID == "") {
		return nil, apperrors.Invalid("VALIDATION_FAILED", "assignment requires exactly one of userId or groupId")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	questionOID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		return nil, apperrors.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	count, err := database.QuestionCollection.CountDocuments(ctx, bson.M{
		"_id": questionOID, "institutionId": instOID, "isActive": true,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check question")
	}
	if count == 0 {
		return nil, apperrors.NotFound("QUESTION_NOT_FOUND", "question not found")
	}

	assignment := models.QuestionAssignment{
		InstitutionID: instOID,
		QuestionID:    questionOID,
		Priority:      req.Priority,
		AssignedAt:    time.Now(),
	}
	if oid, err := primitive.ObjectIDFromHex(assignedBy); err == nil {
		assignment.AssignedBy = &oid
	}

	dupFilter := bson.M{"questionId": questionOID}
	if req.UserID != "" {
		userOID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		count, err := database.UserCollection.CountDocuments(ctx, bson.M{
			"_id": userOID, "institutionId": instOID, "isActive": true,
		})
		if err != nil {
			return nil, apperrors.Internal("failed to check user")
		}
		if count == 0 {
			return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		assignment.UserID = &userOID
		dupFilter["userId"] = userOID
	} else {
		groupOID, err := primitive.ObjectIDFromHex(req.GroupID)
		if err != nil {
			return nil, apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
		}
		count, err := database.UserGroupCollection.CountDocuments(ctx, bson.M{
			"_id": groupOID, "institutionId": instOID, "isActive": true,
		})
		if err != nil {
			return nil, apperrors.Internal("failed to check group")
		}
		if count == 0 {
			return nil, apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
		}
		assignment.GroupID = &groupOID
		dupFilter["groupId"] = groupOID
	}

	existing, err := database.AssignmentCollection.CountDocuments(ctx, dupFilter)
	if err != nil {
		return nil, apperrors.Internal("failed to check existing assignment")
	}
	if existing > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "question is already assigned to this target")
	}

	result, err := database.AssignmentCollection.InsertOne(ctx, assignment)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "question is already assigned to this target")
		}
		return nil, apperrors.Internal("failed to create assignment")
	}

	assignment.ID = result.InsertedID.(primitive.ObjectID)
	return &assignment, nil
}

// List returns the institution's assignments with question, target and
// assigner names joined in, plus the raw response count per assignment.
func List(institutionID, questionID, userID, groupID string) ([]models.QuestionAssignmentView, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	filter := bson.M{"institutionId": instOID}
	if questionID != "" {
		oid, err := primitive.ObjectIDFromHex(questionID)
		if err != nil {
			return nil, apperrors.NotFound("QUESTION_NOT_FOUND", "question not found")
		}
		filter["questionId"] = oid
	}
	if userID != "" {
		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		filter["userId"] = oid
	}
	if groupID != "" {
		oid, err := primitive.ObjectIDFromHex(groupID)
		if err != nil {
			return nil, apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
		}
		filter["groupId"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}})
	cursor, err := database.AssignmentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query assignments")
	}
	defer cursor.Close(ctx)

	var list []models.QuestionAssignment
	if err := cursor.All(ctx, &list); err != nil {
		return nil, apperrors.Internal("failed to decode assignments")
	}

	views := make([]models.QuestionAssignmentView, 0, len(list))
	for _, a := range list {
		view := models.QuestionAssignmentView{
			ID:         a.ID,
			QuestionID: a.QuestionID,
			UserID:     a.UserID,
			GroupID:    a.GroupID,
			Priority:   a.Priority,
			AssignedBy: a.AssignedBy,
			AssignedAt: a.AssignedAt,
		}

		var question models.Question
		if err := database.QuestionCollection.FindOne(ctx, bson.M{"_id": a.QuestionID}).Decode(&question); err == nil {
			view.QuestionTitle = question.Title
			view.QuestionType = question.QuestionType
		}
		if a.UserID != nil {
			var user models.User
			if err := database.UserCollection.FindOne(ctx, bson.M{"_id": *a.UserID}).Decode(&user); err == nil {
				view.UserName = user.Name
			}
		}
		if a.GroupID != nil {
			var group models.UserGroup
			if err := database.UserGroupCollection.FindOne(ctx, bson.M{"_id": *a.GroupID}).Decode(&group); err == nil {
				view.GroupName = group.Name
			}
		}
		if a.AssignedBy != nil {
			var admin models.Admin
			if err := database.AdminCollection.FindOne(ctx, bson.M{"_id": *a.AssignedBy}).Decode(&admin); err == nil {
				view.AssignedByName = admin.Name
			}
		}
		view.ResponseCount, _ = database.ResponseCollection.CountDocuments(ctx, bson.M{"assignmentId": a.ID})

		views = append(views, view)
	}
	return views, nil
}

// UpdatePriority changes the ordering priority of an assignment. Question and
// target are fixed once assigned; reassigning means delete and create.
func UpdatePriority(institutionID, assignmentID string, priority int) (*models.QuestionAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	aOID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, notFound()
	}

	var assignment models.QuestionAssignment
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.AssignmentCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": aOID, "institutionId": instOID},
		bson.M{"$set": bson.M{"priority": priority}}, opts).Decode(&assignment)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update assignment")
	}
	return &assignment, nil
}

// Statistics summarizes assignment targets and how many have at least one
// submitted response.
func Statistics(institutionID string) (*models.AssignmentStatistics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	stats := &models.AssignmentStatistics{}
	stats.Total, _ = database.AssignmentCollection.CountDocuments(ctx, bson.M{"institutionId": instOID})
	stats.UserAssignments, _ = database.AssignmentCollection.CountDocuments(ctx, bson.M{
		"institutionId": instOID, "userId": bson.M{"$ne": nil},
	})
	stats.GroupAssignments, _ = database.AssignmentCollection.CountDocuments(ctx, bson.M{
		"institutionId": instOID, "groupId": bson.M{"$ne": nil},
	})

	answered, err := database.ResponseCollection.Distinct(ctx, "assignmentId", bson.M{"institutionId": instOID})
	if err == nil {
		stats.WithResponses = int64(len(answered))
	}
	return stats, nil
}

// Delete removes an assignment. Submitted responses are kept; reporting reads
// them through their own question and user references.
func Delete(institutionID, assignmentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return notFound()
	}
	aOID, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return notFound()
	}

	result, err := database.AssignmentCollection.DeleteOne(ctx, bson.M{"_id": aOID, "institutionId": instOID})
	if err != nil {
		return apperrors.Internal("failed to delete assignment")
	}
	if result.DeletedCount == 0 {
		return notFound()
	}
	return nil
}
