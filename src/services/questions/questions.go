package questions

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
	return apperrors.NotFound("QUESTION_NOT_FOUND", "question not found")
}

// validateShape checks the type-dependent constraints the validate tags cannot
// express: a known question type, and a non-empty choices list for choice types.
func validateShape(req models.QuestionRequest) error {
	if !models.IsValidQuestionType(req.QuestionType) {
		return apperrors.Invalid("VALIDATION_FAILED", "unknown question type %s", req.QuestionType)
	}
	if models.IsChoiceType(req.QuestionType) {
		choices, ok := req.Options["choices"].(bson.A)
		if !ok {
			if raw, found := req.Options["choices"].([]interface{}); found {
				choices = raw
			}
		}
		if len(choices) == 0 {
			return apperrors.Invalid("VALIDATION_FAILED", "%s questions require options.choices", req.QuestionType)
		}
	}
	return nil
}

func resolveCategory(ctx context.Context, institutionID primitive.ObjectID, categoryID string) (*primitive.ObjectID, error) {
	if categoryID == "" {
		return nil, nil
	}
	catOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, apperrors.NotFound("CATEGORY_NOT_FOUND", "category not found")
	}
	count, err := database.CategoryCollection.CountDocuments(ctx, bson.M{
		"_id": catOID, "institutionId": institutionID, "isActive": true,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check category")
	}
	if count == 0 {
		return nil, apperrors.NotFound("CATEGORY_NOT_FOUND", "category not found")
	}
	return &catOID, nil
}

// Create adds a question to the institution's pool.
func Create(institutionID, createdBy string, req models.QuestionRequest) (*models.Question, error) {
	if err := validateShape(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	categoryID, err := resolveCategory(ctx, instOID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	var creator *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(createdBy); err == nil {
		creator = &oid
	}

	now := time.Now()
	question := models.Question{
		InstitutionID:          instOID,
		CategoryID:             categoryID,
		Title:                  req.Title,
		Content:                req.Content,
		QuestionType:           req.QuestionType,
		Options:                req.Options,
		AllowOtherOption:       req.AllowOtherOption,
		OtherOptionLabel:       req.OtherOptionLabel,
		OtherOptionPlaceholder: req.OtherOptionPlaceholder,
		IsRequired:             req.IsRequired,
		IsActive:               true,
		CreatedBy:              creator,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	result, err := database.QuestionCollection.InsertOne(ctx, question)
	if err != nil {
		return nil, apperrors.Internal("failed to create question")
	}

	question.ID = result.InsertedID.(primitive.ObjectID)
	return &question, nil
}

// List returns the institution's questions, optionally filtered by category.
func List(institutionID, categoryID string, activeOnly bool) ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	filter := bson.M{"institutionId": instOID}
	if activeOnly {
		filter["isActive"] = true
	}
	if categoryID != "" {
		catOID, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, apperrors.NotFound("CATEGORY_NOT_FOUND", "category not found")
		}
		filter["categoryId"] = catOID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.QuestionCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query questions")
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, apperrors.Internal("failed to decode questions")
	}
	return questions, nil
}

// ByType returns the institution's active questions of one type.
func ByType(institutionID, questionType string) ([]models.Question, error) {
	if !models.IsValidQuestionType(questionType) {
		return nil, apperrors.Invalid("VALIDATION_FAILED", "unknown question type %s", questionType)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.QuestionCollection.Find(ctx, bson.M{
		"institutionId": instOID,
		"questionType":  questionType,
		"isActive":      true,
	}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query questions")
	}
	defer cursor.Close(ctx)

	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, apperrors.Internal("failed to decode questions")
	}
	return questions, nil
}

// Statistics summarizes the question pool by activity and type.
func Statistics(institutionID string) (*models.QuestionStatistics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	stats := &models.QuestionStatistics{ByType: map[string]int64{}}
	stats.Total, _ = database.QuestionCollection.CountDocuments(ctx, bson.M{"institutionId": instOID})
	stats.Active, _ = database.QuestionCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "isActive": true})
	stats.Inactive = stats.Total - stats.Active

	pipeline := []bson.M{
		{"$match": bson.M{"institutionId": instOID}},
		{"$group": bson.M{"_id": "$questionType", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := database.QuestionCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate question statistics")
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, apperrors.Internal("failed to decode question statistics")
	}
	for _, b := range buckets {
		stats.ByType[b.Type] = b.Count
	}
	return stats, nil
}

// GetByID returns one question of the institution.
func GetByID(institutionID, questionID string) (*models.Question, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	qOID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, notFound()
	}

	var question models.Question
	if err := database.QuestionCollection.FindOne(ctx, bson.M{"_id": qOID, "institutionId": instOID}).Decode(&question); err != nil {
		return nil, notFound()
	}
	return &question, nil
}

// Update replaces the editable fields of a question.
func Update(institutionID, questionID string, req models.QuestionRequest) (*models.Question, error) {
	if err := validateShape(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	qOID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return nil, notFound()
	}

	categoryID, err := resolveCategory(ctx, instOID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"title":                  req.Title,
		"content":                req.Content,
		"questionType":           req.QuestionType,
		"options":                req.Options,
		"allowOtherOption":       req.AllowOtherOption,
		"otherOptionLabel":       req.OtherOptionLabel,
		"otherOptionPlaceholder": req.OtherOptionPlaceholder,
		"isRequired":             req.IsRequired,
		"updatedAt":              time.Now(),
	}
	update := bson.M{"$set": set}
	if categoryID != nil {
		set["categoryId"] = *categoryID
	} else {
		update["$unset"] = bson.M{"categoryId": ""}
	}

	var question models.Question
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.QuestionCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": qOID, "institutionId": instOID}, update, opts).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update question")
	}
	return &question, nil
}

// Delete deactivates a question. Existing assignments and responses survive;
// the member-facing question list filters on active questions.
func Delete(institutionID, questionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return notFound()
	}
	qOID, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return notFound()
	}

	result, err := database.QuestionCollection.UpdateOne(ctx,
		bson.M{"_id": qOID, "institutionId": instOID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return apperrors.Internal("failed to delete question")
	}
	if result.MatchedCount == 0 {
		return notFound()
	}
	return nil
}
