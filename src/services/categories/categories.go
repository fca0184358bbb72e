package categories

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
	return apperrors.NotFound("CATEGORY_NOT_FOUND", "category not found")
}

// Create adds a question category. Name is unique within the institution.
func Create(institutionID, createdBy string, req models.CategoryRequest) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	count, err := database.CategoryCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "name": req.Name})
	if err != nil {
		return nil, apperrors.Internal("failed to check category name")
	}
	if count > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "category name already exists")
	}

	var creator *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(createdBy); err == nil {
		creator = &oid
	}

	now := time.Now()
	category := models.Category{
		InstitutionID: instOID,
		Name:          req.Name,
		Description:   req.Description,
		ImagePath:     req.ImagePath,
		IsActive:      true,
		CreatedBy:     creator,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.CategoryCollection.InsertOne(ctx, category)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "category name already exists")
		}
		return nil, apperrors.Internal("failed to create category")
	}

	category.ID = result.InsertedID.(primitive.ObjectID)
	return &category, nil
}

// List returns the institution's categories, name-sorted.
func List(institutionID string, activeOnly bool) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	filter := bson.M{"institutionId": instOID}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.CategoryCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query categories")
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, apperrors.Internal("failed to decode categories")
	}
	return categories, nil
}

// Update renames a category or changes its description and image.
func Update(institutionID, categoryID string, req models.CategoryRequest) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	catOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, notFound()
	}

	count, err := database.CategoryCollection.CountDocuments(ctx, bson.M{
		"institutionId": instOID,
		"name":          req.Name,
		"_id":           bson.M{"$ne": catOID},
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check category name")
	}
	if count > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "category name already exists")
	}

	var category models.Category
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.CategoryCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": catOID, "institutionId": instOID},
		bson.M{"$set": bson.M{
			"name":        req.Name,
			"description": req.Description,
			"imagePath":   req.ImagePath,
			"updatedAt":   time.Now(),
		}}, opts).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update category")
	}
	return &category, nil
}

// Delete deactivates a category. Questions keep their categoryId; the read side
// filters on active categories.
func Delete(institutionID, categoryID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return notFound()
	}
	catOID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return notFound()
	}

	result, err := database.CategoryCollection.UpdateOne(ctx,
		bson.M{"_id": catOID, "institutionId": instOID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return apperrors.Internal("failed to delete category")
	}
	if result.MatchedCount == 0 {
		return notFound()
	}
	return nil
}
