package institutions

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

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}
	return oid, nil
}

// ListPublic returns active institutions without operational counts. It backs
// the unauthenticated dropdown on the login and signup screens.
func ListPublic() ([]models.Institution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.InstitutionCollection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query institutions")
	}
	defer cursor.Close(ctx)

	institutions := []models.Institution{}
	if err := cursor.All(ctx, &institutions); err != nil {
		return nil, apperrors.Internal("failed to decode institutions")
	}
	return institutions, nil
}

// List returns all institutions, active or not, with admin and user counts.
func List() ([]models.InstitutionListItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.InstitutionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query institutions")
	}
	defer cursor.Close(ctx)

	var institutions []models.Institution
	if err := cursor.All(ctx, &institutions); err != nil {
		return nil, apperrors.Internal("failed to decode institutions")
	}

	items := make([]models.InstitutionListItem, 0, len(institutions))
	for _, inst := range institutions {
		adminCount, userCount := dependentCounts(ctx, inst.ID)
		items = append(items, models.InstitutionListItem{
			ID:             inst.ID,
			Name:           inst.Name,
			BusinessNumber: inst.BusinessNumber,
			Address:        inst.Address,
			Phone:          inst.Phone,
			DirectorName:   inst.DirectorName,
			AdminCount:     adminCount,
			UserCount:      userCount,
			IsActive:       inst.IsActive,
			CreatedAt:      inst.CreatedAt,
		})
	}
	return items, nil
}

// GetByID returns one institution with its dependent counts.
func GetByID(id string) (*models.InstitutionDetail, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var inst models.Institution
	if err := database.InstitutionCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&inst); err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	adminCount, userCount := dependentCounts(ctx, inst.ID)
	return &models.InstitutionDetail{Institution: inst, AdminCount: adminCount, UserCount: userCount}, nil
}

// Create registers a new institution. Name is globally unique.
func Create(req models.InstitutionCreateRequest) (*models.Institution, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := database.InstitutionCollection.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		return nil, apperrors.Internal("failed to check institution name")
	}
	if count > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "institution name already exists")
	}

	now := time.Now()
	inst := models.Institution{
		Name:               req.Name,
		BusinessNumber:     req.BusinessNumber,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		DirectorName:       req.DirectorName,
		Website:            req.Website,
		ContactPerson:      req.ContactPerson,
		ContactPhone:       req.ContactPhone,
		ContactEmail:       req.ContactEmail,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	result, err := database.InstitutionCollection.InsertOne(ctx, inst)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "institution name already exists")
		}
		return nil, apperrors.Internal("failed to create institution")
	}

	inst.ID = result.InsertedID.(primitive.ObjectID)
	return &inst, nil
}

// Update applies the non-nil fields of req. A name change re-checks uniqueness.
func Update(id string, req models.InstitutionUpdateRequest) (*models.Institution, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		count, err := database.InstitutionCollection.CountDocuments(ctx, bson.M{
			"name": *req.Name,
			"_id":  bson.M{"$ne": oid},
		})
		if err != nil {
			return nil, apperrors.Internal("failed to check institution name")
		}
		if count > 0 {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "institution name already exists")
		}
		set["name"] = *req.Name
	}
	if req.BusinessNumber != nil {
		set["businessNumber"] = *req.BusinessNumber
	}
	if req.RegistrationNumber != nil {
		set["registrationNumber"] = *req.RegistrationNumber
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.DirectorName != nil {
		set["directorName"] = *req.DirectorName
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.ContactPerson != nil {
		set["contactPerson"] = *req.ContactPerson
	}
	if req.ContactPhone != nil {
		set["contactPhone"] = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		set["contactEmail"] = *req.ContactEmail
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	var inst models.Institution
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.InstitutionCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&inst)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "institution name already exists")
		}
		return nil, apperrors.Internal("failed to update institution")
	}
	return &inst, nil
}

// Delete deactivates an institution. Blocked while any active admin or user
// still belongs to it.
func Delete(id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminCount, userCount := dependentCounts(ctx, oid)
	if adminCount > 0 || userCount > 0 {
		return apperrors.Conflict("INSTITUTION_HAS_DEPENDENCIES",
			"institution has %d admin(s) and %d user(s); remove them first", adminCount, userCount)
	}

	result, err := database.InstitutionCollection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return apperrors.Internal("failed to delete institution")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}
	return nil
}

func dependentCounts(ctx context.Context, institutionID primitive.ObjectID) (admins, users int64) {
	admins, _ = database.AdminCollection.CountDocuments(ctx, bson.M{"institutionId": institutionID, "isActive": true})
	users, _ = database.UserCollection.CountDocuments(ctx, bson.M{"institutionId": institutionID, "isActive": true})
	return admins, users
}
