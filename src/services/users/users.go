package users

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
	"welfare-center-api/src/utils"
)

func notFound() *apperrors.AppError {
	return apperrors.NotFound("USER_NOT_FOUND", "user not found")
}

func parseIDs(institutionID, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, notFound()
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, notFound()
	}
	return instOID, userOID, nil
}

// Register creates a member account on behalf of an institution admin. The
// login code is chosen by the admin and must be unique within the institution.
// A one-shot temporary code is issued alongside so the member can log in
// before being told their permanent code.
func Register(institutionID, createdBy string, req models.UserRegisterRequest) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, "", apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{
		"institutionId": instOID,
		"loginCode":     req.LoginCode,
	})
	if err != nil {
		return nil, "", apperrors.Internal("failed to check login code")
	}
	if count > 0 {
		return nil, "", apperrors.Conflict("DUPLICATE_RESOURCE", "login code already in use")
	}

	// resolve groups before inserting so a bad group id leaves no orphan user
	groupOIDs, err := resolveTenantGroups(ctx, instOID, req.GroupIDs)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := models.User{
		InstitutionID: instOID,
		LoginCode:     req.LoginCode,
		Name:          req.Name,
		Phone:         req.Phone,
		BirthDate:     req.BirthDate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.UserCollection.InsertOne(ctx, user)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, "", apperrors.Conflict("DUPLICATE_RESOURCE", "login code already in use")
		}
		return nil, "", apperrors.Internal("failed to create user")
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	if len(groupOIDs) > 0 {
		var adder *primitive.ObjectID
		if oid, err := primitive.ObjectIDFromHex(createdBy); err == nil {
			adder = &oid
		}
		for _, groupOID := range groupOIDs {
			addMembership(ctx, groupOID, user.ID, adder)
		}
	}

	// best effort; the permanent login code still works without it
	tempCode, _ := utils.IssueLoginCode(ctx, user.ID.Hex())

	return &user, tempCode, nil
}

// Signup creates a self-registered member account with username and password.
func Signup(req models.UserSignupRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(req.InstitutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	count, err := database.InstitutionCollection.CountDocuments(ctx, bson.M{"_id": instOID, "isActive": true})
	if err != nil {
		return nil, apperrors.Internal("failed to check institution")
	}
	if count == 0 {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	existing, err := database.UserCollection.CountDocuments(ctx, bson.M{
		"institutionId": instOID,
		"username":      req.Username,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check username")
	}
	if existing > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "username already in use")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password")
	}

	now := time.Now()
	user := models.User{
		InstitutionID: instOID,
		Username:      req.Username,
		Password:      hashed,
		Name:          req.Name,
		Phone:         req.Phone,
		BirthDate:     req.BirthDate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.UserCollection.InsertOne(ctx, user)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "username already in use")
		}
		return nil, apperrors.Internal("failed to create user")
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""
	return &user, nil
}

// List returns the institution's members, newest first, with their active
// group memberships joined in. search matches name or username.
func List(institutionID, search string, activeOnly bool) ([]models.UserListItem, error) {
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
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"username": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.Internal("failed to decode users")
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.UserListItem{
			ID:            u.ID,
			Username:      u.Username,
			Name:          u.Name,
			Phone:         u.Phone,
			BirthDate:     u.BirthDate,
			Severity:      u.Severity,
			GuardianName:  u.GuardianName,
			GuardianPhone: u.GuardianPhone,
			IsActive:      u.IsActive,
			LastLogin:     u.LastLogin,
			InstitutionID: u.InstitutionID,
			GroupIDs:      activeGroupIDs(ctx, u.ID),
			CreatedAt:     u.CreatedAt,
		})
	}
	return items, nil
}

// GetByID returns one member of the given institution.
func GetByID(institutionID, userID string) (*models.User, error) {
	instOID, userOID, err := parseIDs(institutionID, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userOID, "institutionId": instOID}).Decode(&user); err != nil {
		return nil, notFound()
	}
	return &user, nil
}

// Update applies the non-nil fields of req to a member of the institution.
func Update(institutionID, userID string, req models.UserUpdateRequest) (*models.User, error) {
	instOID, userOID, err := parseIDs(institutionID, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.BirthDate != nil {
		set["birthDate"] = *req.BirthDate
	}
	if req.Severity != nil {
		set["severity"] = *req.Severity
	}
	if req.GuardianName != nil {
		set["guardianName"] = *req.GuardianName
	}
	if req.GuardianRelationship != nil {
		set["guardianRelationship"] = *req.GuardianRelationship
	}
	if req.GuardianPhone != nil {
		set["guardianPhone"] = *req.GuardianPhone
	}
	if req.GuardianEmail != nil {
		set["guardianEmail"] = *req.GuardianEmail
	}
	if req.GuardianAddress != nil {
		set["guardianAddress"] = *req.GuardianAddress
	}
	if req.EmergencyContacts != nil {
		set["emergencyContacts"] = *req.EmergencyContacts
	}
	if req.CareNotes != nil {
		set["careNotes"] = *req.CareNotes
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userOID, "institutionId": instOID},
		bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update user")
	}
	return &user, nil
}

// UpdateSelf applies the member-editable subset of profile fields to the
// caller's own record. Severity and care notes stay staff-only.
func UpdateSelf(userID string, req models.UserUpdateRequest) (*models.UserProfileResponse, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, notFound()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.BirthDate != nil {
		set["birthDate"] = *req.BirthDate
	}
	if req.GuardianName != nil {
		set["guardianName"] = *req.GuardianName
	}
	if req.GuardianRelationship != nil {
		set["guardianRelationship"] = *req.GuardianRelationship
	}
	if req.GuardianPhone != nil {
		set["guardianPhone"] = *req.GuardianPhone
	}
	if req.GuardianEmail != nil {
		set["guardianEmail"] = *req.GuardianEmail
	}
	if req.GuardianAddress != nil {
		set["guardianAddress"] = *req.GuardianAddress
	}
	if req.EmergencyContacts != nil {
		set["emergencyContacts"] = *req.EmergencyContacts
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "isActive": true},
		bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update profile")
	}

	var inst models.Institution
	database.InstitutionCollection.FindOne(ctx, bson.M{"_id": user.InstitutionID}).Decode(&inst)
	return &models.UserProfileResponse{User: user, InstitutionName: inst.Name}, nil
}

// Delete deactivates a member and their group memberships.
func Delete(institutionID, userID string) error {
	instOID, userOID, err := parseIDs(institutionID, userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userOID, "institutionId": instOID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return apperrors.Internal("failed to delete user")
	}
	if result.MatchedCount == 0 {
		return notFound()
	}

	database.UserGroupMemberCollection.UpdateMany(ctx,
		bson.M{"userId": userOID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false}})
	return nil
}

// Profile returns a member's own record with the institution name attached.
func Profile(userID string) (*models.UserProfileResponse, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, notFound()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&user); err != nil {
		return nil, notFound()
	}

	var inst models.Institution
	database.InstitutionCollection.FindOne(ctx, bson.M{"_id": user.InstitutionID}).Decode(&inst)

	return &models.UserProfileResponse{User: user, InstitutionName: inst.Name}, nil
}

// IssueTemporaryCode creates a short-lived one-shot login code for a member.
func IssueTemporaryCode(institutionID, userID string) (string, error) {
	instOID, userOID, err := parseIDs(institutionID, userID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{
		"_id": userOID, "institutionId": instOID, "isActive": true,
	})
	if err != nil {
		return "", apperrors.Internal("failed to check user")
	}
	if count == 0 {
		return "", notFound()
	}

	code, err := utils.IssueLoginCode(ctx, userID)
	if err != nil {
		return "", apperrors.Internal("failed to issue login code")
	}
	return code, nil
}

// resolveTenantGroups checks that every requested group belongs to the
// institution and is active. Memberships never cross a tenant boundary.
func resolveTenantGroups(ctx context.Context, instOID primitive.ObjectID, groupIDs []string) ([]primitive.ObjectID, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	requested := make([]primitive.ObjectID, 0, len(groupIDs))
	for _, id := range groupIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
		}
		requested = append(requested, oid)
	}

	cursor, err := database.UserGroupCollection.Find(ctx, bson.M{
		"_id":           bson.M{"$in": requested},
		"institutionId": instOID,
		"isActive":      true,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check user groups")
	}
	defer cursor.Close(ctx)

	var groups []models.UserGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, apperrors.Internal("failed to decode user groups")
	}

	found := make(map[primitive.ObjectID]bool, len(groups))
	for _, g := range groups {
		found[g.ID] = true
	}
	if missing := missingGroupIDs(requested, found); len(missing) > 0 {
		return nil, apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
	}
	return requested, nil
}

// missingGroupIDs returns the requested ids the tenant-scoped lookup did not
// return, in request order.
func missingGroupIDs(requested []primitive.ObjectID, found map[primitive.ObjectID]bool) []primitive.ObjectID {
	var missing []primitive.ObjectID
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func activeGroupIDs(ctx context.Context, userID primitive.ObjectID) []primitive.ObjectID {
	cursor, err := database.UserGroupMemberCollection.Find(ctx, bson.M{"userId": userID, "isActive": true})
	if err != nil {
		return []primitive.ObjectID{}
	}
	defer cursor.Close(ctx)

	var members []models.UserGroupMember
	if err := cursor.All(ctx, &members); err != nil {
		return []primitive.ObjectID{}
	}

	ids := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.GroupID)
	}
	return ids
}

// addMembership inserts or reactivates a membership row. Shared with the
// groups service semantics: the unique index keeps one row per pair.
func addMembership(ctx context.Context, groupID, userID primitive.ObjectID, addedBy *primitive.ObjectID) {
	update := bson.M{
		"$set": bson.M{"isActive": true},
		"$setOnInsert": bson.M{
			"groupId":  groupID,
			"userId":   userID,
			"addedBy":  addedBy,
			"joinedAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := database.UserGroupMemberCollection.UpdateOne(ctx,
		bson.M{"groupId": groupID, "userId": userID}, update, opts); err == nil {
		refreshMemberCount(ctx, groupID)
	}
}

func refreshMemberCount(ctx context.Context, groupID primitive.ObjectID) {
	count, err := database.UserGroupMemberCollection.CountDocuments(ctx, bson.M{"groupId": groupID, "isActive": true})
	if err != nil {
		return
	}
	database.UserGroupCollection.UpdateOne(ctx, bson.M{"_id": groupID},
		bson.M{"$set": bson.M{"memberCount": count, "updatedAt": time.Now()}})
}
