package groups

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
	return apperrors.NotFound("GROUP_NOT_FOUND", "user group not found")
}

// findGroup loads a group and checks it belongs to the caller's institution.
func findGroup(ctx context.Context, institutionID, groupID string) (*models.UserGroup, error) {
	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	groupOID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return nil, notFound()
	}

	var group models.UserGroup
	if err := database.UserGroupCollection.FindOne(ctx, bson.M{"_id": groupOID, "institutionId": instOID}).Decode(&group); err != nil {
		return nil, notFound()
	}
	return &group, nil
}

// Create adds a group. Name is unique within the institution.
func Create(institutionID, createdBy string, req models.UserGroupRequest) (*models.UserGroup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	count, err := database.UserGroupCollection.CountDocuments(ctx, bson.M{"institutionId": instOID, "name": req.Name})
	if err != nil {
		return nil, apperrors.Internal("failed to check group name")
	}
	if count > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "group name already exists")
	}

	var creator *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(createdBy); err == nil {
		creator = &oid
	}

	now := time.Now()
	group := models.UserGroup{
		InstitutionID: instOID,
		Name:          req.Name,
		Description:   req.Description,
		IsActive:      true,
		MemberCount:   0,
		CreatedBy:     creator,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.UserGroupCollection.InsertOne(ctx, group)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "group name already exists")
		}
		return nil, apperrors.Internal("failed to create group")
	}

	group.ID = result.InsertedID.(primitive.ObjectID)
	return &group, nil
}

// List returns the institution's groups, name-sorted.
func List(institutionID string, activeOnly bool) ([]models.UserGroup, error) {
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
	cursor, err := database.UserGroupCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query groups")
	}
	defer cursor.Close(ctx)

	groups := []models.UserGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, apperrors.Internal("failed to decode groups")
	}
	return groups, nil
}

// GetByID returns one group.
func GetByID(institutionID, groupID string) (*models.UserGroup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return findGroup(ctx, institutionID, groupID)
}

// Update renames a group or changes its description.
func Update(institutionID, groupID string, req models.UserGroupRequest) (*models.UserGroup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	group, err := findGroup(ctx, institutionID, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != group.Name {
		count, err := database.UserGroupCollection.CountDocuments(ctx, bson.M{
			"institutionId": group.InstitutionID,
			"name":          req.Name,
			"_id":           bson.M{"$ne": group.ID},
		})
		if err != nil {
			return nil, apperrors.Internal("failed to check group name")
		}
		if count > 0 {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "group name already exists")
		}
	}

	var updated models.UserGroup
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.UserGroupCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": group.ID},
		bson.M{"$set": bson.M{"name": req.Name, "description": req.Description, "updatedAt": time.Now()}},
		opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update group")
	}
	return &updated, nil
}

// Delete deactivates a group and its memberships.
func Delete(institutionID, groupID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	group, err := findGroup(ctx, institutionID, groupID)
	if err != nil {
		return err
	}

	_, err = database.UserGroupCollection.UpdateOne(ctx, bson.M{"_id": group.ID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		return apperrors.Internal("failed to delete group")
	}

	database.UserGroupMemberCollection.UpdateMany(ctx,
		bson.M{"groupId": group.ID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false}})
	return nil
}

// AddMembers joins users to the group. A user already removed from the group is
// reactivated on the same row so the original join metadata survives.
func AddMembers(institutionID, groupID, addedBy string, req models.UserGroupMemberRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	group, err := findGroup(ctx, institutionID, groupID)
	if err != nil {
		return err
	}

	var adder *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(addedBy); err == nil {
		adder = &oid
	}

	for _, userID := range req.UserIDs {
		userOID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return apperrors.NotFound("USER_NOT_FOUND", "user %s not found", userID)
		}

		count, err := database.UserCollection.CountDocuments(ctx, bson.M{
			"_id":           userOID,
			"institutionId": group.InstitutionID,
			"isActive":      true,
		})
		if err != nil {
			return apperrors.Internal("failed to check user")
		}
		if count == 0 {
			return apperrors.NotFound("USER_NOT_FOUND", "user %s not found", userID)
		}

		update := bson.M{
			"$set": bson.M{"isActive": true},
			"$setOnInsert": bson.M{
				"groupId":  group.ID,
				"userId":   userOID,
				"addedBy":  adder,
				"joinedAt": time.Now(),
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := database.UserGroupMemberCollection.UpdateOne(ctx,
			bson.M{"groupId": group.ID, "userId": userOID}, update, opts); err != nil {
			return apperrors.Internal("failed to add group member")
		}
	}

	refreshMemberCount(ctx, group.ID)
	return nil
}

// RemoveMember deactivates a user's membership.
func RemoveMember(institutionID, groupID, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	group, err := findGroup(ctx, institutionID, groupID)
	if err != nil {
		return err
	}

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	result, err := database.UserGroupMemberCollection.UpdateOne(ctx,
		bson.M{"groupId": group.ID, "userId": userOID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return apperrors.Internal("failed to remove group member")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("USER_NOT_FOUND", "user is not a member of this group")
	}

	refreshMemberCount(ctx, group.ID)
	return nil
}

// ListMembers returns the group's active memberships with user names joined in.
func ListMembers(institutionID, groupID string) ([]models.UserGroupMemberView, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	group, err := findGroup(ctx, institutionID, groupID)
	if err != nil {
		return nil, err
	}

	cursor, err := database.UserGroupMemberCollection.Find(ctx, bson.M{"groupId": group.ID, "isActive": true})
	if err != nil {
		return nil, apperrors.Internal("failed to query group members")
	}
	defer cursor.Close(ctx)

	var members []models.UserGroupMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, apperrors.Internal("failed to decode group members")
	}

	userIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	users := map[primitive.ObjectID]models.User{}
	if len(userIDs) > 0 {
		userCursor, err := database.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err == nil {
			var list []models.User
			if err := userCursor.All(ctx, &list); err == nil {
				for _, u := range list {
					users[u.ID] = u
				}
			}
		}
	}

	views := make([]models.UserGroupMemberView, 0, len(members))
	for _, m := range members {
		u := users[m.UserID]
		views = append(views, models.UserGroupMemberView{
			ID:       m.ID,
			GroupID:  m.GroupID,
			UserID:   m.UserID,
			Username: u.Username,
			UserName: u.Name,
			JoinedAt: m.JoinedAt,
			IsActive: m.IsActive,
		})
	}
	return views, nil
}

func refreshMemberCount(ctx context.Context, groupID primitive.ObjectID) {
	count, err := database.UserGroupMemberCollection.CountDocuments(ctx, bson.M{"groupId": groupID, "isActive": true})
	if err != nil {
		return
	}
	database.UserGroupCollection.UpdateOne(ctx, bson.M{"_id": groupID},
		bson.M{"$set": bson.M{"memberCount": count, "updatedAt": time.Now()}})
}
