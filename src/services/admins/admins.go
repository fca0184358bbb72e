package admins

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
	"welfare-center-api/src/utils"
)

// Register creates a PENDING admin or staff account bound to an institution.
// The account cannot authenticate until a system admin approves it.
func Register(req models.AdminRegisterRequest) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	institutionID, err := primitive.ObjectIDFromHex(req.InstitutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	count, err := database.InstitutionCollection.CountDocuments(ctx, bson.M{"_id": institutionID, "isActive": true})
	if err != nil {
		return nil, apperrors.Internal("failed to check institution")
	}
	if count == 0 {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	existing, err := database.AdminCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, apperrors.Internal("failed to check admin email")
	}
	if existing > 0 {
		return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password")
	}

	now := time.Now()
	admin := models.Admin{
		InstitutionID: institutionID,
		Name:          req.Name,
		Email:         req.Email,
		Password:      hashed,
		Phone:         req.Phone,
		Role:          req.Role,
		Status:        models.StatusPending,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.AdminCollection.InsertOne(ctx, admin)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("DUPLICATE_RESOURCE", "email already registered")
		}
		return nil, apperrors.Internal("failed to register admin")
	}

	admin.ID = result.InsertedID.(primitive.ObjectID)
	admin.Password = ""
	return &admin, nil
}

// List returns admin accounts across all institutions, optionally filtered by
// status and institution, with institution names joined in.
func List(status, institutionID string) ([]models.AdminListItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if institutionID != "" {
		oid, err := primitive.ObjectIDFromHex(institutionID)
		if err != nil {
			return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
		}
		filter["institutionId"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.AdminCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query admins")
	}
	defer cursor.Close(ctx)

	var admins []models.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, apperrors.Internal("failed to decode admins")
	}

	names := institutionNames(ctx, admins)
	items := make([]models.AdminListItem, 0, len(admins))
	for _, a := range admins {
		items = append(items, models.AdminListItem{
			ID:              a.ID,
			Name:            a.Name,
			Email:           a.Email,
			Phone:           a.Phone,
			Role:            a.Role,
			Status:          a.Status,
			InstitutionID:   a.InstitutionID,
			InstitutionName: names[a.InstitutionID],
			CreatedAt:       a.CreatedAt,
		})
	}
	return items, nil
}

// Approve settles a PENDING registration, either approving or rejecting it.
// Rejection requires a reason and is terminal.
func Approve(adminID, approverID string, req models.AdminApprovalRequest) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, apperrors.NotFound("ADMIN_NOT_FOUND", "admin not found")
	}

	var admin models.Admin
	if err := database.AdminCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&admin); err != nil {
		return nil, apperrors.NotFound("ADMIN_NOT_FOUND", "admin not found")
	}
	if admin.Status != models.StatusPending {
		return nil, apperrors.Conflict("INVALID_STATUS", "only pending registrations can be approved or rejected")
	}

	now := time.Now()
	set := bson.M{"updatedAt": now}
	if req.Approved {
		set["status"] = models.StatusApproved
		set["approvedAt"] = now
		if approver, err := primitive.ObjectIDFromHex(approverID); err == nil {
			set["approvedBy"] = approver
		}
	} else {
		if req.RejectionReason == "" {
			return nil, apperrors.Invalid("VALIDATION_FAILED", "rejection requires a reason")
		}
		set["status"] = models.StatusRejected
		set["rejectionReason"] = req.RejectionReason
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := database.AdminCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&admin); err != nil {
		return nil, apperrors.Internal("failed to update admin status")
	}
	admin.Password = ""
	return &admin, nil
}

// ChangeStatus toggles an admin between APPROVED and SUSPENDED. PENDING and
// REJECTED accounts are out of reach for this operation.
func ChangeStatus(adminID string, req models.AdminStatusChangeRequest) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, apperrors.NotFound("ADMIN_NOT_FOUND", "admin not found")
	}

	var admin models.Admin
	if err := database.AdminCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&admin); err != nil {
		return nil, apperrors.NotFound("ADMIN_NOT_FOUND", "admin not found")
	}
	if !models.CanTransitionAdminStatus(admin.Status, req.Status) {
		return nil, apperrors.Conflict("INVALID_STATUS",
			"cannot change status from %s to %s", admin.Status, req.Status)
	}
	if req.Status == models.StatusSuspended && req.Reason == "" {
		return nil, apperrors.Invalid("VALIDATION_FAILED", "suspension requires a reason")
	}

	set := bson.M{"status": req.Status, "updatedAt": time.Now()}
	if req.Reason != "" {
		set["statusReason"] = req.Reason
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := database.AdminCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&admin); err != nil {
		return nil, apperrors.Internal("failed to update admin status")
	}
	admin.Password = ""
	return &admin, nil
}

func institutionNames(ctx context.Context, admins []models.Admin) map[primitive.ObjectID]string {
	ids := make([]primitive.ObjectID, 0, len(admins))
	seen := map[primitive.ObjectID]bool{}
	for _, a := range admins {
		if !seen[a.InstitutionID] {
			seen[a.InstitutionID] = true
			ids = append(ids, a.InstitutionID)
		}
	}
	names := map[primitive.ObjectID]string{}
	if len(ids) == 0 {
		return names
	}

	cursor, err := database.InstitutionCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return names
	}
	defer cursor.Close(ctx)

	var institutions []models.Institution
	if err := cursor.All(ctx, &institutions); err != nil {
		return names
	}
	for _, inst := range institutions {
		names[inst.ID] = inst.Name
	}
	return names
}
