package uploads

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/jobs"
	"welfare-center-api/src/models"
	"welfare-center-api/src/services/files"
)

const contentPreviewLen = 80

func notFound() *apperrors.AppError {
	return apperrors.NotFound("UPLOAD_NOT_FOUND", "upload not found")
}

// Create stores a member submission with optional attached files. At least one
// of content or files must be present. Saved files are rolled back if the
// document insert fails.
func Create(c *fiber.Ctx, userID, institutionID, title, content string, headers []*multipart.FileHeader) (*models.Upload, error) {
	if content == "" && len(headers) == 0 {
		return nil, apperrors.Invalid("VALIDATION_FAILED", "upload requires content or at least one file")
	}

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}
	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	saved := make([]models.UploadFile, 0, len(headers))
	for i, header := range headers {
		file, err := files.Save(c, header, i)
		if err != nil {
			for _, f := range saved {
				files.Remove(f.FilePath)
			}
			return nil, err
		}
		saved = append(saved, *file)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	upload := models.Upload{
		InstitutionID: instOID,
		UserID:        userOID,
		Title:         title,
		Content:       content,
		Files:         saved,
		AdminRead:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.UploadCollection.InsertOne(ctx, upload)
	if err != nil {
		for _, f := range saved {
			files.Remove(f.FilePath)
		}
		return nil, apperrors.Internal("failed to save upload")
	}
	upload.ID = result.InsertedID.(primitive.ObjectID)

	enqueueNotify(upload.ID)
	return &upload, nil
}

// ListByUser returns a member's own uploads, newest first.
func ListByUser(userID string) ([]models.Upload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.UploadCollection.Find(ctx, bson.M{"userId": userOID}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query uploads")
	}
	defer cursor.Close(ctx)

	uploads := []models.Upload{}
	if err := cursor.All(ctx, &uploads); err != nil {
		return nil, apperrors.Internal("failed to decode uploads")
	}
	return uploads, nil
}

// GetForUser returns one upload owned by the member.
func GetForUser(userID, uploadID string) (*models.Upload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, notFound()
	}
	uploadOID, err := primitive.ObjectIDFromHex(uploadID)
	if err != nil {
		return nil, notFound()
	}

	var upload models.Upload
	if err := database.UploadCollection.FindOne(ctx, bson.M{"_id": uploadOID, "userId": userOID}).Decode(&upload); err != nil {
		return nil, notFound()
	}
	return &upload, nil
}

// ListForInstitution returns the tenant's uploads as list rows with the member
// name and a content preview joined in. unreadOnly narrows to uploads no admin
// has opened yet; limit and offset page through the result, newest first.
func ListForInstitution(institutionID string, unreadOnly bool, limit, offset int) ([]models.UploadListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, apperrors.NotFound("INSTITUTION_NOT_FOUND", "institution not found")
	}

	filter := bson.M{"institutionId": instOID}
	if unreadOnly {
		filter["adminRead"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := database.UploadCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to query uploads")
	}
	defer cursor.Close(ctx)

	var uploads []models.Upload
	if err := cursor.All(ctx, &uploads); err != nil {
		return nil, apperrors.Internal("failed to decode uploads")
	}

	userNames := map[primitive.ObjectID]string{}
	items := make([]models.UploadListItem, 0, len(uploads))
	for _, u := range uploads {
		name, ok := userNames[u.UserID]
		if !ok {
			var user models.User
			if err := database.UserCollection.FindOne(ctx, bson.M{"_id": u.UserID}).Decode(&user); err == nil {
				name = user.Name
			}
			userNames[u.UserID] = name
		}

		preview := u.Content
		if len([]rune(preview)) > contentPreviewLen {
			preview = string([]rune(preview)[:contentPreviewLen])
		}

		item := models.UploadListItem{
			ID:                u.ID,
			Title:             u.Title,
			ContentPreview:    preview,
			UserID:            u.UserID,
			UserName:          name,
			AdminRead:         u.AdminRead,
			AdminResponseDate: u.AdminResponseDate,
			FileCount:         len(u.Files),
			CreatedAt:         u.CreatedAt,
		}
		if len(u.Files) > 0 {
			item.FirstFileType = u.Files[0].FileType
		}
		items = append(items, item)
	}
	return items, nil
}

// GetForInstitution returns one tenant upload and marks it admin-read.
func GetForInstitution(institutionID, uploadID string) (*models.Upload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	uploadOID, err := primitive.ObjectIDFromHex(uploadID)
	if err != nil {
		return nil, notFound()
	}

	var upload models.Upload
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.UploadCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": uploadOID, "institutionId": instOID},
		bson.M{"$set": bson.M{"adminRead": true, "updatedAt": time.Now()}},
		opts).Decode(&upload)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load upload")
	}
	return &upload, nil
}

// Respond records the admin's reply on an upload. One reply per upload; a
// second attempt overwrites the text but keeps the original responder.
func Respond(institutionID, uploadID, adminID string, req models.AdminResponseRequest) (*models.Upload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instOID, err := primitive.ObjectIDFromHex(institutionID)
	if err != nil {
		return nil, notFound()
	}
	uploadOID, err := primitive.ObjectIDFromHex(uploadID)
	if err != nil {
		return nil, notFound()
	}

	var existing models.Upload
	err = database.UploadCollection.FindOne(ctx,
		bson.M{"_id": uploadOID, "institutionId": instOID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load upload")
	}

	var upload models.Upload
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.UploadCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": uploadOID, "institutionId": instOID},
		bson.M{"$set": respondUpdate(&existing, adminID, req.Response, time.Now())},
		opts).Decode(&upload)
	if err == mongo.ErrNoDocuments {
		return nil, notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("failed to save admin response")
	}
	return &upload, nil
}

// respondUpdate builds the reply update. The responder is stamped on the first
// reply only; later edits replace the text but not the name behind it.
func respondUpdate(existing *models.Upload, adminID, response string, now time.Time) bson.M {
	set := bson.M{
		"adminResponse":     response,
		"adminResponseDate": now,
		"adminRead":         true,
		"updatedAt":         now,
	}
	if existing.AdminID == nil {
		if oid, err := primitive.ObjectIDFromHex(adminID); err == nil {
			set["adminId"] = oid
		}
	}
	return set
}

// ResolveFile finds a stored file by its embedded id for serving.
func ResolveFile(fileID string) (*models.UploadFile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fileOID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, apperrors.NotFound("FILE_NOT_FOUND", "file not found")
	}

	var upload models.Upload
	if err := database.UploadCollection.FindOne(ctx, bson.M{"files._id": fileOID}).Decode(&upload); err != nil {
		return nil, apperrors.NotFound("FILE_NOT_FOUND", "file not found")
	}

	for _, f := range upload.Files {
		if f.ID == fileOID {
			return &f, nil
		}
	}
	return nil, apperrors.NotFound("FILE_NOT_FOUND", "file not found")
}

func enqueueNotify(uploadID primitive.ObjectID) {
	if database.AsynqClient == nil {
		return
	}
	task, err := jobs.NewUploadNotifyTask(uploadID.Hex())
	if err != nil {
		logrus.WithError(err).Warn("failed to build upload notify task")
		return
	}
	if _, err := database.AsynqClient.Enqueue(task); err != nil {
		logrus.WithError(err).Warn("failed to enqueue upload notify task")
	}
}
