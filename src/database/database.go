package database

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	InstitutionCollection     *mongo.Collection
	SystemAdminCollection     *mongo.Collection
	AdminCollection           *mongo.Collection
	UserCollection            *mongo.Collection
	UserGroupCollection       *mongo.Collection
	UserGroupMemberCollection *mongo.Collection
	CategoryCollection        *mongo.Collection
	QuestionCollection        *mongo.Collection
	AssignmentCollection      *mongo.Collection
	ResponseCollection        *mongo.Collection
	UploadCollection          *mongo.Collection
)

// ConnectMongoDB connects once and wires the package-level collections.
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		logrus.Fatal("MONGO_URI environment variable not set")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "welfare"
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			return
		}

		db := client.Database(dbName)
		InstitutionCollection = db.Collection("institutions")
		SystemAdminCollection = db.Collection("system_admins")
		AdminCollection = db.Collection("admins")
		UserCollection = db.Collection("users")
		UserGroupCollection = db.Collection("user_groups")
		UserGroupMemberCollection = db.Collection("user_group_members")
		CategoryCollection = db.Collection("categories")
		QuestionCollection = db.Collection("questions")
		AssignmentCollection = db.Collection("question_assignments")
		ResponseCollection = db.Collection("question_responses")
		UploadCollection = db.Collection("uploads")

		connectErr = EnsureIndexes(context.Background())
		if connectErr == nil {
			logrus.WithField("db", dbName).Info("MongoDB connected")
		}
	})

	return connectErr
}

// EnsureIndexes creates the unique indexes that actually enforce the tenant
// invariants; the per-service duplicate checks are a pre-check, not the
// enforcement mechanism.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	type indexSpec struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}

	specs := []indexSpec{
		{InstitutionCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		}},
		{SystemAdminCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		}},
		{AdminCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "status", Value: 1}}},
		}},
		{UserCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"username": bson.M{"$exists": true, "$gt": ""}})},
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "loginCode", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"loginCode": bson.M{"$exists": true, "$gt": ""}})},
		}},
		{UserGroupCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
		}},
		{UserGroupMemberCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "userId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}}},
		}},
		{CategoryCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
		}},
		{AssignmentCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "questionId", Value: 1}, {Key: "userId", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"userId": bson.M{"$exists": true}})},
			{Keys: bson.D{{Key: "questionId", Value: 1}, {Key: "groupId", Value: 1}},
				Options: options.Index().SetUnique(true).SetPartialFilterExpression(
					bson.M{"groupId": bson.M{"$exists": true}})},
			{Keys: bson.D{{Key: "institutionId", Value: 1}}},
		}},
		{ResponseCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "assignmentId", Value: 1}, {Key: "submittedAt", Value: -1}}},
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "submittedAt", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "submittedAt", Value: -1}}},
		}},
		{UploadCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "institutionId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "files._id", Value: 1}}},
		}},
	}

	for _, spec := range specs {
		if len(spec.models) == 0 {
			continue
		}
		if _, err := spec.coll.Indexes().CreateMany(ctx, spec.models); err != nil {
			return err
		}
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique-index violation, the backstop
// for races the application-level pre-checks cannot see.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
