package seeder

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
	"welfare-center-api/src/utils"
)

// SeedSystemAdmin bootstraps the first platform operator from environment
// variables. It is a no-op when the account already exists or when the
// variables are unset.
func SeedSystemAdmin() {
	email := os.Getenv("SYSTEM_ADMIN_EMAIL")
	password := os.Getenv("SYSTEM_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logrus.Info("system admin seed skipped, SYSTEM_ADMIN_EMAIL/PASSWORD not set")
		return
	}

	name := os.Getenv("SYSTEM_ADMIN_NAME")
	if name == "" {
		name = "System Administrator"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.SystemAdminCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		logrus.WithError(err).Error("system admin seed check failed")
		return
	}
	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("system admin seed hash failed")
		return
	}

	_, err = database.SystemAdminCollection.InsertOne(ctx, models.SystemAdmin{
		Name:      name,
		Email:     email,
		Password:  hashed,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logrus.WithError(err).Error("system admin seed insert failed")
		return
	}
	logrus.WithField("email", email).Info("system admin seeded")
}
