package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Institution is the tenant: every admin, user, category, question and upload
// belongs to exactly one institution.
type Institution struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	BusinessNumber     string             `bson:"businessNumber,omitempty" json:"businessNumber,omitempty"`
	RegistrationNumber string             `bson:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	DirectorName       string             `bson:"directorName,omitempty" json:"directorName,omitempty"`
	Website            string             `bson:"website,omitempty" json:"website,omitempty"`
	ContactPerson      string             `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	ContactPhone       string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ContactEmail       string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type InstitutionCreateRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	BusinessNumber     string `json:"businessNumber" validate:"omitempty,max=20"`
	RegistrationNumber string `json:"registrationNumber" validate:"omitempty,max=20"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email" validate:"omitempty,email"`
	DirectorName       string `json:"directorName"`
	Website            string `json:"website"`
	ContactPerson      string `json:"contactPerson"`
	ContactPhone       string `json:"contactPhone"`
	ContactEmail       string `json:"contactEmail" validate:"omitempty,email"`
}

// InstitutionUpdateRequest uses pointers so absent fields leave stored values untouched.
type InstitutionUpdateRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=2,max=100"`
	BusinessNumber     *string `json:"businessNumber"`
	RegistrationNumber *string `json:"registrationNumber"`
	Address            *string `json:"address"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email" validate:"omitempty,email"`
	DirectorName       *string `json:"directorName"`
	Website            *string `json:"website"`
	ContactPerson      *string `json:"contactPerson"`
	ContactPhone       *string `json:"contactPhone"`
	ContactEmail       *string `json:"contactEmail" validate:"omitempty,email"`
	IsActive           *bool   `json:"isActive"`
}

type InstitutionListItem struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	BusinessNumber string             `json:"businessNumber,omitempty"`
	Address        string             `json:"address,omitempty"`
	Phone          string             `json:"phone,omitempty"`
	DirectorName   string             `json:"directorName,omitempty"`
	AdminCount     int64              `json:"adminCount"`
	UserCount      int64              `json:"userCount"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type InstitutionDetail struct {
	Institution
	AdminCount int64 `json:"adminCount"`
	UserCount  int64 `json:"userCount"`
}
