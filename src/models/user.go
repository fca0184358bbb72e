package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a welfare-center member. Always tenant-scoped. Accounts created by an
// admin carry a login code; self-signed-up accounts carry username+password.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstitutionID        primitive.ObjectID `bson:"institutionId" json:"institutionId"`
	Username             string             `bson:"username,omitempty" json:"username,omitempty"`
	Password             string             `bson:"password,omitempty" json:"-"`
	LoginCode            string             `bson:"loginCode,omitempty" json:"-"`
	Name                 string             `bson:"name" json:"name"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address              string             `bson:"address,omitempty" json:"address,omitempty"`
	BirthDate            string             `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Severity             string             `bson:"severity,omitempty" json:"severity,omitempty"`
	GuardianName         string             `bson:"guardianName,omitempty" json:"guardianName,omitempty"`
	GuardianRelationship string             `bson:"guardianRelationship,omitempty" json:"guardianRelationship,omitempty"`
	GuardianPhone        string             `bson:"guardianPhone,omitempty" json:"guardianPhone,omitempty"`
	GuardianEmail        string             `bson:"guardianEmail,omitempty" json:"guardianEmail,omitempty"`
	GuardianAddress      string             `bson:"guardianAddress,omitempty" json:"guardianAddress,omitempty"`
	EmergencyContacts    []primitive.M      `bson:"emergencyContacts,omitempty" json:"emergencyContacts,omitempty"`
	CareNotes            string             `bson:"careNotes,omitempty" json:"careNotes,omitempty"`
	IsActive             bool               `bson:"isActive" json:"isActive"`
	LastLogin            *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UserRegisterRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=50"`
	LoginCode string   `json:"loginCode" validate:"required,min=4,max=20"`
	Phone     string   `json:"phone"`
	BirthDate string   `json:"birthDate"`
	GroupIDs  []string `json:"groupIds"`
}

type UserSignupRequest struct {
	InstitutionID string `json:"institutionId" validate:"required"`
	Username      string `json:"username" validate:"required,min=4,max=30"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required,min=1,max=50"`
	Phone         string `json:"phone"`
	BirthDate     string `json:"birthDate"`
}

// UserUpdateRequest applies partial-field semantics: nil pointers are ignored.
type UserUpdateRequest struct {
	Name                 *string        `json:"name" validate:"omitempty,min=1,max=50"`
	Phone                *string        `json:"phone"`
	Address              *string        `json:"address"`
	BirthDate            *string        `json:"birthDate"`
	Severity             *string        `json:"severity"`
	GuardianName         *string        `json:"guardianName"`
	GuardianRelationship *string        `json:"guardianRelationship"`
	GuardianPhone        *string        `json:"guardianPhone"`
	GuardianEmail        *string        `json:"guardianEmail" validate:"omitempty,email"`
	GuardianAddress      *string        `json:"guardianAddress"`
	EmergencyContacts    *[]primitive.M `json:"emergencyContacts"`
	CareNotes            *string        `json:"careNotes"`
}

type UserProfileResponse struct {
	User
	InstitutionName string `json:"institutionName"`
}

type UserListItem struct {
	ID              primitive.ObjectID   `json:"id"`
	Username        string               `json:"username,omitempty"`
	Name            string               `json:"name"`
	Phone           string               `json:"phone,omitempty"`
	BirthDate       string               `json:"birthDate,omitempty"`
	Severity        string               `json:"severity,omitempty"`
	GuardianName    string               `json:"guardianName,omitempty"`
	GuardianPhone   string               `json:"guardianPhone,omitempty"`
	IsActive        bool                 `json:"isActive"`
	LastLogin       *time.Time           `json:"lastLogin,omitempty"`
	InstitutionID   primitive.ObjectID   `json:"institutionId"`
	GroupIDs        []primitive.ObjectID `json:"groupIds"`
	CreatedAt       time.Time            `json:"createdAt"`
}
