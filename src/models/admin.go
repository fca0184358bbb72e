package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin account statuses. REJECTED is terminal.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusSuspended = "SUSPENDED"
)

// adminStatusTransitions is the full set of transitions the status-change
// endpoint accepts. Approval of a PENDING admin goes through the approve
// endpoint, never through here.
var adminStatusTransitions = map[string][]string{
	StatusApproved:  {StatusSuspended},
	StatusSuspended: {StatusApproved},
}

// CanTransitionAdminStatus reports whether the status-change operation may move
// an admin from one status to another.
func CanTransitionAdminStatus(from, to string) bool {
	for _, allowed := range adminStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SystemAdmin is a platform operator. It is never bound to an institution.
type SystemAdmin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	LastLogin *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Admin is an institution-bound staff account. New registrations start PENDING
// and cannot authenticate until a system admin approves them.
type Admin struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID   primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	Name            string              `bson:"name" json:"name"`
	Email           string              `bson:"email" json:"email"`
	Password        string              `bson:"password" json:"-"`
	Phone           string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Role            string              `bson:"role" json:"role"` // ADMIN or STAFF
	Status          string              `bson:"status" json:"status"`
	ApprovedBy      *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectionReason string              `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	LastLogin       *time.Time          `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type AdminRegisterRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Phone         string `json:"phone"`
	Role          string `json:"role" validate:"required,oneof=ADMIN STAFF"`
	InstitutionID string `json:"institutionId" validate:"required"`
}

type AdminApprovalRequest struct {
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason"`
}

type AdminStatusChangeRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED SUSPENDED"`
	Reason string `json:"reason"`
}

type AdminListItem struct {
	ID              primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone,omitempty"`
	Role            string             `json:"role"`
	Status          string             `json:"status"`
	InstitutionID   primitive.ObjectID `json:"institutionId"`
	InstitutionName string             `json:"institutionName"`
	CreatedAt       time.Time          `json:"createdAt"`
}
