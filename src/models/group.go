package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserGroup collects users for bulk question assignment. Name is unique per
// institution. Deactivated rather than deleted.
type UserGroup struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	Name          string              `bson:"name" json:"name"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	MemberCount   int64               `bson:"memberCount" json:"memberCount"`
	CreatedBy     *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// UserGroupMember joins a user to a group. Removal flips isActive; re-adding
// re-activates the same row, keeping the original join metadata.
type UserGroupMember struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID  `bson:"groupId" json:"groupId"`
	UserID   primitive.ObjectID  `bson:"userId" json:"userId"`
	IsActive bool                `bson:"isActive" json:"isActive"`
	AddedBy  *primitive.ObjectID `bson:"addedBy,omitempty" json:"addedBy,omitempty"`
	JoinedAt time.Time           `bson:"joinedAt" json:"joinedAt"`
}

type UserGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description"`
}

type UserGroupMemberRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1"`
}

type UserGroupMemberView struct {
	ID       primitive.ObjectID `json:"id"`
	GroupID  primitive.ObjectID `json:"groupId"`
	UserID   primitive.ObjectID `json:"userId"`
	Username string             `json:"username,omitempty"`
	UserName string             `json:"userName"`
	JoinedAt time.Time          `json:"joinedAt"`
	IsActive bool               `json:"isActive"`
}
