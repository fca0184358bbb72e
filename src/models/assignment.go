package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionAssignment binds one question to exactly one of user or group.
// (questionId, userId) and (questionId, groupId) pairs are unique; the partial
// indexes in database.EnsureIndexes back the application-level checks.
type QuestionAssignment struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	QuestionID    primitive.ObjectID  `bson:"questionId" json:"questionId"`
	UserID        *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	GroupID       *primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"`
	Priority      int                 `bson:"priority" json:"priority"`
	AssignedBy    *primitive.ObjectID `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	AssignedAt    time.Time           `bson:"assignedAt" json:"assignedAt"`
}

type QuestionAssignmentRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	UserID     string `json:"userId"`
	GroupID    string `json:"groupId"`
	Priority   int    `json:"priority" validate:"gte=0"`
}

type AssignmentPriorityRequest struct {
	Priority int `json:"priority" validate:"gte=0"`
}

type QuestionAssignmentView struct {
	ID             primitive.ObjectID  `json:"id"`
	QuestionID     primitive.ObjectID  `json:"questionId"`
	QuestionTitle  string              `json:"questionTitle"`
	QuestionType   string              `json:"questionType"`
	UserID         *primitive.ObjectID `json:"userId,omitempty"`
	UserName       string              `json:"userName,omitempty"`
	GroupID        *primitive.ObjectID `json:"groupId,omitempty"`
	GroupName      string              `json:"groupName,omitempty"`
	Priority       int                 `json:"priority"`
	AssignedBy     *primitive.ObjectID `json:"assignedBy,omitempty"`
	AssignedByName string              `json:"assignedByName,omitempty"`
	AssignedAt     time.Time           `json:"assignedAt"`
	ResponseCount  int64               `json:"responseCount"`
}
