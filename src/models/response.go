package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionResponse rows are append-only: re-submitting the same assignment on
// the same day adds a row, it never overwrites. The read side reconciles
// same-day duplicates (latest wins) and reports the group size as a
// modification counter.
type QuestionResponse struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstitutionID primitive.ObjectID `bson:"institutionId" json:"institutionId"`
	AssignmentID  primitive.ObjectID `bson:"assignmentId" json:"assignmentId"`
	QuestionID    primitive.ObjectID `bson:"questionId" json:"questionId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	ResponseData  bson.M             `bson:"responseData,omitempty" json:"responseData,omitempty"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
}

type QuestionResponseRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	Answer       bson.M `json:"answer" validate:"required"`
}

// ResponseDetail is the admin reporting row. ModificationCount is the number of
// same-day submissions for the (date, question, user) group this row belongs to.
type ResponseDetail struct {
	ResponseID        primitive.ObjectID `json:"responseId"`
	AssignmentID      primitive.ObjectID `json:"assignmentId"`
	QuestionID        primitive.ObjectID `json:"questionId"`
	QuestionTitle     string             `json:"questionTitle"`
	QuestionType      string             `json:"questionType"`
	UserID            primitive.ObjectID `json:"userId"`
	UserName          string             `json:"userName"`
	ResponseData      bson.M             `json:"responseData,omitempty"`
	SubmittedAt       time.Time          `json:"submittedAt"`
	IsModified        bool               `json:"isModified"`
	ModificationCount int                `json:"modificationCount"`
}

type UserResponseSummary struct {
	UserID           primitive.ObjectID `json:"userId"`
	UserName         string             `json:"userName"`
	TotalResponses   int                `json:"totalResponses"`
	LatestResponseAt *time.Time         `json:"latestResponseAt,omitempty"`
	Responses        []ResponseDetail   `json:"responses"`
}

type AssignmentResponseSummary struct {
	AssignmentID   primitive.ObjectID `json:"assignmentId"`
	QuestionID     primitive.ObjectID `json:"questionId"`
	QuestionTitle  string             `json:"questionTitle"`
	QuestionType   string             `json:"questionType"`
	TotalResponses int                `json:"totalResponses"`
	Responses      []ResponseDetail   `json:"responses"`
}

// UserQuestion is the member-facing view of an assignment, with today's
// completion state folded in.
type UserQuestion struct {
	AssignmentID           primitive.ObjectID  `json:"assignmentId"`
	QuestionID             primitive.ObjectID  `json:"questionId"`
	Title                  string              `json:"title"`
	Content                string              `json:"content,omitempty"`
	QuestionType           string              `json:"questionType"`
	CategoryID             *primitive.ObjectID `json:"categoryId,omitempty"`
	CategoryName           string              `json:"categoryName,omitempty"`
	Options                bson.M              `json:"options,omitempty"`
	AllowOtherOption       bool                `json:"allowOtherOption"`
	OtherOptionLabel       string              `json:"otherOptionLabel,omitempty"`
	OtherOptionPlaceholder string              `json:"otherOptionPlaceholder,omitempty"`
	IsRequired             bool                `json:"isRequired"`
	Priority               int                 `json:"priority"`
	AssignmentSource       string              `json:"assignmentSource"` // USER or GROUP
	SourceID               *primitive.ObjectID `json:"sourceId,omitempty"`
	SourceName             string              `json:"sourceName,omitempty"`
	IsCompleted            bool                `json:"isCompleted"`
	ResponseID             *primitive.ObjectID `json:"responseId,omitempty"`
	ResponseAnswer         bson.M              `json:"responseAnswer,omitempty"`
	ResponseSubmittedAt    *time.Time          `json:"responseSubmittedAt,omitempty"`
	AssignedAt             time.Time           `json:"assignedAt"`
}
