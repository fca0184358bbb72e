package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types. Options stay schema-free (bson.M); only the choice types get
// edge validation at create/update time.
const (
	QuestionSingleChoice   = "SINGLE_CHOICE"
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionText           = "TEXT"
	QuestionScale          = "SCALE"
	QuestionYesNo          = "YES_NO"
	QuestionDate           = "DATE"
	QuestionTime           = "TIME"
)

var questionTypes = map[string]bool{
	QuestionSingleChoice:   true,
	QuestionMultipleChoice: true,
	QuestionText:           true,
	QuestionScale:          true,
	QuestionYesNo:          true,
	QuestionDate:           true,
	QuestionTime:           true,
}

func IsValidQuestionType(t string) bool { return questionTypes[t] }

// IsChoiceType reports whether a question type requires an options.choices list.
func IsChoiceType(t string) bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

type Category struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	Name          string              `bson:"name" json:"name"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	ImagePath     string              `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	CreatedBy     *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
}

type Question struct {
	ID                     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID          primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	CategoryID             *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Title                  string              `bson:"title" json:"title"`
	Content                string              `bson:"content,omitempty" json:"content,omitempty"`
	QuestionType           string              `bson:"questionType" json:"questionType"`
	Options                bson.M              `bson:"options,omitempty" json:"options,omitempty"`
	AllowOtherOption       bool                `bson:"allowOtherOption" json:"allowOtherOption"`
	OtherOptionLabel       string              `bson:"otherOptionLabel,omitempty" json:"otherOptionLabel,omitempty"`
	OtherOptionPlaceholder string              `bson:"otherOptionPlaceholder,omitempty" json:"otherOptionPlaceholder,omitempty"`
	IsRequired             bool                `bson:"isRequired" json:"isRequired"`
	IsActive               bool                `bson:"isActive" json:"isActive"`
	CreatedBy              *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt              time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type QuestionRequest struct {
	Title                  string `json:"title" validate:"required,min=1,max=200"`
	Content                string `json:"content"`
	QuestionType           string `json:"questionType" validate:"required"`
	CategoryID             string `json:"categoryId"`
	Options                bson.M `json:"options"`
	AllowOtherOption       bool   `json:"allowOtherOption"`
	OtherOptionLabel       string `json:"otherOptionLabel"`
	OtherOptionPlaceholder string `json:"otherOptionPlaceholder"`
	IsRequired             bool   `json:"isRequired"`
}
