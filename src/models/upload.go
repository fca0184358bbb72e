package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File types detected from the original extension.
const (
	FileImage    = "IMAGE"
	FileAudio    = "AUDIO"
	FileVideo    = "VIDEO"
	FileDocument = "DOCUMENT"
	FileText     = "TEXT"
)

// Upload is a tenant- and user-scoped submission with optional attached files,
// an admin-read flag and at most one admin response.
type Upload struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InstitutionID     primitive.ObjectID  `bson:"institutionId" json:"institutionId"`
	UserID            primitive.ObjectID  `bson:"userId" json:"userId"`
	Title             string              `bson:"title,omitempty" json:"title,omitempty"`
	Content           string              `bson:"content,omitempty" json:"content,omitempty"`
	Files             []UploadFile        `bson:"files,omitempty" json:"files"`
	AdminRead         bool                `bson:"adminRead" json:"adminRead"`
	AdminResponse     string              `bson:"adminResponse,omitempty" json:"adminResponse,omitempty"`
	AdminResponseDate *time.Time          `bson:"adminResponseDate,omitempty" json:"adminResponseDate,omitempty"`
	AdminID           *primitive.ObjectID `bson:"adminId,omitempty" json:"adminId,omitempty"`
	NotifiedAt        *time.Time          `bson:"notifiedAt,omitempty" json:"notifiedAt,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// UploadFile is embedded in its Upload document; the file-serving endpoint
// resolves it by its own id.
type UploadFile struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FileType     string             `bson:"fileType" json:"fileType"`
	FileName     string             `bson:"fileName" json:"fileName"`
	OriginalName string             `bson:"originalName" json:"originalName"`
	FilePath     string             `bson:"filePath" json:"-"`
	FileSize     int64              `bson:"fileSize" json:"fileSize"`
	MimeType     string             `bson:"mimeType" json:"mimeType"`
	UploadOrder  int                `bson:"uploadOrder" json:"uploadOrder"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type AdminResponseRequest struct {
	Response string `json:"response" validate:"required,min=1"`
}

type UploadListItem struct {
	ID                primitive.ObjectID `json:"id"`
	Title             string             `json:"title,omitempty"`
	ContentPreview    string             `json:"contentPreview,omitempty"`
	UserID            primitive.ObjectID `json:"userId"`
	UserName          string             `json:"userName,omitempty"`
	AdminRead         bool               `json:"adminRead"`
	AdminResponseDate *time.Time         `json:"adminResponseDate,omitempty"`
	FileCount         int                `json:"fileCount"`
	FirstFileType     string             `json:"firstFileType,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}
