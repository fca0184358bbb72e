package files

import (
	"fmt"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
)

const defaultMaxUploadSize = 50 << 20 // 50 MiB

var typeByExt = map[string]string{
	".jpg": models.FileImage, ".jpeg": models.FileImage, ".png": models.FileImage,
	".gif": models.FileImage, ".webp": models.FileImage, ".bmp": models.FileImage,
	".mp3": models.FileAudio, ".wav": models.FileAudio, ".m4a": models.FileAudio,
	".ogg": models.FileAudio, ".aac": models.FileAudio,
	".mp4": models.FileVideo, ".mov": models.FileVideo, ".avi": models.FileVideo,
	".webm": models.FileVideo, ".mkv": models.FileVideo,
	".pdf": models.FileDocument, ".doc": models.FileDocument, ".docx": models.FileDocument,
	".xls": models.FileDocument, ".xlsx": models.FileDocument, ".hwp": models.FileDocument,
	".txt": models.FileText, ".md": models.FileText, ".csv": models.FileText,
}

// UploadDir is the configured storage root, defaulting to ./uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// MaxUploadSize is the per-file byte limit from MAX_UPLOAD_SIZE.
func MaxUploadSize() int64 {
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxUploadSize
}

// DetectFileType classifies a file by its original extension; anything
// unrecognized counts as a document.
func DetectFileType(fileName string) string {
	if t, ok := typeByExt[strings.ToLower(filepath.Ext(fileName))]; ok {
		return t
	}
	return models.FileDocument
}

// Save stores one multipart file under UPLOAD_DIR/<type>/<yyyy/mm/dd>/ with a
// collision-free generated name and returns its metadata row.
func Save(c *fiber.Ctx, header *multipart.FileHeader, order int) (*models.UploadFile, error) {
	if header.Size > MaxUploadSize() {
		return nil, apperrors.Invalid("VALIDATION_FAILED",
			"file %s exceeds the %d byte limit", header.Filename, MaxUploadSize())
	}

	fileType := DetectFileType(header.Filename)
	now := time.Now()
	dir := filepath.Join(UploadDir(), strings.ToLower(fileType), now.Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Internal("failed to prepare upload directory")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	storedName := fmt.Sprintf("%d_%s%s", now.UnixMilli(), uuid.NewString(), ext)
	fullPath := filepath.Join(dir, storedName)

	if err := c.SaveFile(header, fullPath); err != nil {
		return nil, apperrors.Internal("failed to store file")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(ext)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &models.UploadFile{
		ID:           primitive.NewObjectID(),
		FileType:     fileType,
		FileName:     storedName,
		OriginalName: header.Filename,
		FilePath:     fullPath,
		FileSize:     header.Size,
		MimeType:     mimeType,
		UploadOrder:  order,
		CreatedAt:    now,
	}, nil
}

// Remove deletes a stored file, tolerating an already-missing path.
func Remove(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return
	}
}
