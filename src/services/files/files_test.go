package files

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"welfare-center-api/src/models"
)

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, models.FileImage, DetectFileType("photo.JPG"))
	assert.Equal(t, models.FileImage, DetectFileType("scan.png"))
	assert.Equal(t, models.FileAudio, DetectFileType("memo.m4a"))
	assert.Equal(t, models.FileVideo, DetectFileType("clip.mp4"))
	assert.Equal(t, models.FileDocument, DetectFileType("report.pdf"))
	assert.Equal(t, models.FileText, DetectFileType("notes.txt"))
	assert.Equal(t, models.FileDocument, DetectFileType("archive.zip"))
	assert.Equal(t, models.FileDocument, DetectFileType("no-extension"))
}

func TestMaxUploadSize(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "")
	assert.Equal(t, int64(defaultMaxUploadSize), MaxUploadSize())

	t.Setenv("MAX_UPLOAD_SIZE", "1048576")
	assert.Equal(t, int64(1048576), MaxUploadSize())

	t.Setenv("MAX_UPLOAD_SIZE", "-5")
	assert.Equal(t, int64(defaultMaxUploadSize), MaxUploadSize())
}

func TestUploadDirDefault(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	assert.Equal(t, "./uploads", UploadDir())

	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	assert.Equal(t, "/srv/uploads", UploadDir())
}
