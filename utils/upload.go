package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const attachmentDir = "public/attachments"

// SaveAttachment stores an uploaded file under a random name that keeps
// the original extension and returns its public relative path.
func SaveAttachment(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(attachmentDir, 0755); err != nil {
		return "", errors.New("error creating upload directory")
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(attachmentDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", errors.New("error saving attachment")
	}

	return "/attachments/" + filename, nil
}
