package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadAvatar 处理头像上传：落盘到上传目录并更新档案中的头像地址。
func (a *API) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "avatar file is required")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	uploadDir := a.uploadDir
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	// 生成唯一文件名
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save file")
		return
	}

	urlPath := a.uploadURL
	if urlPath == "" {
		urlPath = "/static/uploads"
	}
	fileURL := fmt.Sprintf("%s/%s", strings.TrimRight(urlPath, "/"), newFilename)

	profile, err := a.profiles.SetAvatar(currentUserID(c), fileURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileToPayload(profile))
}
