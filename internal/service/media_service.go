package service

import (
	"context"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"

	"SereneCMSAPI/internal/adapter"
	"SereneCMSAPI/internal/authz"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"
)

type MediaService struct {
	storage *adapter.StorageAdapter
	prefix  string
}

func NewMediaService(storage *adapter.StorageAdapter, prefix string) *MediaService {
	if prefix == "" {
		prefix = "media"
	}
	return &MediaService{
		storage: storage,
		prefix:  prefix,
	}
}

// Upload stores an image for use in content bodies and returns its public URL.
// Only image types are accepted; the type is sniffed from the file contents,
// not the upload headers.
func (s *MediaService) Upload(ctx context.Context, actor model.UserDTO, header *multipart.FileHeader) (*model.MediaUploadResponse, error) {
	if !authz.IsStaff(actor.Role) {
		return nil, helper.NewForbiddenError("Staff access required")
	}

	file, err := header.Open()
	if err != nil {
		slog.Error("Failed to open uploaded file", "error", err)
		return nil, helper.NewInternalServerError("")
	}
	defer file.Close()

	contentType, err := helper.DetectFileContentType(file)
	if err != nil {
		slog.Warn("Failed to detect file content type", "error", err)
		return nil, helper.NewBadRequestError("file is invalid")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, helper.NewBadRequestError("Only image uploads are allowed")
	}

	key := path.Join(s.prefix, helper.GenerateUniqueFileName(header.Filename))

	if err := s.storage.StoreFromReader(ctx, file, contentType, key); err != nil {
		slog.Error("Failed to upload file to storage", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return &model.MediaUploadResponse{
		URL: s.storage.PublicURL(key),
		Key: key,
	}, nil
}
