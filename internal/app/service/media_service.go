package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/internal/storage"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

// ObjectUploader is the object store behind the media service (S3 in production).
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

type UploadInput struct {
	UploaderID  uint
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MediaService interface {
	MediaResolver
	Upload(ctx context.Context, in UploadInput) (*model.Attachment, error)
}

type mediaService struct {
	attachmentRepo repository.AttachmentRepository
	uploader       ObjectUploader
	cfg            config.MediaConfig
}

func NewMediaService(attachmentRepo repository.AttachmentRepository, uploader ObjectUploader, cfg config.MediaConfig) MediaService {
	return &mediaService{
		attachmentRepo: attachmentRepo,
		uploader:       uploader,
		cfg:            cfg,
	}
}

// Upload stores an image and records it. Only the pixel header is decoded.
func (s *mediaService) Upload(ctx context.Context, in UploadInput) (*model.Attachment, error) {
	logger.Info("Uploading design image", map[string]interface{}{
		"uploader_id":  in.UploaderID,
		"filename":     in.Filename,
		"content_type": in.ContentType,
		"size":         in.Size,
	})

	if err := storage.ValidateContentType(in.ContentType, s.cfg.AllowedContentTypes); err != nil {
		logger.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": in.ContentType,
		})
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, in.ContentType)
	}
	if err := storage.ValidateFileSize(in.Size, s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileTooLarge, err)
	}

	// the declared size can lie; never read more than the limit allows
	data, err := io.ReadAll(io.LimitReader(in.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logger.Warn("Upload is not a decodable image", map[string]interface{}{
			"filename": in.Filename,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: not a decodable image", ErrUnsupportedMedia)
	}

	if s.uploader == nil {
		return nil, ErrMediaUnavailable
	}

	key := storage.ObjectKey(s.cfg.Folder, in.Filename)
	url, err := s.uploader.Upload(ctx, key, in.ContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMediaUnavailable, err)
	}

	attachment := &model.Attachment{
		UploaderID:  in.UploaderID,
		StorageKey:  key,
		URL:         url,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		SizeBytes:   int64(len(data)),
		Width:       imgCfg.Width,
		Height:      imgCfg.Height,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to remove orphaned object", delErr, map[string]interface{}{
				"key": key,
			})
		}
		return nil, err
	}

	logger.Info("Design image uploaded", map[string]interface{}{
		"attachment_id": attachment.ID,
		"format":        format,
		"width":         attachment.Width,
		"height":        attachment.Height,
	})
	return attachment, nil
}

func (s *mediaService) Resolve(ctx context.Context, id uint) (*model.Attachment, error) {
	attachment, err := s.attachmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrMediaUnavailable, err)
	}
	return attachment, nil
}
