package repository

import (
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

type AttachmentRepository interface {
	Create(attachment *model.Attachment) error
	FindByID(id uint) (*model.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(attachment *model.Attachment) error {
	logger.Debug("Creating attachment in database", map[string]interface{}{
		"storage_key":  attachment.StorageKey,
		"content_type": attachment.ContentType,
		"size_bytes":   attachment.SizeBytes,
	})

	if err := r.db.Create(attachment).Error; err != nil {
		logger.Error("Failed to create attachment in database", err, map[string]interface{}{
			"storage_key": attachment.StorageKey,
		})
		return err
	}

	logger.Debug("Attachment created in database", map[string]interface{}{
		"attachment_id": attachment.ID,
	})
	return nil
}

func (r *attachmentRepository) FindByID(id uint) (*model.Attachment, error) {
	var attachment model.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		logger.Debug("Attachment lookup failed", map[string]interface{}{
			"attachment_id": id,
			"error":         err.Error(),
		})
		return nil, err
	}
	return &attachment, nil
}
