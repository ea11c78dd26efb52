package adapters

import (
	"time"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// MagicLinkModel is the GORM model for the magic_link_tokens table.
type MagicLinkModel struct {
	Token     string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"index;size:36;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM.
func (MagicLinkModel) TableName() string {
	return "magic_link_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *MagicLinkModel) ToEntity() *entity.MagicLinkToken {
	return &entity.MagicLinkToken{
		Token:     m.Token,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt.UTC(),
		Used:      m.Used,
	}
}

// MagicLinkModelFromEntity converts a domain entity to a GORM model.
// Timestamps are stored in UTC so that string-typed columns compare chronologically.
func MagicLinkModelFromEntity(t *entity.MagicLinkToken) *MagicLinkModel {
	return &MagicLinkModel{
		Token:     t.Token,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt.UTC(),
		Used:      t.Used,
	}
}
