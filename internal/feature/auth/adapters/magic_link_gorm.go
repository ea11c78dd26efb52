package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"riskwizard_backend/internal/feature/auth/domain/entity"
	"riskwizard_backend/internal/feature/auth/usecase"
)

// magicLinkGorm はMagicLinkRepositoryインターフェースのGORM実装です。
type magicLinkGorm struct {
	db *gorm.DB
}

var _ usecase.MagicLinkRepository = (*magicLinkGorm)(nil)

// NewMagicLinkGorm creates a new instance of magicLinkGorm.
func NewMagicLinkGorm(db *gorm.DB) *magicLinkGorm {
	return &magicLinkGorm{db: db}
}

// Create persists a freshly issued token.
func (r *magicLinkGorm) Create(ctx context.Context, token *entity.MagicLinkToken) error {
	return r.db.WithContext(ctx).Create(MagicLinkModelFromEntity(token)).Error
}

// FindByToken retrieves a token by its value.
func (r *magicLinkGorm) FindByToken(ctx context.Context, token string) (*entity.MagicLinkToken, error) {
	var model MagicLinkModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMagicLinkNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// MarkUsed flips used from false to true. It never reverts a used token.
func (r *magicLinkGorm) MarkUsed(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&MagicLinkModel{}).
		Where("token = ? AND used = ?", token, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	if _, err := r.FindByToken(ctx, token); err != nil {
		return err
	}
	return usecase.ErrMagicLinkAlreadyUsed
}

// Consume は条件付きUPDATE一文で検証と使用済み化を行います。
// 同じトークンに対する同時リクエストのうち、成功するのは高々1件です。
func (r *magicLinkGorm) Consume(ctx context.Context, token string, issuedAfter time.Time) (*entity.MagicLinkToken, error) {
	var model MagicLinkModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MagicLinkModel{}).
			Where("token = ? AND used = ? AND created_at > ?", token, false, issuedAfter.UTC()).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("token = ?", token).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrInvalidToken
			}
			return err
		}
		if result.RowsAffected == 0 {
			// 存在するが期限切れまたは使用済み
			return usecase.ErrExpiredToken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteExpired removes tokens issued before the cutoff, used or not.
func (r *magicLinkGorm) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before.UTC()).
		Delete(&MagicLinkModel{})
	return result.RowsAffected, result.Error
}
