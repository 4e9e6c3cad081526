package repository

import (
	"context"
	"errors"

	"github.com/khanghh/cas-portal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	WithTx(tx *gorm.DB) PreferenceRepository
	First(ctx context.Context, namespace string) (*model.Preference, error)
	Upsert(ctx context.Context, pref *model.Preference) error
	Delete(ctx context.Context, namespace string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// First returns nil without error when no row exists for namespace.
func (r *preferenceRepository) First(ctx context.Context, namespace string) (*model.Preference, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).Where("namespace = ?", namespace).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *model.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(pref).Error
}

func (r *preferenceRepository) Delete(ctx context.Context, namespace string) error {
	return r.db.WithContext(ctx).Where("namespace = ?", namespace).Delete(&model.Preference{}).Error
}

func (r *preferenceRepository) WithTx(tx *gorm.DB) PreferenceRepository {
	return NewPreferenceRepository(tx)
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db}
}
