package prefs

import (
	"context"

	"github.com/khanghh/cas-portal/internal/repository"
	"github.com/khanghh/cas-portal/model"
	"gorm.io/gorm"
)

// SQLStore keeps one row per namespace with both values as columns.
type SQLStore struct {
	repo      repository.PreferenceRepository
	namespace string
}

func (s *SQLStore) Load(ctx context.Context) (Record, error) {
	pref, err := s.repo.First(ctx, s.namespace)
	if err != nil || pref == nil {
		return Record{}, err
	}
	return recordOf(pref.RememberMe, pref.SavedEmail), nil
}

func (s *SQLStore) Save(ctx context.Context, identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	return s.repo.Upsert(ctx, &model.Preference{
		Namespace:  s.namespace,
		RememberMe: true,
		SavedEmail: identifier,
	})
}

func (s *SQLStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.namespace)
}

type SQLProvider struct {
	repo repository.PreferenceRepository
}

func (p *SQLProvider) Open(namespace string) Store {
	return &SQLStore{repo: p.repo, namespace: namespace}
}

func NewSQLProvider(db *gorm.DB) *SQLProvider {
	return &SQLProvider{repo: repository.NewPreferenceRepository(db)}
}
