package group

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("group not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetBySlug(slug string) (*Group, error) {
	var g Group
	if err := s.db.Where("slug = ?", slug).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) List() ([]Group, error) {
	var groups []Group
	if err := s.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
