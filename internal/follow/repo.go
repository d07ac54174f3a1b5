package follow

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Follow creates the (follower, author) edge. Self-follows and already
// existing edges are silent no-ops: the former never reaches the database,
// the latter is absorbed by ON CONFLICT DO NOTHING on the unique index.
func (s *Store) Follow(followerID, authorID string) error {
	if followerID == authorID {
		return nil
	}

	edge := Follow{FollowerID: followerID, AuthorID: authorID}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
		DoNothing: true,
	}).Create(&edge).Error
}

// Unfollow removes the edge. Deleting a non-existent edge is a no-op.
func (s *Store) Unfollow(followerID, authorID string) error {
	return s.db.
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&Follow{}).Error
}

func (s *Store) IsFollowing(followerID, authorID string) (bool, error) {
	var edge Follow
	err := s.db.
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) FolloweesOf(followerID string) ([]string, error) {
	var ids []string
	err := s.db.Model(&Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerCountOf is used for profile display only, never for timelines.
func (s *Store) FollowerCountOf(authorID string) (int64, error) {
	var n int64
	err := s.db.Model(&Follow{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}
