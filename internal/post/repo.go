package post

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("post not found")
	ErrForbidden  = errors.New("post can only be edited by its author")
	ErrValidation = errors.New("text must not be empty")
)

// totalOrder is the single ordering every timeline uses: newest first,
// id as the tie-break for posts created in the same instant.
const totalOrder = "created_at DESC, id DESC"

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(authorID, text string, groupID *uint, imageURL string) (*Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrValidation
	}

	p := Post{
		CreatedAt: time.Now(),
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		ImageURL:  imageURL,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Get(id uint) (*Post, error) {
	var p Post
	err := s.db.Preload("Author").Preload("Group").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Edit carries the mutable post fields. Nil pointers leave the field
// untouched; ClearGroup detaches the post from its group.
type Edit struct {
	Text       *string
	GroupID    *uint
	ClearGroup bool
	ImageURL   *string
}

// Update applies an edit on behalf of editorID. A non-author editor gets
// the post back unchanged together with ErrForbidden. CreatedAt is never
// rewritten.
func (s *Store) Update(id uint, editorID string, edit Edit) (*Post, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != editorID {
		return p, ErrForbidden
	}

	if edit.Text != nil {
		if strings.TrimSpace(*edit.Text) == "" {
			return p, ErrValidation
		}
		p.Text = *edit.Text
	}
	if edit.ClearGroup {
		p.GroupID = nil
		p.Group = nil
	} else if edit.GroupID != nil {
		p.GroupID = edit.GroupID
		p.Group = nil
	}
	if edit.ImageURL != nil {
		p.ImageURL = *edit.ImageURL
	}

	err = s.db.Model(&Post{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"text":      p.Text,
			"group_id":  p.GroupID,
			"image_url": p.ImageURL,
		}).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// querySeq builds a fresh query per call, which is what makes the
// sequence restartable.
type querySeq struct {
	base func() *gorm.DB
}

func (q querySeq) Count() (int64, error) {
	var n int64
	err := q.base().Count(&n).Error
	return n, err
}

func (q querySeq) Slice(offset, limit int) ([]Post, error) {
	var posts []Post
	err := q.base().
		Preload("Author").Preload("Group").
		Order(totalOrder).
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *Store) ListAll() Sequence {
	return querySeq{base: func() *gorm.DB {
		return s.db.Model(&Post{})
	}}
}

func (s *Store) ListByGroup(groupID uint) Sequence {
	return querySeq{base: func() *gorm.DB {
		return s.db.Model(&Post{}).Where("group_id = ?", groupID)
	}}
}

func (s *Store) ListByAuthor(authorID string) Sequence {
	return querySeq{base: func() *gorm.DB {
		return s.db.Model(&Post{}).Where("author_id = ?", authorID)
	}}
}

func (s *Store) ListByAuthors(authorIDs []string) Sequence {
	return querySeq{base: func() *gorm.DB {
		return s.db.Model(&Post{}).Where("author_id IN ?", authorIDs)
	}}
}

func (s *Store) CountByAuthor(authorID string) (int64, error) {
	var n int64
	err := s.db.Model(&Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (s *Store) AddComment(postID uint, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrValidation
	}
	if _, err := s.Get(postID); err != nil {
		return nil, err
	}

	c := Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CommentsOf(postID uint) ([]Comment, error) {
	var comments []Comment
	err := s.db.Where("post_id = ?", postID).Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

func (s *Store) CommentCountOf(postID uint) (int64, error) {
	var n int64
	err := s.db.Model(&Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
