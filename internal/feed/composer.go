package feed

import (
	"fmt"

	"github.com/Kreyvi/hw05-final/internal/post"
)

// PostStore is the read surface the composer needs from the post store.
type PostStore interface {
	ListAll() post.Sequence
	ListByGroup(groupID uint) post.Sequence
	ListByAuthor(authorID string) post.Sequence
	ListByAuthors(authorIDs []string) post.Sequence
}

// FollowGraph resolves who a viewer follows. It is only consulted for the
// following view, at query time: there is no materialized fan-out feed, so
// follow/unfollow take effect on the very next read.
type FollowGraph interface {
	FolloweesOf(followerID string) ([]string, error)
}

type ViewKind int

const (
	ViewGlobal ViewKind = iota
	ViewGroup
	ViewProfile
	ViewFollowing
)

func (k ViewKind) String() string {
	switch k {
	case ViewGlobal:
		return "global"
	case ViewGroup:
		return "group"
	case ViewProfile:
		return "profile"
	case ViewFollowing:
		return "following"
	}
	return "unknown"
}

// View selects one timeline. GroupID, AuthorID and ViewerID are each only
// meaningful for their own kind; slug and username resolution happens
// before a View is built.
type View struct {
	Kind     ViewKind
	GroupID  uint
	AuthorID string
	ViewerID string
}

type Composer struct {
	posts PostStore
	graph FollowGraph
}

func NewComposer(posts PostStore, graph FollowGraph) *Composer {
	return &Composer{posts: posts, graph: graph}
}

// Compose maps a view to its candidate sequence. It has no side effects
// and holds no state between calls.
func (c *Composer) Compose(v View) (post.Sequence, error) {
	switch v.Kind {
	case ViewGlobal:
		return c.posts.ListAll(), nil
	case ViewGroup:
		return c.posts.ListByGroup(v.GroupID), nil
	case ViewProfile:
		return c.posts.ListByAuthor(v.AuthorID), nil
	case ViewFollowing:
		followees, err := c.graph.FolloweesOf(v.ViewerID)
		if err != nil {
			return nil, err
		}
		// Following nobody is an empty timeline, not an error.
		if len(followees) == 0 {
			return Empty{}, nil
		}
		return c.posts.ListByAuthors(followees), nil
	}
	return nil, fmt.Errorf("unknown view kind %d", v.Kind)
}

// Empty is the zero-post sequence.
type Empty struct{}

func (Empty) Count() (int64, error) { return 0, nil }

func (Empty) Slice(offset, limit int) ([]post.Post, error) { return nil, nil }
