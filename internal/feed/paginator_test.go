package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kreyvi/hw05-final/internal/post"
)

// memSeq is an in-memory Sequence, already in timeline order.
type memSeq []post.Post

func (m memSeq) Count() (int64, error) { return int64(len(m)), nil }

func (m memSeq) Slice(offset, limit int) ([]post.Post, error) {
	if offset >= len(m) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m) {
		end = len(m)
	}
	return m[offset:end], nil
}

// makePosts builds n posts newest first: descending timestamps, ids as
// tie-break.
func makePosts(n int) memSeq {
	posts := make(memSeq, 0, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := n; i >= 1; i-- {
		posts = append(posts, post.Post{
			ID:        uint(i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			AuthorID:  "author-1",
			Text:      fmt.Sprintf("post %d", i),
		})
	}
	return posts
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"2", 2},
		{"10", 10},
	}

	for _, tt := range tests {
		t.Run("page="+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePage(tt.raw))
		})
	}
}

func TestPaginateEmptySequence(t *testing.T) {
	page, err := Paginate(memSeq{}, 10, 1)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []int{1}, page.Range)
}

func TestPaginateTwentyFivePosts(t *testing.T) {
	posts := makePosts(25)

	page, err := Paginate(posts, 10, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, page.Range)

	last, err := Paginate(posts, 10, 3)
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
	assert.Equal(t, 3, last.Number)
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	posts := makePosts(25)

	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{"below range clamps to first", 0, 1},
		{"negative clamps to first", -5, 1},
		{"above range clamps to last", 99, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(posts, 10, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page.Number)
			assert.GreaterOrEqual(t, page.Number, 1)
			assert.LessOrEqual(t, page.Number, page.TotalPages)
		})
	}
}

func TestPaginateConcatenationRestoresSequence(t *testing.T) {
	posts := makePosts(25)

	for _, pageSize := range []int{1, 3, 7, 10, 25, 40} {
		t.Run(fmt.Sprintf("pageSize=%d", pageSize), func(t *testing.T) {
			first, err := Paginate(posts, pageSize, 1)
			require.NoError(t, err)

			expectedPages := (len(posts) + pageSize - 1) / pageSize
			assert.Equal(t, expectedPages, first.TotalPages)

			var combined []post.Post
			for n := 1; n <= first.TotalPages; n++ {
				page, err := Paginate(posts, pageSize, n)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(page.Items), pageSize)
				if n < page.TotalPages {
					assert.Len(t, page.Items, pageSize)
				}
				combined = append(combined, page.Items...)
			}

			assert.Equal(t, []post.Post(posts), combined)
		})
	}
}
