package post

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return NewStore(db), mock
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "author_id", "group_id", "text", "image_url"})
}

func authorRows(id, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "username", "avatar_url", "bio"}).
		AddRow(id, time.Now(), username, "", "")
}

func TestCreateRejectsEmptyText(t *testing.T) {
	store, mock := setupMockStore(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := store.Create("author-1", text, nil, "")
		assert.ErrorIs(t, err, ErrValidation)
	}

	// Nothing may have reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(postRows())

	_, err := store.Get(42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateByNonAuthorLeavesPostUnchanged(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(postRows().AddRow(1, time.Now(), "author-1", nil, "original text", ""))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(authorRows("author-1", "alice"))

	newText := "hijacked"
	p, err := store.Update(1, "intruder", Edit{Text: &newText})

	assert.ErrorIs(t, err, ErrForbidden)
	require.NotNil(t, p)
	assert.Equal(t, "original text", p.Text)
	// No UPDATE was expected, so any write would fail the mock.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsEmptyText(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(postRows().AddRow(1, time.Now(), "author-1", nil, "original text", ""))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(authorRows("author-1", "alice"))

	empty := "   "
	p, err := store.Update(1, "author-1", Edit{Text: &empty})

	assert.ErrorIs(t, err, ErrValidation)
	require.NotNil(t, p)
	assert.Equal(t, "original text", p.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllAppliesTotalOrder(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "posts" ORDER BY created_at DESC, id DESC`).
		WillReturnRows(postRows().
			AddRow(3, time.Now(), "author-1", nil, "newest", "").
			AddRow(2, time.Now().Add(-time.Hour), "author-1", nil, "older", ""))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(authorRows("author-1", "alice"))

	posts, err := store.ListAll().Slice(0, 10)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(3), posts[0].ID)
	assert.Equal(t, uint(2), posts[1].ID)
}

func TestSequenceCount(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := store.ListAll().Count()

	assert.NoError(t, err)
	assert.Equal(t, int64(25), count)
}

func TestSummaryTruncatesLongText(t *testing.T) {
	short := Post{Text: "short enough"}
	assert.Equal(t, "short enough", short.Summary())

	long := Post{Text: strings.Repeat("я", 150)}
	assert.Equal(t, strings.Repeat("я", 100)+"...", long.Summary())
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	store, mock := setupMockStore(t)

	_, err := store.AddComment(1, "author-1", "  ")

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
