package post

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/follow"
	"github.com/bornebyte/Network/internal/user"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &Post{}, &Like{}, &Save{}, &Comment{},
		&follow.Follower{}, &follow.Member{},
	))

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })
}

func createTestUser(t *testing.T, username string) user.User {
	u := user.User{ID: uuid.New().String(), Username: username}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

// createTestPosts creates n posts with strictly increasing timestamps so
// newest-first ordering is deterministic.
func createTestPosts(t *testing.T, authorID string, n int) []Post {
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]Post, 0, n)
	for i := 0; i < n; i++ {
		p := Post{
			ID:          uuid.New().String(),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			AuthorID:    authorID,
			ContentText: fmt.Sprintf("post %d", i),
		}
		require.NoError(t, database.DB.Create(&p).Error)
		posts = append(posts, p)
	}
	return posts
}

func TestAllPostsPagination(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	posts := createTestPosts(t, author.ID, 15)

	pg, err := AllPosts(1)
	require.NoError(t, err)
	assert.Equal(t, 1, pg.Number)
	assert.Equal(t, 2, pg.NumPages)
	assert.Equal(t, int64(15), pg.Total)
	assert.Len(t, pg.Posts, 10)
	assert.True(t, pg.HasNext)
	assert.False(t, pg.HasPrevious)
	// Newest first.
	assert.Equal(t, posts[14].ID, pg.Posts[0].ID)

	pg, err = AllPosts(2)
	require.NoError(t, err)
	assert.Len(t, pg.Posts, 5)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrevious)
	assert.Equal(t, posts[0].ID, pg.Posts[4].ID)
}

func TestPaginationClampsOutOfRange(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	createTestPosts(t, author.ID, 15)

	// Past the end clamps to the last page.
	pg, err := AllPosts(11)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.Number)
	assert.Len(t, pg.Posts, 5)

	// Below one clamps to the first page.
	pg, err = AllPosts(0)
	require.NoError(t, err)
	assert.Equal(t, 1, pg.Number)
}

func TestPaginationEmptyFeed(t *testing.T) {
	setupTestDB(t)

	pg, err := AllPosts(3)
	require.NoError(t, err)
	assert.Equal(t, 1, pg.Number)
	assert.Equal(t, 1, pg.NumPages)
	assert.Empty(t, pg.Posts)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrevious)
}

func TestPostsByAuthorsEmptySet(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	createTestPosts(t, author.ID, 3)

	pg, err := PostsByAuthors(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, pg.Posts)
	assert.Equal(t, int64(0), pg.Total)
}

func TestImageOnlyPostAppearsInFeed(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")

	p := Post{
		ID:       uuid.New().String(),
		AuthorID: author.ID,
		ImageURL: "https://bucket.s3.eu-west-3.amazonaws.com/posts/post_x.png",
	}
	require.NoError(t, database.DB.Create(&p).Error)

	pg, err := AllPosts(1)
	require.NoError(t, err)
	require.Len(t, pg.Posts, 1)
	assert.Empty(t, pg.Posts[0].ContentText)
	assert.Equal(t, p.ImageURL, pg.Posts[0].ImageURL)
}

func TestAddLikerIdempotent(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	viewer := createTestUser(t, "bob")
	p := createTestPosts(t, author.ID, 1)[0]

	require.NoError(t, AddLiker(p.ID, viewer.ID))
	require.NoError(t, AddLiker(p.ID, viewer.ID))

	var count int64
	database.DB.Model(&Like{}).Where("post_id = ?", p.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, RemoveLiker(p.ID, viewer.ID))
	// Removing again stays a no-op.
	require.NoError(t, RemoveLiker(p.ID, viewer.ID))

	database.DB.Model(&Like{}).Where("post_id = ?", p.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSavedPosts(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	viewer := createTestUser(t, "bob")
	posts := createTestPosts(t, author.ID, 3)

	require.NoError(t, AddSaver(posts[0].ID, viewer.ID))
	require.NoError(t, AddSaver(posts[2].ID, viewer.ID))

	pg, err := SavedPosts(viewer.ID, 1)
	require.NoError(t, err)
	require.Len(t, pg.Posts, 2)
	assert.Equal(t, posts[2].ID, pg.Posts[0].ID)
	assert.Equal(t, posts[0].ID, pg.Posts[1].ID)

	// Another user's saved feed stays empty.
	pg, err = SavedPosts(author.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, pg.Posts)
}

func TestSerializeViewerFlags(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	viewer := createTestUser(t, "bob")
	other := createTestUser(t, "carol")
	p := createTestPosts(t, author.ID, 1)[0]

	require.NoError(t, AddLiker(p.ID, viewer.ID))
	require.NoError(t, AddLiker(p.ID, other.ID))
	require.NoError(t, AddSaver(p.ID, viewer.ID))

	var loaded Post
	require.NoError(t, database.DB.Preload("Author").First(&loaded, "id = ?", p.ID).Error)

	resp := serialize(loaded, viewer.ID)
	assert.Equal(t, int64(2), resp.LikeCount)
	assert.True(t, resp.IsLiked)
	assert.True(t, resp.IsSaved)
	assert.Equal(t, "alice", resp.Author.Username)

	anonymous := serialize(loaded, "")
	assert.Equal(t, int64(2), anonymous.LikeCount)
	assert.False(t, anonymous.IsLiked)
	assert.False(t, anonymous.IsSaved)
}
