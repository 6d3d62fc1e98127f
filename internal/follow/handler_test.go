package follow

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bornebyte/Network/internal/database"
	"github.com/bornebyte/Network/internal/user"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &Follower{}, &Member{}))

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })
}

func createTestUser(t *testing.T, username string) user.User {
	u := user.User{ID: uuid.New().String(), Username: username}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func testRouter(viewerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", viewerID)
		c.Next()
	})
	r.PUT("/api/users/:username/follow", FollowUser)
	r.PUT("/api/users/:username/unfollow", UnfollowUser)
	return r
}

func TestFollowUserCreatesRecordLazily(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	target := createTestUser(t, "bob")

	r := testRouter(viewer.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/bob/follow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	rec, err := RecordFor(target.ID)
	require.NoError(t, err)

	following, err := IsFollowing(viewer.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, target.ID, rec.UserID)
}

func TestFollowUserIdempotent(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	target := createTestUser(t, "bob")

	r := testRouter(viewer.ID)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/users/bob/follow", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	count, err := FollowerCount(target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowUnknownUser(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")

	r := testRouter(viewer.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/ghost/follow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestUnfollowNeverFollowedUser(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	createTestUser(t, "bob")

	r := testRouter(viewer.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/bob/unfollow", nil)
	r.ServeHTTP(w, req)

	// No Follower record exists yet for bob.
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Follower relationship not found")
}

func TestUnfollowRemovesMembership(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	target := createTestUser(t, "bob")

	rec, err := GetOrCreateRecord(target.ID)
	require.NoError(t, err)
	require.NoError(t, AddMember(rec.ID, viewer.ID))

	r := testRouter(viewer.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/bob/unfollow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	following, err := IsFollowing(viewer.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollowNonMemberSucceeds(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	other := createTestUser(t, "carol")
	target := createTestUser(t, "bob")

	// carol follows bob, alice never did, but bob's record exists.
	rec, err := GetOrCreateRecord(target.ID)
	require.NoError(t, err)
	require.NoError(t, AddMember(rec.ID, other.ID))

	r := testRouter(viewer.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/bob/unfollow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	count, err := FollowerCount(target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
