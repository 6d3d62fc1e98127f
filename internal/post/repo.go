package post

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bornebyte/Network/internal/database"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one page of a feed, newest post first. Out-of-range page
// numbers clamp to the closest valid page instead of erroring.
type Page struct {
	Posts       []Post
	Number      int
	NumPages    int
	Total       int64
	HasNext     bool
	HasPrevious bool
}

func paginate(query *gorm.DB, page int) (Page, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page{}, err
	}

	numPages := int((total + PageSize - 1) / PageSize)
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	var posts []Post
	err := query.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&posts).Error
	if err != nil {
		return Page{}, err
	}

	return Page{
		Posts:       posts,
		Number:      page,
		NumPages:    numPages,
		Total:       total,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}, nil
}

// AllPosts pages through every post.
func AllPosts(page int) (Page, error) {
	return paginate(database.DB.Model(&Post{}), page)
}

// PostsByAuthor pages through one author's posts.
func PostsByAuthor(authorID string, page int) (Page, error) {
	return paginate(database.DB.Model(&Post{}).Where("author_id = ?", authorID), page)
}

// PostsByAuthors pages through the posts of a set of authors
// (the viewer's following feed).
func PostsByAuthors(authorIDs []string, page int) (Page, error) {
	if len(authorIDs) == 0 {
		return Page{Posts: []Post{}, Number: 1, NumPages: 1}, nil
	}
	return paginate(database.DB.Model(&Post{}).Where("author_id IN ?", authorIDs), page)
}

// SavedPosts pages through the posts the viewer has saved.
func SavedPosts(userID string, page int) (Page, error) {
	query := database.DB.Model(&Post{}).
		Joins("JOIN post_savers ON post_savers.post_id = posts.id").
		Where("post_savers.user_id = ?", userID)
	return paginate(query, page)
}

// ByID loads a single post. gorm.ErrRecordNotFound passes through.
func ByID(postID string) (Post, error) {
	var p Post
	err := database.DB.First(&p, "id = ?", postID).Error
	return p, err
}

// Exists reports whether a post id is present without loading the row.
func Exists(postID string) (bool, error) {
	var count int64
	err := database.DB.Table("posts").Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}

// AddLiker puts the user into the post's liker set. Idempotent.
func AddLiker(postID, userID string) error {
	l := Like{ID: uuid.New().String(), PostID: postID, UserID: userID}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&l).Error
}

// RemoveLiker takes the user out of the post's liker set. Removing an
// absent membership is a no-op.
func RemoveLiker(postID, userID string) error {
	return database.DB.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&Like{}).Error
}

// AddSaver puts the user into the post's saver set. Idempotent.
func AddSaver(postID, userID string) error {
	s := Save{ID: uuid.New().String(), PostID: postID, UserID: userID}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error
}

// RemoveSaver takes the user out of the post's saver set.
func RemoveSaver(postID, userID string) error {
	return database.DB.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&Save{}).Error
}

// serialize builds the response form of a post for a viewer, counting
// likes and checking the viewer's own like/save membership.
func serialize(p Post, viewerID string) Response {
	var likeCount int64
	database.DB.Model(&Like{}).Where("post_id = ?", p.ID).Count(&likeCount)

	var isLiked, isSaved bool
	if viewerID != "" {
		var count int64
		database.DB.Model(&Like{}).Where("post_id = ? AND user_id = ?", p.ID, viewerID).Count(&count)
		isLiked = count > 0
		count = 0
		database.DB.Model(&Save{}).Where("post_id = ? AND user_id = ?", p.ID, viewerID).Count(&count)
		isSaved = count > 0
	}

	return Response{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt,
		Author:       p.Author.Public(),
		ContentText:  p.ContentText,
		ImageURL:     p.ImageURL,
		CommentCount: p.CommentCount,
		LikeCount:    likeCount,
		IsLiked:      isLiked,
		IsSaved:      isSaved,
	}
}

func serializeAll(posts []Post, viewerID string) []Response {
	responses := make([]Response, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, serialize(p, viewerID))
	}
	return responses
}
