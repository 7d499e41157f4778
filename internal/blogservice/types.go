package blogservice

import (
	"database/sql"
	"time"

	"github.com/jletan/inkpost/internal/userservice"
)

// DefaultBlogImage is substituted when a blog is created with a blank img.
const DefaultBlogImage = "https://via.placeholder.com/800x400?text=No+Image"

// Blog is a single post. The owning user is populated on reads for display;
// user and date are set at creation and never change afterwards.
type Blog struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Desc      string           `json:"desc"`
	Img       string           `json:"img"`
	User      userservice.User `json:"user"`
	CreatedAt time.Time        `json:"date"`
}

// UserBlogs is a user document with its authored blogs populated. The blog
// list is computed from blogs.user_id rather than stored on the user, so the
// two can never drift apart.
type UserBlogs struct {
	userservice.User
	Blogs []Blog `json:"blogs"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
