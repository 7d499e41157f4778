package blogservice

import (
	"context"
	"database/sql"

	"github.com/jletan/inkpost/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Desc   string `json:"desc"`
	Img    string `json:"img"`
	UserID string `json:"user"`
}

// CreateBlog creates a new blog post owned by the requesting user. A blank
// img falls back to the placeholder. An unknown user surfaces as
// ErrUserForeignKey via the FK constraint rather than a separate lookup, so
// the existence check and the insert are a single atomic write.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateDesc(v, req.Desc)
	validateID(v, req.UserID, "user")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	img := req.Img
	if img == "" {
		img = DefaultBlogImage
	}

	blog := Blog{
		Title: req.Title,
		Desc:  req.Desc,
		Img:   img,
	}
	blog.User.ID = req.UserID

	if err := s.m.insert(ctx, &blog); err != nil {
		return nil, err
	}

	return s.m.getBlogById(ctx, blog.ID)
}

// GetBlogByID returns a blog post with its owner populated.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// GetBlogs returns all blog posts, newest first. The result may be empty.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

// GetBlogsByUserID returns the user with its blog list populated.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID string) (*UserBlogs, error) {
	v := common.NewValidator()
	validateID(v, userID, "user")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserWithBlogs(ctx, userID)
}

// UpdateBlog changes the title and desc of a post. Img, owner and date are
// immutable after creation.
func (s *BlogService) UpdateBlog(ctx context.Context, id, title, desc string) (*Blog, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	validateTitle(v, title)
	validateDesc(v, desc)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateBlog(ctx, id, title, desc); err != nil {
		return nil, err
	}

	return s.m.getBlogById(ctx, id)
}

// DeleteBlog removes a post. No back-reference cleanup is needed: the owner's
// blog list is computed by query, so the delete is a single row write.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteBlog(ctx, id)
}
