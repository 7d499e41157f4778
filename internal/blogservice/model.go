package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("blog not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserForeignKey = errors.New("user does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError reports whether err is a foreign key violation on the
// named constraint.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// insert writes a new blog row. Creating a post is a single atomic write:
// the owning user's blog list is derived from blogs.user_id, not stored.
func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	query := `
		INSERT INTO blogs (id, title, "desc", img, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	b.ID = uuid.NewString()

	err := m.db.QueryRowContext(ctx, query, b.ID, b.Title, b.Desc, b.Img, b.User.ID).Scan(&b.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogById joins the users table so the owner is populated for display.
func (m *BlogModel) getBlogById(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT b.id, b.title, b."desc", b.img, b.created_at, u.id, u.name, u.email, u.created_at
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Desc, &blog.Img, &blog.CreatedAt, &blog.User.ID, &blog.User.Name, &blog.User.Email, &blog.User.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b."desc", b.img, b.created_at, u.id, u.name, u.email, u.created_at
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Desc, &blog.Img, &blog.CreatedAt, &blog.User.ID, &blog.User.Name, &blog.User.Email, &blog.User.CreatedAt)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getUserWithBlogs loads the user row and computes its blog list by query.
func (m *BlogModel) getUserWithBlogs(ctx context.Context, userID string) (*UserBlogs, error) {
	userQuery := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1`

	var ub UserBlogs
	err := m.db.QueryRowContext(ctx, userQuery, userID).Scan(&ub.User.ID, &ub.User.Name, &ub.User.Email, &ub.User.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}

	blogQuery := `
		SELECT id, title, "desc", img, created_at
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, blogQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ub.Blogs = []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Desc, &blog.Img, &blog.CreatedAt)
		if err != nil {
			return nil, err
		}
		blog.User = ub.User
		ub.Blogs = append(ub.Blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ub, nil
}

// updateBlog changes title and desc only; img, user_id and created_at are
// untouched by the statement.
func (m *BlogModel) updateBlog(ctx context.Context, id, title, desc string) error {
	query := `
		UPDATE blogs
		SET title = $1, "desc" = $2
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, title, desc, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
