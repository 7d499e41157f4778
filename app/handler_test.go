package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jletan/inkpost/internal/blogservice"
)

func signupTestUser(t *testing.T, ts *testServer, name, email, password string) string {
	status, _, body := ts.post(t, "/api/users/signup", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusCreated, status)

	user, ok := body.Data["user"].(map[string]any)
	assert.True(t, ok)

	id, ok := user["id"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, id)

	return id
}

func TestSignupUserHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name: "valid request",
			payload: map[string]any{
				"name":     "Ann",
				"email":    "ann@x.com",
				"password": "pw123",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid email",
			payload: map[string]any{
				"name":     "Bob",
				"email":    "not-an-email",
				"password": "pw123",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate email",
			payload: map[string]any{
				"name":     "Another Ann",
				"email":    "ann@x.com",
				"password": "different",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			payload:    map[string]any{"username": "ann"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/users/signup", tc.payload)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantStatus, body.StatusCode)

			if tc.wantStatus == http.StatusCreated {
				assert.True(t, body.Success)

				user := body.Data["user"].(map[string]any)
				assert.NotEmpty(t, user["id"])
				assert.Equal(t, "Ann", user["name"])
				assert.Equal(t, "ann@x.com", user["email"])

				// credential material never leaves the server
				_, leaked := user["password"]
				assert.False(t, leaked)
			} else {
				assert.False(t, body.Success)
			}
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	userID := signupTestUser(t, ts, "Ann", "ann@x.com", "pw123")

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name:       "valid credentials",
			payload:    map[string]any{"email": "ann@x.com", "password": "pw123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unregistered email",
			payload:    map[string]any{"email": "nobody@x.com", "password": "pw123"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong password",
			payload:    map[string]any{"email": "ann@x.com", "password": "nope1"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/users/login", tc.payload)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantStatus == http.StatusOK {
				assert.True(t, body.Success)

				user := body.Data["user"].(map[string]any)
				assert.Equal(t, userID, user["id"])

				_, leaked := user["password"]
				assert.False(t, leaked)
			} else {
				assert.False(t, body.Success)
			}
		})
	}
}

func TestGetUsersHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	signupTestUser(t, ts, "Ann", "ann@x.com", "pw123")
	signupTestUser(t, ts, "Bob", "bob@x.com", "pw456")

	status, _, body := ts.get(t, "/api/users")
	assert.Equal(t, http.StatusOK, status)

	users, ok := body.Data["users"].([]any)
	assert.True(t, ok)
	assert.Len(t, users, 2)
}

// TestBlogLifecycle walks the whole flow: signup, create with a blank image,
// list by user, delete, and verify the post is gone everywhere.
func TestBlogLifecycle(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	userID := signupTestUser(t, ts, "Ann", "ann@x.com", "pw123")

	// create with blank img falls back to the placeholder
	status, _, body := ts.post(t, "/api/blogs/add", map[string]any{
		"title": "Hello",
		"desc":  "World",
		"img":   "",
		"user":  userID,
	})
	assert.Equal(t, http.StatusCreated, status)

	blog := body.Data["blog"].(map[string]any)
	blogID := blog["id"].(string)
	assert.NotEmpty(t, blogID)
	assert.Equal(t, "Hello", blog["title"])
	assert.Equal(t, "World", blog["desc"])
	assert.Equal(t, blogservice.DefaultBlogImage, blog["img"])

	owner := blog["user"].(map[string]any)
	assert.Equal(t, userID, owner["id"])

	date, err := time.Parse(time.RFC3339, blog["date"].(string))
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), date, 10*time.Second)

	// the user's blog list contains exactly the new post
	status, _, body = ts.get(t, "/api/blogs/user/"+userID)
	assert.Equal(t, http.StatusOK, status)

	user := body.Data["user"].(map[string]any)
	blogs := user["blogs"].([]any)
	assert.Len(t, blogs, 1)
	assert.Equal(t, blogID, blogs[0].(map[string]any)["id"])

	// reading the post back populates the owner
	status, _, body = ts.get(t, "/api/blogs/view/"+blogID)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, blogID, body.Data["blog"].(map[string]any)["id"])

	// delete, then everything 404s and the user's list is empty
	status, _, _ = ts.delete(t, "/api/blogs/"+blogID)
	assert.Equal(t, http.StatusOK, status)

	status, _, body = ts.get(t, "/api/blogs/user/"+userID)
	assert.Equal(t, http.StatusOK, status)
	user = body.Data["user"].(map[string]any)
	assert.Empty(t, user["blogs"])

	status, _, _ = ts.get(t, "/api/blogs/view/"+blogID)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.delete(t, "/api/blogs/"+blogID)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddBlogHandlerUnknownUser(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.post(t, "/api/blogs/add", map[string]any{
		"title": "Hello",
		"desc":  "World",
		"img":   "",
		"user":  "does-not-exist",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Equal(t, "unauthorized", body.Message)
}

func TestUpdateBlogHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	userID := signupTestUser(t, ts, "Ann", "ann@x.com", "pw123")

	status, _, body := ts.post(t, "/api/blogs/add", map[string]any{
		"title": "Hello",
		"desc":  "World",
		"img":   "https://example.com/cat.png",
		"user":  userID,
	})
	assert.Equal(t, http.StatusCreated, status)
	created := body.Data["blog"].(map[string]any)
	blogID := created["id"].(string)

	status, _, body = ts.put(t, "/api/blogs/update/"+blogID, map[string]any{
		"title": "New Title",
		"desc":  "New Desc",
	})
	assert.Equal(t, http.StatusOK, status)

	updated := body.Data["blog"].(map[string]any)
	assert.Equal(t, "New Title", updated["title"])
	assert.Equal(t, "New Desc", updated["desc"])

	// img, owner and date survive the update untouched
	assert.Equal(t, created["img"], updated["img"])
	assert.Equal(t, created["date"], updated["date"])
	assert.Equal(t, userID, updated["user"].(map[string]any)["id"])

	status, _, _ = ts.put(t, "/api/blogs/update/does-not-exist", map[string]any{
		"title": "New Title",
		"desc":  "New Desc",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetAllBlogsHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/blogs")
	assert.Equal(t, http.StatusOK, status)

	blogs, ok := body.Data["blogs"].([]any)
	assert.True(t, ok)
	assert.Empty(t, blogs)

	userID := signupTestUser(t, ts, "Ann", "ann@x.com", "pw123")

	for _, title := range []string{"First", "Second"} {
		status, _, _ := ts.post(t, "/api/blogs/add", map[string]any{
			"title": title,
			"desc":  "post",
			"img":   "",
			"user":  userID,
		})
		assert.Equal(t, http.StatusCreated, status)
	}

	status, _, body = ts.get(t, "/api/blogs")
	assert.Equal(t, http.StatusOK, status)

	blogs = body.Data["blogs"].([]any)
	assert.Len(t, blogs, 2)

	for _, b := range blogs {
		owner := b.(map[string]any)["user"].(map[string]any)
		assert.Equal(t, "Ann", owner["name"])
	}
}

func TestGetBlogsByUserHandlerNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/blogs/user/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
}
