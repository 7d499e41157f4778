package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// account service
	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/signup", app.signupUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.loginUserHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs/add", app.addBlogHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/user/:id", app.getBlogsByUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/view/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/update/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.deleteBlogHandler)

	// image relay
	router.HandlerFunc(http.MethodGet, "/images/proxy", app.imageProxyHandler)

	return app.recoverPanic(app.enableCORS(app.rateLimit(app.logRequest(router))))
}
