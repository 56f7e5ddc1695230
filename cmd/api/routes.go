package api

import (
	"net/http"
	"strings"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/cybrarymin/cinema/internal/storage"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.otelHandler("/v1/healthcheck", app.healthcheckHandler))
	router.HandlerFunc(http.MethodGet, "/v1/swagger.json", app.swaggerDocHandler)

	// Movies Handlers
	router.HandlerFunc(http.MethodGet, "/v1/movies", app.otelHandler("/v1/movies", app.requirePermission(data.PermissionMoviesRead, app.listMovieHandler)))
	router.HandlerFunc(http.MethodPost, "/v1/movies", app.otelHandler("/v1/movies", app.requirePermission(data.PermissionMoviesWrite, app.createMovieHandler)))
	router.HandlerFunc(http.MethodGet, "/v1/movies/:id", app.otelHandler("/v1/movies/:id", app.requirePermission(data.PermissionMoviesRead, app.showMovieHandler)))
	router.HandlerFunc(http.MethodPatch, "/v1/movies/:id", app.otelHandler("/v1/movies/:id", app.requirePermission(data.PermissionMoviesWrite, app.updateMovieHandler)))
	router.HandlerFunc(http.MethodDelete, "/v1/movies/:id", app.otelHandler("/v1/movies/:id", app.requirePermission(data.PermissionMoviesWrite, app.deleteMovieHandler)))
	router.HandlerFunc(http.MethodPost, "/v1/movies/:id/upload-image", app.otelHandler("/v1/movies/:id/upload-image", app.requirePermission(data.PermissionMoviesWrite, app.uploadMovieImageHandler)))

	// Genre and Actor Handlers
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.otelHandler("/v1/genres", app.requirePermission(data.PermissionMoviesRead, app.listGenreHandler)))
	router.HandlerFunc(http.MethodPost, "/v1/genres", app.otelHandler("/v1/genres", app.requirePermission(data.PermissionMoviesWrite, app.createGenreHandler)))
	router.HandlerFunc(http.MethodGet, "/v1/actors", app.otelHandler("/v1/actors", app.requirePermission(data.PermissionMoviesRead, app.listActorHandler)))
	router.HandlerFunc(http.MethodPost, "/v1/actors", app.otelHandler("/v1/actors", app.requirePermission(data.PermissionMoviesWrite, app.createActorHandler)))

	// User Handlers
	router.HandlerFunc(http.MethodPost, "/v1/users", app.otelHandler("/v1/users", app.registerUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users", app.otelHandler("/v1/users", app.requirePermission(data.PermissionUsersAdmin, app.ListUserHandler)))
	router.HandlerFunc(http.MethodGet, "/v1/users/me", app.otelHandler("/v1/users/me", app.requireAuthenticatedUser(app.showCurrentUserHandler)))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:id", app.otelHandler("/v1/users/:id", app.requirePermission(data.PermissionUsersAdmin, app.DeleteUserHandler)))

	// authentication token Handlers
	// both token handlers run basic authentication within themselves
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", app.otelHandler("/v1/tokens/authentication", app.createBearerTokenHandler))
	router.HandlerFunc(http.MethodPost, "/v1/tokens/jwt", app.otelHandler("/v1/tokens/jwt", app.createJWTTokenHandler))

	// application metrics Handlers
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	// uploaded images are only served by the api itself when they live on local disk
	if local, ok := app.images.(*storage.LocalStore); ok && strings.HasPrefix(local.BaseURL, "/") {
		router.ServeFiles(local.BaseURL+"/*filepath", http.Dir(local.Root))
	}

	return app.PanicRecovery(app.enableCORS(app.RateLimit(app.authenticate(router))))
}
