package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var movieSortSafeList = []string{"id", "title", "duration", "-id", "-title", "-duration"}

// @Summary		Create a movie
// @Description	Creates a movie linked to existing genres and actors. Admin only.
// @Tags			movies
// @Accept			json
// @Produce		json
// @Param			movie	body		SwaggerCreateMovieInput	true	"movie to create"
// @Success		201		{object}	data.Movie
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		403		{object}	SwaggerNotPermitted
// @Failure		500		{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies [post]
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("createMovie.handler.tracer").Start(r.Context(), "createMovie.handler.span")
	defer span.End()

	var input struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Duration    int32   `json:"duration"`
		Genres      []int64 `json:"genres"`
		Actors      []int64 `json:"actors"`
	}
	err := app.readJson(w, r, &input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}

	movie := &data.Movie{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
	}
	nValidator := data.NewValidator()
	movie.Validator(nValidator)
	nValidator.Check(input.Genres != nil, "genres", "must be provided")
	nValidator.Check(input.Actors != nil, "actors", "must be provided")
	validateIDs(nValidator, "genres", input.Genres)
	validateIDs(nValidator, "actors", input.Actors)
	if !nValidator.Valid() {
		span.RecordError(errors.New(createKeyValuePairs(nValidator.Errors)))
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	err = app.models.Movies.Insert(ctx, movie, input.Genres, input.Actors)
	if err != nil {
		span.RecordError(err)
		app.movieWriteErrorResponse(w, r, err, nValidator)
		return
	}

	created, err := app.models.Movies.Select(ctx, movie.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/movies/%d", movie.ID))
	err = app.writeJson(w, http.StatusCreated, created, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// @Summary		List movies
// @Description	Lists movies, optionally filtered by title substring, genre ids and actor ids
// @Tags			movies
// @Produce		json
// @Param			title	query		string	false	"case-insensitive title substring"
// @Param			genres	query		string	false	"comma separated genre ids"
// @Param			actors	query		string	false	"comma separated actor ids"
// @Param			sort	query		string	false	"id, title, duration or their - variants"
// @Success		200		{array}		data.MovieListItem
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		500		{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies [get]
func (app *application) listMovieHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("listMovie.handler.tracer").Start(r.Context(), "listMovie.handler.span")
	defer span.End()

	var input data.MovieFilters
	v := data.NewValidator()
	qs := r.URL.Query()
	input.Title = app.readString(qs, "title", "")
	input.GenreIDs = app.readIDList(qs, "genres", v)
	input.ActorIDs = app.readIDList(qs, "actors", v)
	input.Filters.Sort = app.readString(qs, "sort", "id")
	input.Filters.SortSafeList = movieSortSafeList
	input.Filters.ValidateSort(v)
	if !v.Valid() {
		span.RecordError(errors.New(createKeyValuePairs(v.Errors)))
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.List(ctx, &input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}

	items := make([]data.MovieListItem, 0, len(movies))
	for i := range movies {
		items = append(items, movies[i].ListItem())
	}
	err = app.writeJson(w, http.StatusOK, items, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Show a movie
// @Description	Returns a movie with its genres and actors
// @Tags			movies
// @Produce		json
// @Param			id	path		int	true	"movie id"
// @Success		200	{object}	data.Movie
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Failure		404	{object}	SwaggerNotFound
// @Failure		500	{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies/{id} [get]
func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("showMovie.handler.tracer").Start(r.Context(), "showMovie.handler.span")
	defer span.End()

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Select(ctx, id)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			span.SetStatus(codes.Ok, otelDBNotFoundInfo)
			app.notFoundResponse(w, r)
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJson(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Update a movie
// @Description	Partially updates a movie. Provided genre or actor lists replace the current ones. Admin only.
// @Tags			movies
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"movie id"
// @Param			movie	body		SwaggerUpdateMovieInput	true	"fields to change"
// @Success		200		{object}	data.Movie
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		403		{object}	SwaggerNotPermitted
// @Failure		404		{object}	SwaggerNotFound
// @Failure		500		{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies/{id} [patch]
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("updateMovie.handler.tracer").Start(r.Context(), "updateMovie.handler.span")
	defer span.End()

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Select(ctx, id)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// nil pointers and nil slices mean the field was not sent
	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Duration    *int32  `json:"duration"`
		Genres      []int64 `json:"genres"`
		Actors      []int64 `json:"actors"`
	}
	err = app.readJson(w, r, &input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}

	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.Duration != nil {
		movie.Duration = *input.Duration
	}

	nValidator := data.NewValidator()
	movie.Validator(nValidator)
	validateIDs(nValidator, "genres", input.Genres)
	validateIDs(nValidator, "actors", input.Actors)
	if !nValidator.Valid() {
		span.RecordError(errors.New(createKeyValuePairs(nValidator.Errors)))
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	err = app.models.Movies.Update(ctx, movie, input.Genres, input.Actors)
	if err != nil {
		span.RecordError(err)
		app.movieWriteErrorResponse(w, r, err, nValidator)
		return
	}

	updated, err := app.models.Movies.Select(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	err = app.writeJson(w, http.StatusOK, updated, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Delete a movie
// @Tags			movies
// @Produce		json
// @Param			id	path		int	true	"movie id"
// @Success		200	{object}	SwaggerDeleteResponse
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Failure		403	{object}	SwaggerNotPermitted
// @Failure		404	{object}	SwaggerNotFound
// @Failure		500	{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies/{id} [delete]
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("deleteMovie.handler.tracer").Start(r.Context(), "deleteMovie.handler.span")
	defer span.End()

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Movies.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			span.SetStatus(codes.Ok, otelDBNotFoundInfo)
			app.notFoundResponse(w, r)
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJson(w, http.StatusOK, envelope{"result": "movie deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// movieWriteErrorResponse maps the errors of Insert and Update to responses.
func (app *application) movieWriteErrorResponse(w http.ResponseWriter, r *http.Request, err error, v *data.Validator) {
	var refErr *data.ReferenceError
	switch {
	case errors.As(err, &refErr):
		v.AddError(refErr.Field, "references an unknown id")
		app.failedValidationResponse(w, r, v.Errors)
	case errors.Is(err, data.ErrorRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func validateIDs(v *data.Validator, key string, ids []int64) {
	for _, id := range ids {
		if id < 1 {
			v.AddError(key, "must only contain positive ids")
			return
		}
	}
}
