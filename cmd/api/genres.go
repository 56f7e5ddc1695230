package api

import (
	"errors"
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// @Summary		List genres
// @Tags			genres
// @Produce		json
// @Param			name	query		string	false	"case-insensitive name substring"
// @Success		200		{array}		data.Genre
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Security		BearerAuth
// @Router			/genres [get]
func (app *application) listGenreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("listGenre.handler.tracer").Start(r.Context(), "listGenre.handler.span")
	defer span.End()

	genres, err := app.models.Genres.List(ctx, app.readString(r.URL.Query(), "name", ""))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	err = app.writeJson(w, http.StatusOK, genres, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Create a genre
// @Tags			genres
// @Accept			json
// @Produce		json
// @Param			genre	body		SwaggerCreateGenreInput	true	"genre to create"
// @Success		201		{object}	data.Genre
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		403		{object}	SwaggerNotPermitted
// @Security		BearerAuth
// @Router			/genres [post]
func (app *application) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("createGenre.handler.tracer").Start(r.Context(), "createGenre.handler.span")
	defer span.End()

	var input struct {
		Name string `json:"name"`
	}
	err := app.readJson(w, r, &input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}

	genre := &data.Genre{Name: input.Name}
	nValidator := data.NewValidator()
	genre.Validator(nValidator)
	if !nValidator.Valid() {
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	err = app.models.Genres.Insert(ctx, genre)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorDuplicateGenre):
			nValidator.AddError("name", "a genre with this name already exists")
			app.failedValidationResponse(w, r, nValidator.Errors)
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJson(w, http.StatusCreated, genre, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
