package api

import (
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// @Summary		List actors
// @Tags			actors
// @Produce		json
// @Param			name	query		string	false	"case-insensitive first or last name substring"
// @Success		200		{array}		data.Actor
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Security		BearerAuth
// @Router			/actors [get]
func (app *application) listActorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("listActor.handler.tracer").Start(r.Context(), "listActor.handler.span")
	defer span.End()

	actors, err := app.models.Actors.List(ctx, app.readString(r.URL.Query(), "name", ""))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	err = app.writeJson(w, http.StatusOK, actors, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Create an actor
// @Tags			actors
// @Accept			json
// @Produce		json
// @Param			actor	body		SwaggerCreateActorInput	true	"actor to create"
// @Success		201		{object}	data.Actor
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		403		{object}	SwaggerNotPermitted
// @Security		BearerAuth
// @Router			/actors [post]
func (app *application) createActorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("createActor.handler.tracer").Start(r.Context(), "createActor.handler.span")
	defer span.End()

	var input struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	err := app.readJson(w, r, &input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}

	actor := &data.Actor{FirstName: input.FirstName, LastName: input.LastName}
	nValidator := data.NewValidator()
	actor.Validator(nValidator)
	if !nValidator.Valid() {
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	err = app.models.Actors.Insert(ctx, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	err = app.writeJson(w, http.StatusCreated, actor, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
