package api

import (
	"errors"
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// @Summary		Issue a bearer token
// @Description	Exchanges HTTP basic credentials for a stateful authentication token valid for 24 hours
// @Tags			tokens
// @Produce		json
// @Success		201	{object}	SwaggerTokenResponse
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Failure		500	{object}	SwaggerServerErrorResponse
// @Router			/tokens/authentication [post]
func (app *application) createBearerTokenHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("createBearerToken.handler.tracer").Start(r.Context(), "createBearerToken.handler.span")
	defer span.End()

	ok, nUser := app.BasicAuth(w, r)
	if !ok {
		span.SetStatus(codes.Error, otelAuthFailureErr)
		return
	}
	nBToken, err := app.models.Tokens.New(ctx, tokenTTL, nUser.ID, data.AuthenticationScope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	err = app.writeJson(w, http.StatusCreated, envelope{"result": nBToken}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// BasicAuth checks the email and password of the Authorization header. It writes
// the error response itself and reports false when the credentials don't match.
func (app *application) BasicAuth(w http.ResponseWriter, r *http.Request) (bool, *data.User) {
	email, pass, ok := r.BasicAuth()
	if !ok {
		app.invalidAuthenticationCredResponse(w, r)
		return false, nil
	}

	nValidator := data.NewValidator()
	data.ValidateEmail(nValidator, email)
	data.ValidatePasswordPlaintext(nValidator, pass)
	if !nValidator.Valid() {
		app.invalidAuthenticationCredResponse(w, r)
		return false, nil
	}

	nUser, err := app.models.Users.GetByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			app.invalidAuthenticationCredResponse(w, r)
			return false, nil
		default:
			app.serverErrorResponse(w, r, err)
			return false, nil
		}
	}

	ok, err = nUser.Password.Matches(pass)
	if !ok && err != nil {
		app.serverErrorResponse(w, r, err)
		return false, nil
	}
	if !ok && err == nil {
		app.invalidAuthenticationCredResponse(w, r)
		return false, nil
	}

	return true, nUser
}
