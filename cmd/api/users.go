package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// @Summary		Register a user
// @Description	Creates a regular (non-admin) user and sends a welcome email
// @Tags			users
// @Accept			json
// @Produce		json
// @Param			user	body		SwaggerRegisterUserInput	true	"credentials"
// @Success		201		{object}	SwaggerUserResponse
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		500		{object}	SwaggerServerErrorResponse
// @Router			/users [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("registerUser.handler.tracer").Start(r.Context(), "registerUser.handler.span")
	defer span.End()

	nVal := data.NewValidator()

	var nInput struct {
		Password string `json:"password"`
		Email    string `json:"email"`
	}

	err := app.readJson(w, r, &nInput)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}

	// validate the plaintext before paying for the bcrypt hash
	data.ValidateEmail(nVal, nInput.Email)
	data.ValidatePasswordPlaintext(nVal, nInput.Password)
	if !nVal.Valid() {
		span.RecordError(errors.New(createKeyValuePairs(nVal.Errors)))
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nVal.Errors)
		return
	}

	nUser := data.User{
		Email:   nInput.Email,
		IsAdmin: false, // registration never grants admin rights
	}
	err = nUser.Password.Set(nInput.Password)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorPasswordTooLong):
			span.SetStatus(codes.Error, otelunprocessableErr)
			app.badRequestResponse(w, r, err)
			return
		default:
			span.SetStatus(codes.Error, "error on new password setup")
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.models.Users.Insert(ctx, &nUser)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		switch {
		case errors.Is(err, data.ErrorDuplicateEmail):
			nVal.AddError("email", "user with current email already exists")
			app.failedValidationResponse(w, r, nVal.Errors)
			return
		default:
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.BackgroundJob(func() {
		mailData := struct {
			ID    string
			Email string
		}{
			ID:    nUser.ID.String(),
			Email: nUser.Email,
		}
		// retrying email sending if it failed
		for i := 0; i < 3; i++ {
			err := app.mailer.Send(nUser.Email, "user_welcome.tmpl", mailData)
			if err == nil {
				return
			}
			app.log.Error().Err(err).Msg(fmt.Sprintf("failed to send email to user %v", nUser.Email))
			time.Sleep(500 * time.Millisecond)
		}
	}, "panic happened during sending welcome email to user")

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/users/%s", nUser.ID))
	err = app.writeJson(w, http.StatusCreated, envelope{"result": nUser}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// @Summary		List users
// @Description	Paginated list of users. Admin only.
// @Tags			users
// @Produce		json
// @Param			email		query		string	false	"email substring"
// @Param			page		query		int		false	"page number"
// @Param			page_size	query		int		false	"page size"
// @Param			sort		query		string	false	"id, email, created_at or their - variants"
// @Success		200			{object}	SwaggerUserListResponse
// @Failure		400			{object}	SwaggerFailedValidationResponse
// @Failure		401			{object}	SwaggerUnauthorizaed
// @Failure		403			{object}	SwaggerNotPermitted
// @Security		BearerAuth
// @Router			/users [get]
func (app *application) ListUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("listUser.handler.tracer").Start(r.Context(), "listUser.handler.span")
	defer span.End()
	nValidator := data.NewValidator()
	var input struct {
		Email string
		data.Filters
	}
	qs := r.URL.Query()
	input.Filters.Page = app.readInt(qs, "page", 1, nValidator)
	input.Filters.PageSize = app.readInt(qs, "page_size", 20, nValidator)
	input.Filters.Sort = app.readString(qs, "sort", "created_at")
	input.Filters.SortSafeList = []string{"id", "created_at", "email", "-id", "-created_at", "-email"}
	input.Email = app.readString(qs, "email", "")
	input.Filters.ValidateFilters(nValidator)
	if !nValidator.Valid() {
		span.RecordError(errors.New(createKeyValuePairs(nValidator.Errors)))
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	userList := data.Users{}
	count, err := app.models.Users.List(ctx, &userList, input.Email, &input.Filters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.serverErrorResponse(w, r, err)
		return
	}
	pMeta := input.Filters.PaginationMetaData(ctx, count)
	err = app.writeJson(w, http.StatusOK, envelope{"metadata": pMeta, "users": userList}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// @Summary		Current user
// @Tags			users
// @Produce		json
// @Success		200	{object}	SwaggerUserResponse
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Security		BearerAuth
// @Router			/users/me [get]
func (app *application) showCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.GetUserContext(r)
	err := app.writeJson(w, http.StatusOK, envelope{"result": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// @Summary		Delete a user
// @Description	Removes a user and their tokens. Admin only.
// @Tags			users
// @Produce		json
// @Param			id	path		string	true	"user id"
// @Success		200	{object}	SwaggerDeleteResponse
// @Failure		400	{object}	SwaggerBadRequestResponse
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Failure		403	{object}	SwaggerNotPermitted
// @Failure		404	{object}	SwaggerNotFound
// @Security		BearerAuth
// @Router			/users/{id} [delete]
func (app *application) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("deleteUser.handler.tracer").Start(r.Context(), "deleteUser.handler.span")
	defer span.End()
	uuid, err := app.readUUIDParam(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.badRequestResponse(w, r, err)
		return
	}
	err = app.models.Users.Delete(ctx, uuid)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			span.SetStatus(codes.Ok, otelDBNotFoundInfo)
			app.notFoundResponse(w, r)
			return
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
			return
		}
	}
	err = app.writeJson(w, http.StatusOK, envelope{"result": "user deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
