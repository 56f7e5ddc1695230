package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/cybrarymin/cinema/internal/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const maxImageSize = 10 << 20

// @Summary		Upload a movie image
// @Description	Stores a jpeg, png, gif or webp image (max 10MB) as the poster of a movie. Admin only.
// @Tags			movies
// @Accept			mpfd
// @Produce		json
// @Param			id		path		int		true	"movie id"
// @Param			image	formData	file	true	"image file"
// @Success		200		{object}	SwaggerImageResponse
// @Failure		400		{object}	SwaggerFailedValidationResponse
// @Failure		401		{object}	SwaggerUnauthorizaed
// @Failure		403		{object}	SwaggerNotPermitted
// @Failure		404		{object}	SwaggerNotFound
// @Failure		413		{object}	SwaggerBadRequestResponse
// @Failure		500		{object}	SwaggerServerErrorResponse
// @Security		BearerAuth
// @Router			/movies/{id}/upload-image [post]
func (app *application) uploadMovieImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("uploadMovieImage.handler.tracer").Start(r.Context(), "uploadMovieImage.handler.span")
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

	// leave room for the multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	err = r.ParseMultipartForm(maxImageSize)
	if err != nil {
		span.RecordError(err)
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			app.payloadTooLargeResponse(w, r)
		default:
			app.badRequestResponse(w, r, err)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	nValidator := data.NewValidator()
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			nValidator.AddError("image", "must be provided")
			app.failedValidationResponse(w, r, nValidator.Errors)
			return
		}
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	nValidator.Check(header.Size > 0, "image", "must not be empty")
	nValidator.Check(header.Size <= maxImageSize, "image", "must not be larger than 10MB")
	if !nValidator.Valid() {
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		app.badRequestResponse(w, r, err)
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	ext, ok := storage.ExtensionFor(contentType)
	if !ok {
		nValidator.AddError("image", "must be a jpeg, png, gif or webp image")
		span.SetStatus(codes.Error, otelunprocessableErr)
		app.failedValidationResponse(w, r, nValidator.Errors)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	key := storage.MovieImageKey(movie.Title, ext)
	span.SetAttributes(attribute.String("image.key", key), attribute.String("image.content_type", contentType))
	ref, err := app.images.Put(ctx, key, file, header.Size, contentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store the image")
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.models.Movies.SetImage(ctx, movie.ID, ref)
	if err != nil {
		span.RecordError(err)
		if delErr := app.images.Delete(ctx, key); delErr != nil {
			app.logError(r, delErr)
		}
		switch {
		case errors.Is(err, data.ErrorRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			span.SetStatus(codes.Error, otelDBErr)
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// the previous poster is unreachable now
	if movie.Image != nil {
		if oldKey, ok := app.images.KeyOf(*movie.Image); ok && oldKey != key {
			if err := app.images.Delete(ctx, oldKey); err != nil {
				span.RecordError(err)
				app.logError(r, err)
			}
		}
	}

	result := struct {
		ID    int64  `json:"id"`
		Image string `json:"image"`
	}{ID: movie.ID, Image: ref}
	err = app.writeJson(w, http.StatusOK, result, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
