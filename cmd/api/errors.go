package api

import (
	"fmt"
	"net/http"
)

// logError is the method we use to log the errors happens on the server side for the application.
func (app *application) logError(r *http.Request, err error) {
	app.log.Error().Err(err).Str("method", r.Method).Str("uri", r.URL.RequestURI()).Send()
}

// errorResponse is the method we use to send a json formatted error to the client in case of any error
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	e := envelope{
		"error": message,
	}
	err := app.writeJson(w, status, e, nil)

	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse uses the two other methods to log the details of the error and send internal server error to the client
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered an error to process the request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

// notFoundResponse method will be used to send notFound 404 status error json response to the client
func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource couldn't be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// methodNotAllowed method will be used to send 405 status error json response to the client
func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// failedValidationResponse sends the field -> message map of a failed validation.
func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusBadRequest, errors)
}

func (app *application) payloadTooLargeResponse(w http.ResponseWriter, r *http.Request) {
	message := "the request body is too large"
	app.errorResponse(w, r, http.StatusRequestEntityTooLarge, message)
}

func (app *application) rateLimitExceedResponse(w http.ResponseWriter, r *http.Request) {
	message := "request rate limit reached, please try again later"
	app.errorResponse(w, r, http.StatusTooManyRequests, message)
}

func (app *application) invalidAuthenticationCredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	message := "invalid authentication creds or token"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *application) invalidJWTTokenSignatureResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	message := "invalid or expired jwt token"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *application) authenticationRequiredResposne(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	message := "authentication required"
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *application) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	message := "your user account doesn't have the necessary permissions to access this resource"
	app.errorResponse(w, r, http.StatusForbidden, message)
}
