package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const (
	jwtIssuer = "cinema.cybrarymin.com"
	tokenTTL  = 24 * time.Hour
)

var errInvalidJWT = errors.New("invalid jwt token")

// issueJWT signs an HS256 token whose subject is the id of user.
func (app *application) issueJWT(user *data.User, ttl time.Duration) (string, time.Time, error) {
	if app.config.jwt.key == "" {
		return "", time.Time{}, errors.New("jwt signing key is not configured")
	}
	now := time.Now()
	expiry := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(app.config.jwt.key))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign jwt")
	}
	return signed, expiry, nil
}

// userFromJWT validates tokenString and loads the user named by its subject.
// Any validation failure is reported as errInvalidJWT.
func (app *application) userFromJWT(ctx context.Context, tokenString string) (*data.User, error) {
	if app.config.jwt.key == "" {
		return nil, errInvalidJWT
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(app.config.jwt.key), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(errInvalidJWT, err.Error())
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errInvalidJWT
	}
	user, err := app.models.Users.GetByID(ctx, userID)
	if err != nil {
		// the user was removed after the token was issued
		if errors.Is(err, data.ErrorRecordNotFound) {
			return nil, errInvalidJWT
		}
		return nil, err
	}
	return user, nil
}

// @Summary		Issue a JWT
// @Description	Exchanges HTTP basic credentials for a signed HS256 token valid for 24 hours
// @Tags			tokens
// @Produce		json
// @Success		201	{object}	SwaggerTokenResponse
// @Failure		401	{object}	SwaggerUnauthorizaed
// @Failure		500	{object}	SwaggerServerErrorResponse
// @Router			/tokens/jwt [post]
func (app *application) createJWTTokenHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("createJWTToken.handler.tracer").Start(r.Context(), "createJWTToken.handler.span")
	defer span.End()

	ok, nUser := app.BasicAuth(w, r)
	if !ok {
		span.SetStatus(codes.Error, otelAuthFailureErr)
		return
	}

	signed, expiry, err := app.issueJWT(nUser, tokenTTL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "jwt signing failed")
		app.serverErrorResponse(w, r, err)
		return
	}

	result := struct {
		Token  string    `json:"token"`
		Expiry time.Time `json:"expiry"`
	}{Token: signed, Expiry: expiry.UTC()}
	err = app.writeJson(w, http.StatusCreated, envelope{"result": result}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
