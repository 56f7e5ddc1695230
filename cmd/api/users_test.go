package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenResult struct {
	Result struct {
		Token  string    `json:"token"`
		Expiry time.Time `json:"expiry"`
	} `json:"result"`
}

type userListResult struct {
	Metadata data.PaginationMeta `json:"metadata"`
	Users    []data.User         `json:"users"`
}

func basicAuthRequest(t *testing.T, handler http.Handler, target, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.SetBasicAuth(email, password)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRegisterUser(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()

	rr := serveJSON(t, handler, http.MethodPost, "/v1/users", "", map[string]string{"email": "New@Example.com", "password": "pa55word1234"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decode[map[string]map[string]interface{}](t, rr)
	assert.Equal(t, "new@example.com", body["result"]["email"])
	assert.Equal(t, false, body["result"]["is_admin"])
	assert.NotContains(t, body["result"], "password")

	app.wg.Wait()
	mailer := app.mailer.(*fakeMailer)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "new@example.com", mailer.sent[0].recipient)
	assert.Equal(t, "user_welcome.tmpl", mailer.sent[0].template)

	tests := []struct {
		name    string
		payload map[string]string
		field   string
	}{
		{name: "Duplicate email", payload: map[string]string{"email": "new@example.com", "password": "pa55word1234"}, field: "email"},
		{name: "Invalid email", payload: map[string]string{"email": "not-an-email", "password": "pa55word1234"}, field: "email"},
		{name: "Short password", payload: map[string]string{"email": "short@example.com", "password": "short"}, field: "password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serveJSON(t, handler, http.MethodPost, "/v1/users", "", tc.payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decode[map[string]map[string]string](t, rr)["error"], tc.field)
		})
	}
}

func TestBearerTokenFlow(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()
	newTestUser(t, app, "user@example.com", false)

	rr := basicAuthRequest(t, handler, "/v1/tokens/authentication", "user@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = basicAuthRequest(t, handler, "/v1/tokens/authentication", "nobody@example.com", "pa55word1234")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = basicAuthRequest(t, handler, "/v1/tokens/authentication", "user@example.com", "pa55word1234")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	token := decode[tokenResult](t, rr)
	assert.Len(t, token.Result.Token, 26)
	assert.True(t, token.Result.Expiry.After(time.Now().Add(23*time.Hour)))

	rr = serve(t, handler, http.MethodGet, "/v1/users/me", token.Result.Token, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user@example.com", decode[map[string]map[string]interface{}](t, rr)["result"]["email"])
}

func TestJWTFlow(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()
	user := newTestUser(t, app, "user@example.com", false)

	rr := basicAuthRequest(t, handler, "/v1/tokens/jwt", "user@example.com", "pa55word1234")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	token := decode[tokenResult](t, rr)

	rr = serve(t, handler, http.MethodGet, "/v1/movies", token.Result.Token, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	expired, _, err := app.issueJWT(user, -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  jwtIssuer,
		Subject: user.ID.String(),
	}).SignedString([]byte(app.config.jwt.key))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Expired token", token: expired},
		{name: "Wrong signing key", token: foreign},
		{name: "Missing expiry", token: noExpiry},
		{name: "Garbage", token: "not.a.jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, handler, http.MethodGet, "/v1/movies", tc.token, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestBasicCredentialsOnlyIssueTokens(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()
	newTestUser(t, app, "user@example.com", false)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "Bearer token endpoint", method: http.MethodPost, target: "/v1/tokens/authentication", wantStatus: http.StatusCreated},
		{name: "JWT endpoint", method: http.MethodPost, target: "/v1/tokens/jwt", wantStatus: http.StatusCreated},
		{name: "Catalog stays closed", method: http.MethodGet, target: "/v1/movies", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			req.SetBasicAuth("user@example.com", "pa55word1234")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestAuthenticateHeader(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()
	user := newTestUser(t, app, "user@example.com", false)

	expired, err := app.models.Tokens.New(context.Background(), -time.Minute, user.ID, data.AuthenticationScope)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "Wrong scheme", header: "Token abc"},
		{name: "Missing value", header: "Bearer"},
		{name: "Unknown token", header: "Bearer ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{name: "Expired token", header: "Bearer " + expired.PlainText},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
			req.Header.Set("Authorization", tc.header)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestUserAdministration(t *testing.T) {
	app := newTestApplication(t)
	handler := app.routes()
	user := newTestUser(t, app, "user@example.com", false)
	userToken := newTestToken(t, app, user)
	adminToken := newTestToken(t, app, newTestUser(t, app, "admin@example.com", true))

	rr := serve(t, handler, http.MethodGet, "/v1/users", userToken, nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = serve(t, handler, http.MethodGet, "/v1/users?sort=email&page_size=1", adminToken, nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	list := decode[userListResult](t, rr)
	require.Len(t, list.Users, 1)
	assert.Equal(t, "admin@example.com", list.Users[0].Email)
	assert.Equal(t, 2, list.Metadata.TotalRecords)
	assert.Equal(t, 2, list.Metadata.LastPage)

	rr = serve(t, handler, http.MethodGet, "/v1/users?page_size=1000", adminToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, handler, http.MethodDelete, "/v1/users/not-a-uuid", adminToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, handler, http.MethodDelete, "/v1/users/"+user.ID.String(), adminToken, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// the deleted user's tokens went with it
	rr = serve(t, handler, http.MethodGet, "/v1/users/me", userToken, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(t, handler, http.MethodDelete, "/v1/users/"+user.ID.String(), adminToken, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateSuperuser(t *testing.T) {
	app := newTestApplication(t)
	ctx := context.Background()

	created, err := CreateSuperuser(ctx, app.models, "root@example.com", "pa55word1234")
	require.NoError(t, err)
	assert.True(t, created)
	root, err := app.models.Users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.True(t, root.IsAdmin)

	newTestUser(t, app, "user@example.com", false)
	created, err = CreateSuperuser(ctx, app.models, "user@example.com", "pa55word1234")
	require.NoError(t, err)
	assert.False(t, created)
	promoted, err := app.models.Users.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	_, err = CreateSuperuser(ctx, app.models, "bad-email", "pa55word1234")
	assert.Error(t, err)
}
