package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type sentMail struct {
	recipient string
	template  string
	data      interface{}
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(recipient, templateFile string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{recipient, templateFile, data})
	return nil
}

func newTestApplication(t *testing.T) *application {
	t.Helper()
	app, _ := newTestApplicationWithDB(t)
	return app
}

func newTestApplicationWithDB(t *testing.T) (*application, *bun.DB) {
	t.Helper()
	var cfg config
	cfg.env = "testing"
	cfg.db.driver = "sqlite"
	cfg.db.dbDsn = filepath.Join(t.TempDir(), "cinema.db")
	cfg.jwt.key = "test-jwt-signing-key"
	cfg.media.backend = "local"
	cfg.media.root = t.TempDir()
	cfg.media.url = "/media"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := openDB(ctx, &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = data.Migrate(ctx, db)
	require.NoError(t, err)

	images, err := newImageStore(&cfg)
	require.NoError(t, err)

	logger := zerolog.Nop()
	return &application{
		config: cfg,
		log:    &logger,
		models: data.NewModels(db),
		images: images,
		mailer: &fakeMailer{},
	}, db
}

// newTestUser stores a user with password "pa55word1234".
func newTestUser(t *testing.T, app *application, email string, admin bool) *data.User {
	t.Helper()
	user := &data.User{Email: email, IsAdmin: admin}
	require.NoError(t, user.Password.Set("pa55word1234"))
	require.NoError(t, app.models.Users.Insert(context.Background(), user))
	return user
}

func newTestToken(t *testing.T, app *application, user *data.User) string {
	t.Helper()
	token, err := app.models.Tokens.New(context.Background(), time.Hour, user.ID, data.AuthenticationScope)
	require.NoError(t, err)
	return token.PlainText
}

type testCatalog struct {
	comedy, action *data.Genre
	john, jane     *data.Actor
	funny, actionM *data.Movie
}

func seedTestCatalog(t *testing.T, app *application) testCatalog {
	t.Helper()
	ctx := context.Background()
	c := testCatalog{
		comedy: &data.Genre{Name: "Comedy"},
		action: &data.Genre{Name: "Action"},
		john:   &data.Actor{FirstName: "John", LastName: "Doe"},
		jane:   &data.Actor{FirstName: "Jane", LastName: "Smith"},
	}
	require.NoError(t, app.models.Genres.Insert(ctx, c.comedy))
	require.NoError(t, app.models.Genres.Insert(ctx, c.action))
	require.NoError(t, app.models.Actors.Insert(ctx, c.john))
	require.NoError(t, app.models.Actors.Insert(ctx, c.jane))
	c.funny = &data.Movie{Title: "Funny Movie", Description: "A very funny movie", Duration: 90}
	require.NoError(t, app.models.Movies.Insert(ctx, c.funny, []int64{c.comedy.ID}, []int64{c.john.ID}))
	c.actionM = &data.Movie{Title: "Action Movie", Description: "Full of action", Duration: 120}
	require.NoError(t, app.models.Movies.Insert(ctx, c.actionM, []int64{c.action.ID}, []int64{c.jane.ID}))
	return c
}

// serve runs one request through the full middleware chain. An empty token sends no Authorization header.
func serve(t *testing.T, handler http.Handler, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func serveJSON(t *testing.T, handler http.Handler, method, target, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}
	return serve(t, handler, method, target, token, body, "application/json")
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}
