package api

import (
	"context"
	"net/http"

	"github.com/cybrarymin/cinema/internal/data"
)

// userKey is the request context slot holding the principal resolved by authenticate.
type userKey struct{}

func (app *application) SetUserContext(r *http.Request, user *data.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey{}, user))
}

// GetUserContext returns the principal of a request that went through
// authenticate. Anonymous callers get data.AnonymousUser, never nil.
func (app *application) GetUserContext(r *http.Request) *data.User {
	if user, ok := r.Context().Value(userKey{}).(*data.User); ok && user != nil {
		return user
	}
	panic("no user in request context, route is not behind authenticate")
}
