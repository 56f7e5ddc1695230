package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"golang.org/x/time/rate"
)

type ClientRateLimiter struct {
	Limit      *rate.Limiter
	LastAccess *time.Timer
}

func (app *application) PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// This deferred anonymous function will be run after panic is happening
		defer func() {
			// recover() will stop panic to close the program and instead returns error status 500 internal server error to the client
			if panicErr := recover(); panicErr != nil {
				// Setting this header will trigger the HTTP server to close the connection after Panic happended
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s, %s", panicErr, debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *application) RateLimit(next http.Handler) http.Handler {
	if !app.config.rateLimit.enabled {
		return next
	}

	// Global rate limiter
	busrtSize := app.config.rateLimit.globalRateLimit + app.config.rateLimit.globalRateLimit/10
	nRL := rate.NewLimiter(rate.Limit(app.config.rateLimit.globalRateLimit), int(busrtSize))
	// Per IP or Per Client rate limiter
	pcbusrtSize := app.config.rateLimit.perClientRateLimit + app.config.rateLimit.perClientRateLimit/10
	pcnRL := make(map[string]*ClientRateLimiter)
	mu := sync.Mutex{}
	expirationTime := 30 * time.Second

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !nRL.Allow() { // In this code, whenever we call the Allow() method on the rate limiter exactly one token will be consumed from the bucket. And if there is no token in the bucket left Allow() will return false
			app.rateLimitExceedResponse(w, r)
			return
		}
		clientAddr, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		mu.Lock()
		client, found := pcnRL[clientAddr]
		if !found {
			client = &ClientRateLimiter{
				Limit: rate.NewLimiter(rate.Limit(app.config.rateLimit.perClientRateLimit), int(pcbusrtSize)),
				// idle clients are forgotten once the timer fires
				LastAccess: time.AfterFunc(expirationTime, func() {
					mu.Lock()
					delete(pcnRL, clientAddr)
					mu.Unlock()
				}),
			}
			pcnRL[clientAddr] = client
		} else {
			app.log.Debug().Msgf("renewing client %v expiry of rate limiting context", clientAddr)
			client.LastAccess.Reset(expirationTime)
		}
		allowed := client.Limit.Allow()
		mu.Unlock()

		if !allowed {
			app.rateLimitExceedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(app.config.cors.trustedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)

			// preflight request
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, PATCH, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the Authorization header into a user and stores it in the
// request context. Requests without the header continue as the anonymous user.
// The bearer value is either a stateful token or a signed JWT.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		headerValue := r.Header.Get("Authorization")
		if headerValue == "" {
			r = app.SetUserContext(r, data.AnonymousUser)
			next.ServeHTTP(w, r)
			return
		}

		headerValues := strings.Split(headerValue, " ")
		// basic credentials are verified by the token endpoints themselves
		if len(headerValues) == 2 && headerValues[0] == "Basic" {
			r = app.SetUserContext(r, data.AnonymousUser)
			next.ServeHTTP(w, r)
			return
		}
		if len(headerValues) != 2 || headerValues[0] != "Bearer" {
			app.invalidAuthenticationCredResponse(w, r)
			return
		}
		userToken := headerValues[1]

		var user *data.User
		var err error
		if data.LooksLikeToken(userToken) {
			user, err = app.models.Users.GetUserByToken(r.Context(), userToken, data.AuthenticationScope)
		} else {
			user, err = app.userFromJWT(r.Context(), userToken)
		}
		if err != nil {
			switch {
			case errors.Is(err, data.ErrorRecordNotFound):
				app.invalidAuthenticationCredResponse(w, r)
			case errors.Is(err, errInvalidJWT):
				app.invalidJWTTokenSignatureResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		r = app.SetUserContext(r, user)
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := app.GetUserContext(r)
		if user.IsAnonymous() {
			app.authenticationRequiredResposne(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// requirePermission answers 401 for anonymous callers and 403 for users whose
// derived permission set lacks code.
func (app *application) requirePermission(code string, next http.HandlerFunc) http.HandlerFunc {
	fn := func(w http.ResponseWriter, r *http.Request) {
		user := app.GetUserContext(r)
		if !data.Authorize(user, code) {
			app.notPermittedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}
	return app.requireAuthenticatedUser(fn)
}
