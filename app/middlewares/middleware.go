package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/sinashm/go-shop/app/utils/sessions"
)

// UserContextMiddleware resolves the session's user and makes it available
// to every handler downstream.
func UserContextMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("UserContextMiddleware: failed to load user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthRequiredMiddleware bounces anonymous requests to the login page.
func AuthRequiredMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if helpers.GetUserIDFromContext(r.Context()) == "" {
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("برای ادامه باید وارد شوید."), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CartCountMiddleware puts the logged-in user's cart item count in the
// context for the shared layout.
func CartCountMiddleware(cartRepo repositories.CartRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := helpers.GetUserIDFromContext(r.Context())
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := cartRepo.GetItemCount(r.Context(), userID)
			if err != nil {
				log.Printf("CartCountMiddleware: failed to count cart items for user %s: %v", userID, err)
				count = 0
			}

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MethodOverrideMiddleware lets HTML forms issue DELETE via a _method field.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
