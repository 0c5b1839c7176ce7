package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	cartIDKey    contextKey = "cart_id"
	requestIDKey contextKey = "request_id"
)

const cartCookieName = "printdukan_cart"

// CartSessionMiddleware assigns every visitor a stable cart id via a
// cookie. There is no authentication; the cookie is the whole session.
func CartSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID string

		if cookie, err := r.Cookie(cartCookieName); err == nil && cookie.Value != "" {
			cartID = cookie.Value
		} else {
			cartID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cartCookieName,
				Value:    cartID,
				Path:     "/",
				MaxAge:   90 * 24 * 60 * 60, // matches the cart TTL index
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getCartIDFromContext(ctx context.Context) string {
	if cartID, ok := ctx.Value(cartIDKey).(string); ok {
		return cartID
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
