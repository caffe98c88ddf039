package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshMiddleware implements sliding sessions: when a valid token is more
// than halfway through its lifetime, a fresh cookie rides out on the response.
// Resolution and gating stay inside the operations; this only keeps active
// users signed in.
func (h *AuthHandler) RefreshMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
			return []byte(h.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			userID, _ := claims["user_id"].(string)
			exp, _ := claims["exp"].(float64)
			if userID != "" && exp > 0 {
				remaining := time.Until(time.Unix(int64(exp), 0))
				if remaining > 0 && remaining < TokenDuration/2 {
					if newToken, err := h.GenerateToken(userID); err == nil {
						http.SetCookie(w, &http.Cookie{
							Name:     TokenCookie,
							Value:    newToken,
							Expires:  time.Now().Add(TokenDuration),
							HttpOnly: true,
							Path:     "/",
						})
					}
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}
