package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/campus-connect/campus-events-api/internal/config"
	"github.com/campus-connect/campus-events-api/internal/models"
	"github.com/campus-connect/campus-events-api/internal/store"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenCookie   = "auth_token"
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg         *config.Config
	store       store.Store
	broadcaster *Broadcaster
}

func NewAuthHandler(cfg *config.Config, st store.Store, b *Broadcaster) *AuthHandler {
	if b == nil {
		b = NewBroadcaster()
	}
	return &AuthHandler{cfg: cfg, store: st, broadcaster: b}
}

// Broadcaster exposes the auth-state change stream.
func (h *AuthHandler) Broadcaster() *Broadcaster {
	return h.broadcaster
}

// AuthInput carries the raw Cookie header into huma operations.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie"`
}

// Resolve turns a Cookie header into a Session. It always returns a resolved
// session: no token and invalid token are valid unauthenticated outcomes, a
// missing user row leaves the identity set with no role, and a store failure
// is logged but does not block the caller.
func (h *AuthHandler) Resolve(ctx context.Context, cookieHeader string) Session {
	userID, err := h.parseToken(cookieHeader)
	if err != nil {
		return Session{Resolved: true}
	}

	user, err := h.store.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("session resolve: loading user %s: %v", userID, err)
		}
		return Session{Identity: &Identity{ID: userID}, Resolved: true}
	}

	return Session{
		Identity: &Identity{ID: user.ID, Email: user.Email},
		Role:     user.Role,
		Resolved: true,
	}
}

// Require maps a gate decision onto transport errors. Authorization failures
// carry no message payload beyond the status; clients turn them into
// redirects, not error toasts.
func Require(s Session, required ...models.Role) error {
	switch Authorize(s, required...) {
	case DecisionAllow:
		return nil
	case DecisionWait:
		return huma.Error503ServiceUnavailable("Session not resolved")
	case DecisionDenyUnauthenticated:
		return huma.Error401Unauthorized("Unauthorized")
	default:
		return huma.Error403Forbidden("Forbidden")
	}
}

func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func (h *AuthHandler) parseToken(cookieHeader string) (string, error) {
	req := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	cookie, err := req.Cookie(TokenCookie)
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return userID, nil
}

func sessionCookie(value string, expires time.Time) string {
	cookie := http.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Path:     "/",
	}
	return cookie.String()
}

type SignUpRequest struct {
	Body struct {
		Email    string      `json:"email" format:"email" required:"true"`
		Password string      `json:"password" minLength:"8" required:"true"`
		Role     models.Role `json:"role" enum:"student,club" required:"true"`
		ClubName string      `json:"club_name,omitempty" doc:"Required when role is club"`
	}
}

type SignUpResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleSignUp(ctx context.Context, input *SignUpRequest) (*SignUpResponse, error) {
	if !models.ValidRole(input.Body.Role) {
		return nil, huma.Error422UnprocessableEntity("Unknown role")
	}
	if input.Body.Role == models.RoleClub && input.Body.ClubName == "" {
		return nil, huma.Error422UnprocessableEntity("Club name is required for club accounts")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	user := models.User{
		Email:        input.Body.Email,
		PasswordHash: string(hash),
		Role:         input.Body.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if input.Body.Role == models.RoleClub {
		clubName := input.Body.ClubName
		user.ClubName = &clubName
	}

	if err := h.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, huma.Error409Conflict("Email already registered")
		}
		return nil, huma.Error500InternalServerError("Failed to create account")
	}

	res := &SignUpResponse{}
	res.Body.Message = "Registration successful. Please login."
	return res, nil
}

type SignInRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type SignInResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Role     models.Role `json:"role"`
		ClubName *string     `json:"club_name,omitempty"`
	}
}

func (h *AuthHandler) HandleSignIn(ctx context.Context, input *SignInRequest) (*SignInResponse, error) {
	user, err := h.store.GetUserByEmail(ctx, input.Body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error401Unauthorized("Invalid email or password")
		}
		return nil, huma.Error500InternalServerError("Failed to sign in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)) != nil {
		return nil, huma.Error401Unauthorized("Invalid email or password")
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	h.broadcaster.Publish(Session{
		Identity: &Identity{ID: user.ID, Email: user.Email},
		Role:     user.Role,
		Resolved: true,
	})

	res := &SignInResponse{SetCookie: sessionCookie(token, time.Now().Add(TokenDuration))}
	res.Body.Role = user.Role
	res.Body.ClubName = user.ClubName
	return res, nil
}

type SignOutRequest struct {
	AuthInput
}

type SignOutResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *AuthHandler) HandleSignOut(ctx context.Context, input *SignOutRequest) (*SignOutResponse, error) {
	h.broadcaster.Publish(Session{Resolved: true})

	res := &SignOutResponse{SetCookie: sessionCookie("", time.Unix(0, 0))}
	res.Body.Message = "Signed out"
	return res, nil
}

type MeRequest struct {
	AuthInput
}

type MeResponse struct {
	Body struct {
		ID       string      `json:"id"`
		Email    string      `json:"email"`
		Role     models.Role `json:"role"`
		ClubName *string     `json:"club_name,omitempty"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	sess := h.Resolve(ctx, input.Cookie)
	if err := Require(sess); err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.ID = sess.Identity.ID
	res.Body.Email = sess.Identity.Email
	res.Body.Role = sess.Role

	if user, err := h.store.GetUserByID(ctx, sess.Identity.ID); err == nil {
		res.Body.ClubName = user.ClubName
	}
	return res, nil
}
