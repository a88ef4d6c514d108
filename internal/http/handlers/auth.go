package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/models/dto"
	"github.com/ali-azimo/house-aj/internal/storage"
)

// AuthHandler owns signup/signin/google/create-user/signout endpoints.
type AuthHandler struct {
	users        storage.UserStore
	tokens       *auth.TokenManager
	cookieSecure bool
	tokenTTL     time.Duration
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, cookieSecure bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cookieSecure: cookieSecure, tokenTTL: tokenTTL}
}

// Signup is the public self-registration path. The stored role is always
// "user" regardless of what the body carries.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateSignup(req.Username, req.Email, req.Password, req.Phone); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	}
	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "email already registered")
			return
		}
		log.Printf("signup: create user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respond.JSON(w, http.StatusCreated, "account created successfully", created)
}

// CreateUser is the admin-only creation path where any role from the closed
// set may be assigned.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateSignup(req.Username, req.Email, req.Password, req.Phone); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid role")
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	created, err := h.users.CreateUser(r.Context(), models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "email already registered")
			return
		}
		log.Printf("create-user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respond.JSON(w, http.StatusCreated, "account created successfully", created)
}

// Signin verifies credentials, issues a token, and sets the access cookie.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("signin: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issueToken(w, r, user)
}

// Google bootstraps an account from a verified OAuth profile, or signs in the
// existing one. First-time accounts get a random password and the user role.
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		passwordHash, hashErr := hashPassword(randomPassword())
		if hashErr != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		user, err = h.users.CreateUser(r.Context(), models.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        strings.TrimSpace(req.Email),
			Avatar:       strings.TrimSpace(req.Avatar),
			Role:         models.RoleUser,
			PasswordHash: passwordHash,
		})
		if err != nil {
			log.Printf("google auth: create user: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create account")
			return
		}
	default:
		log.Printf("google auth: fetch user: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	h.issueToken(w, r, user)
}

// Signout clears the access cookie; the token itself simply expires.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	respond.JSON(w, http.StatusOK, "signed out successfully", nil)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.tokens.Generate(user.ID, user.Role)
	if err != nil {
		log.Printf("issue token: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.tokenTTL / time.Second),
	})
	respond.JSON(w, http.StatusOK, "login successful", dto.AuthResponse{Token: token, User: user})
}

func validateSignup(username, email, password, phone string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" ||
		strings.TrimSpace(password) == "" || strings.TrimSpace(phone) == "" {
		return errors.New("username, email, password, and phone are required")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func randomPassword() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return time.Now().String()
	}
	return hex.EncodeToString(buf)
}
