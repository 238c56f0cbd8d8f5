package handlers

import (
	"net/http"
	"time"

	"github.com/Surabhi11/fantasy-cricket/middleware"
	"github.com/Surabhi11/fantasy-cricket/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{
		"success": true,
		"message": "Registration successful! Please login to continue.",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, session, err := h.authService.Login(r.Context(), services.LoginInput{
		Email:     body.Email,
		Password:  body.Password,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"message": "Login successful!",
		"user":    user,
	})
}

// Logout destroys the server-side session and clears the cookie. It
// succeeds even when no session cookie is present.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			mapServiceErrorToHTTP(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error())
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"user":    user,
	})
}
