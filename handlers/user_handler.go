package handlers

import (
	"net/http"

	"github.com/Surabhi11/fantasy-cricket/middleware"
	"github.com/Surabhi11/fantasy-cricket/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error())
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"user":    user,
	})
}

// UploadAvatar accepts a multipart form with an "avatar" file part.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error())
		return
	}

	if err := r.ParseMultipartForm(services.MaxAvatarSize); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	if header.Size > services.MaxAvatarSize {
		mapServiceErrorToHTTP(w, services.ErrAvatarTooLarge)
		return
	}

	url, err := h.userService.UploadAvatar(r.Context(), userID, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"success":      true,
		"message":      "Avatar updated",
		"profileImage": url,
	})
}
