package handlers

import (
	"net/http"

	"github.com/Surabhi11/fantasy-cricket/middleware"
	"github.com/Surabhi11/fantasy-cricket/services"
)

type EngagementHandler struct {
	engagementService services.EngagementService
}

func NewEngagementHandler(engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

func (h *EngagementHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var input services.ContactInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.engagementService.SubmitContactMessage(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{
		"success": true,
		"message": "Thank you for your message! We will get back to you soon.",
	})
}

func (h *EngagementHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.engagementService.Subscribe(r.Context(), body.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	message := "Thank you for subscribing to our newsletter!"
	if result == services.Resubscribed {
		message = "Welcome back! Your subscription has been reactivated."
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"message": message,
	})
}

// CookieConsent records the banner decision. The user id is attached when
// a session is present but the endpoint works for anonymous visitors too.
func (h *EngagementHandler) CookieConsent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Consent   bool   `json:"consent"`
		SessionID string `json:"sessionId"`
	}
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, err)
		return
	}

	input := services.CookieConsentInput{
		SessionID: body.SessionID,
		Consent:   body.Consent,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if user, err := middleware.UserFromContext(r.Context()); err == nil {
		input.UserID = &user.ID
	}

	if err := h.engagementService.RecordCookieConsent(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{
		"success": true,
		"message": "Cookie preference saved",
	})
}
