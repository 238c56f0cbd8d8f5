package handlers

import (
	"net/http"

	"github.com/Surabhi11/fantasy-cricket/middleware"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService services.ContestService
}

func NewContestHandler(contestService services.ContestService) *ContestHandler {
	return &ContestHandler{contestService: contestService}
}

func (h *ContestHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.ListContestsByMatch(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success":  true,
		"contests": contests,
	})
}

func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateContestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	contest, err := h.contestService.CreateContest(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{
		"success":   true,
		"message":   "Contest created successfully",
		"contestId": contest.ID,
	})
}

func (h *ContestHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Please login to join contest")
		return
	}

	contestID, err := intURLParam(r, "contestId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.JoinContestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.contestService.JoinContest(r.Context(), userID, contestID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{
		"success": true,
		"message": "Successfully joined the contest!",
		"teamId":  team.ID,
	})
}

func (h *ContestHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	contestID, err := intURLParam(r, "contestId")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	entries, err := h.contestService.GetLeaderboard(r.Context(), contestID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"success":     true,
		"leaderboard": entries,
	})
}

func (h *ContestHandler) MyTeams(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, services.ErrNotAuthenticated.Error())
		return
	}

	teams, err := h.contestService.ListUserTeams(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"teams":   teams,
	})
}
