package handlers

import (
	"net/http"
	"strconv"

	"github.com/Surabhi11/fantasy-cricket/cricket"
	"github.com/Surabhi11/fantasy-cricket/matchstats"
	"github.com/go-chi/chi/v5"
)

// CricketHandler serves the proxied cricket data endpoints.
type CricketHandler struct {
	gateway cricket.Gateway
}

func NewCricketHandler(gateway cricket.Gateway) *CricketHandler {
	return &CricketHandler{gateway: gateway}
}

func (h *CricketHandler) Matches(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.CurrentMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success":   true,
		"live":      result.Live,
		"upcoming":  result.Upcoming,
		"completed": result.Completed,
		"total":     result.Total,
	})
}

func (h *CricketHandler) LiveScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.gateway.LiveScores(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"scores":  scores,
	})
}

func (h *CricketHandler) MatchDetails(w http.ResponseWriter, r *http.Request) {
	match, err := h.gateway.MatchInfo(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"match":   match,
	})
}

func (h *CricketHandler) MatchSquad(w http.ResponseWriter, r *http.Request) {
	squads, err := h.gateway.MatchSquad(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"squads":  squads,
	})
}

func (h *CricketHandler) MatchScorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.gateway.MatchScorecard(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success":   true,
		"scorecard": card,
	})
}

// MatchStats derives the chart panels for the statistics modal from the
// raw scorecard.
func (h *CricketHandler) MatchStats(w http.ResponseWriter, r *http.Request) {
	card, err := h.gateway.MatchScorecard(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"stats":   matchstats.Build(card),
	})
}

func (h *CricketHandler) MatchPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.gateway.MatchPoints(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"points":  points,
	})
}

func (h *CricketHandler) Series(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errorResponse(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		offset = parsed
	}

	result, err := h.gateway.SeriesList(r.Context(), offset)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"series":  result.Series,
		"total":   result.Total,
	})
}

func (h *CricketHandler) PlayerDetails(w http.ResponseWriter, r *http.Request) {
	player, err := h.gateway.PlayerInfo(r.Context(), chi.URLParam(r, "playerId"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{
		"success": true,
		"player":  player,
	})
}
