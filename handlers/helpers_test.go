package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Surabhi11/fantasy-cricket/cricket"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/stretchr/testify/assert"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrContestNotFound, http.StatusNotFound},
		{services.ErrUserExists, http.StatusConflict},
		{services.ErrAlreadyJoined, http.StatusConflict},
		{services.ErrContestFull, http.StatusConflict},
		{services.ErrAlreadySubscribed, http.StatusConflict},
		{services.ErrRosterSize, http.StatusBadRequest},
		{services.ErrCaptainRequired, http.StatusBadRequest},
		{services.ErrCreditLimitExceeded, http.StatusBadRequest},
		{services.ErrUnderage, http.StatusBadRequest},
		{services.ErrRestrictedState, http.StatusBadRequest},
		{services.ErrContestNotOpen, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrNotAuthenticated, http.StatusUnauthorized},
		{services.ErrUploadsDisabled, http.StatusServiceUnavailable},
		{cricket.ErrUpstream, http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", cricket.ErrUpstream), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mapServiceErrorToHTTP(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "error")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.10")
	assert.Equal(t, "203.0.113.9", clientIP(r))
}
