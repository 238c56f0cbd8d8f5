package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/Surabhi11/fantasy-cricket/cricket"
	"github.com/Surabhi11/fantasy-cricket/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", slog.Any("error", err))
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, jsonResponse{"error": message})
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	slog.Error("internal server error", slog.Any("error", err))
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func notFoundResponse(w http.ResponseWriter) {
	errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
}

// mapServiceErrorToHTTP translates service sentinels into HTTP statuses.
// Anything unmatched is treated as an internal error and logged.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrContestNotFound):
		notFoundResponse(w)

	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrAlreadySubscribed),
		errors.Is(err, services.ErrContestFull):
		errorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrUnderage),
		errors.Is(err, services.ErrRestrictedState),
		errors.Is(err, services.ErrRosterSize),
		errors.Is(err, services.ErrCaptainRequired),
		errors.Is(err, services.ErrCaptainNotInTeam),
		errors.Is(err, services.ErrCaptainDuplicate),
		errors.Is(err, services.ErrDuplicatePlayer),
		errors.Is(err, services.ErrCreditLimitExceeded),
		errors.Is(err, services.ErrContestNotOpen),
		errors.Is(err, services.ErrContestFieldsRequired),
		errors.Is(err, services.ErrContactFieldsEmpty),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrAvatarTooLarge),
		errors.Is(err, services.ErrAvatarUnsupported):
		badRequestResponse(w, err)

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		errorResponse(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrUploadsDisabled):
		errorResponse(w, http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, cricket.ErrUpstream):
		errorResponse(w, http.StatusBadGateway, "cricket data is temporarily unavailable")

	default:
		serverErrorResponse(w, err)
	}
}

func intURLParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return value, nil
}

// clientIP prefers the forwarding header set by the reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
