package cricket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"status": "success",
		"data":   data,
		"info":   map[string]interface{}{"totalRows": 2},
	}
}

func newTestServer(t *testing.T, routes map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("apikey"), "api key must be forwarded")

		payload, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelope(payload))
	}))
}

func TestMatchInfoNormalization(t *testing.T) {
	server := newTestServer(t, map[string]interface{}{
		"/match_info": map[string]interface{}{
			"id":           "m1",
			"name":         "India vs Australia",
			"matchType":    "t20",
			"status":       "Match not started",
			"venue":        "Wankhede Stadium",
			"dateTimeGMT":  "2026-09-01T14:00:00",
			"teams":        []string{"India", "Australia"},
			"matchStarted": false,
			"matchEnded":   false,
		},
	})
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	match, err := g.MatchInfo(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, "T20", match.MatchType, "match type is uppercased")
	assert.Equal(t, "01 Sep 2026, 07:30 PM", match.DateTimeIST, "GMT shifted by +5h30m")
	assert.NotNil(t, match.Score, "score decodes to an empty slice, not null")
}

func TestMatchSquadAttachesCredits(t *testing.T) {
	server := newTestServer(t, map[string]interface{}{
		"/match_squad": []map[string]interface{}{
			{
				"teamName":  "India",
				"shortname": "IND",
				"players": []map[string]interface{}{
					{"id": "p1", "name": "Virat Kohli", "role": "Batsman"},
					{"id": "p2", "name": "Jasprit Bumrah", "role": ""},
				},
			},
		},
	})
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	squads, err := g.MatchSquad(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, squads, 1)
	require.Len(t, squads[0].Players, 2)

	for _, p := range squads[0].Players {
		assert.GreaterOrEqual(t, p.Credits, 7.0)
		assert.LessOrEqual(t, p.Credits, 11.0)
	}
	assert.Equal(t, "Unknown", squads[0].Players[1].Role, "missing role gets a placeholder")
}

func TestLiveScoresMapping(t *testing.T) {
	server := newTestServer(t, map[string]interface{}{
		"/cricScore": []map[string]interface{}{
			{
				"id": "m1", "matchType": "odi", "status": "Live",
				"ms": "live", "t1": "India", "t2": "Australia",
				"t1s": "245/6 (43)", "t2s": "", "series": "World Cup",
				"dateTimeGMT": "2026-09-01T09:00:00",
			},
		},
	})
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	scores, err := g.LiveScores(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)

	assert.Equal(t, "ODI", scores[0].MatchType)
	assert.Equal(t, "245/6 (43)", scores[0].Team1Score)
	assert.Equal(t, "01 Sep 2026, 02:30 PM", scores[0].DateTimeIST)
}

func TestCurrentMatchesSplitsAndDiscoversUpcoming(t *testing.T) {
	soon := time.Now().Add(10 * 24 * time.Hour).Format("2006-01-02")
	longAgo := time.Now().Add(-30 * 24 * time.Hour).Format("2006-01-02")

	server := newTestServer(t, map[string]interface{}{
		"/currentMatches": []map[string]interface{}{
			{"id": "live-1", "name": "Live Match", "matchType": "t20", "matchStarted": true, "matchEnded": false},
			{"id": "done-1", "name": "Finished Match", "matchType": "odi", "matchStarted": true, "matchEnded": true},
		},
		"/series": []map[string]interface{}{
			{"id": "s1", "name": "Upcoming Cup", "startDate": soon},
			{"id": "s2", "name": "Old Series", "startDate": longAgo},
		},
		"/series_info": map[string]interface{}{
			"matchList": []map[string]interface{}{
				{"id": "up-1", "name": "Future Match", "matchType": "test", "matchStarted": false, "matchEnded": false},
				{"id": "done-1", "name": "Finished Match", "matchType": "odi", "matchStarted": true, "matchEnded": true},
			},
		},
	})
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	result, err := g.CurrentMatches(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Live, 1)
	assert.Equal(t, "live-1", result.Live[0].ID)
	require.Len(t, result.Completed, 1)
	assert.Equal(t, "done-1", result.Completed[0].ID)

	// Only the unstarted series match survives; only the soon series was
	// scanned, and matches already in the current feed are not repeated.
	require.Len(t, result.Upcoming, 1)
	assert.Equal(t, "up-1", result.Upcoming[0].ID)
	assert.Equal(t, "Upcoming Cup", result.Upcoming[0].SeriesName)
	assert.Equal(t, "TEST", result.Upcoming[0].MatchType)

	assert.Equal(t, 3, result.Total)
}

func TestUpstreamFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "failure"})
	}))
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	_, err := g.LiveScores(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUpstreamFailureHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewGateway(server.URL, "test-key", testLogger())
	_, err := g.MatchInfo(context.Background(), "m1")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFormatIST(t *testing.T) {
	assert.Equal(t, "01 Jan 2026, 05:30 AM", FormatIST("2026-01-01T00:00:00"))
	assert.Equal(t, "", FormatIST(""))
	assert.Equal(t, "", FormatIST("not-a-date"))
}
