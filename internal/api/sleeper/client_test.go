package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/models"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.Sleeper{
		BaseURL:           srv.URL,
		ProjectionsURL:    srv.URL + "/projections/nfl",
		RequestsPerMinute: 60000,
		Timeout:           time.Second,
	})
	return NewAPI(client)
}

func TestGetLeague(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/league/123" {
			t.Errorf("path = %s, want /league/123", r.URL.Path)
		}
		w.Write([]byte(`{"league_id":"123","season":"2024","season_type":"regular","previous_league_id":"99",
			"roster_positions":["QB","RB","FLEX","BN"],"settings":{"leg":5}}`))
	})

	league, err := api.GetLeague(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if league.Season != "2024" || league.PreviousLeagueID != "99" || league.Settings.Leg != 5 {
		t.Errorf("unexpected league: %+v", league)
	}
	if len(league.RosterPositions) != 4 {
		t.Errorf("roster positions = %v", league.RosterPositions)
	}
}

func TestGetLeague_NullBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	_, err := api.GetLeague(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_UnexpectedStatus(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := api.GetRosters(context.Background(), "1")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestGet_MalformedJSON(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"oops":`))
	})

	if _, err := api.GetUsers(context.Background(), "1"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetMatchups_NullableFields(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/league/1/matchups/3" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"roster_id":1,"matchup_id":2,"points":101.5,"starters":["a","b"],"starters_points":[60,41.5],"players_points":{"a":60,"b":41.5}},
			{"roster_id":2,"matchup_id":null,"points":null}
		]`))
	})

	matchups, err := api.GetMatchups(context.Background(), "1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("got %d entries, want 2", len(matchups))
	}
	if matchups[0].Points == nil || *matchups[0].Points != 101.5 {
		t.Errorf("points = %v, want 101.5", matchups[0].Points)
	}
	if matchups[0].StarterPoints(1) != 41.5 {
		t.Errorf("starter points = %v, want 41.5", matchups[0].StarterPoints(1))
	}
	if matchups[1].MatchupID != 0 || matchups[1].Points != nil {
		t.Errorf("null fields not preserved: %+v", matchups[1])
	}
}

func TestGetPlayers_FillsIDs(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"4046":{"full_name":"Patrick Mahomes","position":"QB"},"KC":{"player_id":"KC","first_name":"Kansas City","last_name":"Chiefs","position":"DEF"}}`))
	})

	players, err := api.GetPlayers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if players["4046"].PlayerID != "4046" {
		t.Errorf("player id not filled: %+v", players["4046"])
	}
	if got := players["KC"].Name(); got != "Kansas City Chiefs" {
		t.Errorf("defense name = %q", got)
	}
}

func TestGetProjections_URL(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projections/nfl/regular/2025/4" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"player_id":"4046","stats":{"pts_ppr":22.4,"pts_std":18.1}}]`))
	})

	projections, err := api.GetProjections(context.Background(), "", "2025", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projections) != 1 || projections[0].Points() != 22.4 {
		t.Errorf("unexpected projections: %+v", projections)
	}
}

func TestProjectionPoints_Fallback(t *testing.T) {
	tests := []struct {
		stats map[string]float64
		want  float64
	}{
		{map[string]float64{"pts_ppr": 10, "pts_half_ppr": 8, "pts_std": 6}, 10},
		{map[string]float64{"pts_half_ppr": 8, "pts_std": 6}, 8},
		{map[string]float64{"pts_std": 6}, 6},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := (models.Projection{Stats: tt.stats}).Points(); got != tt.want {
			t.Errorf("Points(%v) = %v, want %v", tt.stats, got, tt.want)
		}
	}
}
