// Package fantasytest provides an in-memory fantasy.Source for tests.
package fantasytest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

var ErrUnavailable = errors.New("upstream unavailable")

// Source serves canned responses. Weeks missing from Matchups return an
// empty list; ids listed in FailLeagues or FailWeeks return ErrUnavailable.
type Source struct {
	Leagues      map[string]*models.League
	Rosters      map[string][]models.Roster
	Users        map[string][]models.User
	Matchups     map[string]map[int][]models.MatchupEntry
	UserLeagues  map[string][]models.League
	State        *models.NFLState
	PlayerDir    map[string]models.Player
	Projected    map[int][]models.Projection
	FailLeagues  map[string]bool
	FailWeeks    map[int]bool
	FailPlayers  bool
	FailProjects bool

	mu    sync.Mutex
	calls map[string]int
}

func (s *Source) count(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[key]++
}

// Calls reports how many times an endpoint key was requested, e.g.
// "matchups/L1/3" or "players".
func (s *Source) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

func (s *Source) GetLeague(_ context.Context, leagueID string) (*models.League, error) {
	s.count("league/" + leagueID)
	if s.FailLeagues[leagueID] {
		return nil, ErrUnavailable
	}
	league, ok := s.Leagues[leagueID]
	if !ok {
		return nil, fmt.Errorf("league %s: %w", leagueID, ErrUnavailable)
	}
	return league, nil
}

func (s *Source) GetRosters(_ context.Context, leagueID string) ([]models.Roster, error) {
	s.count("rosters/" + leagueID)
	if s.FailLeagues[leagueID] {
		return nil, ErrUnavailable
	}
	return s.Rosters[leagueID], nil
}

func (s *Source) GetUsers(_ context.Context, leagueID string) ([]models.User, error) {
	s.count("users/" + leagueID)
	if s.FailLeagues[leagueID] {
		return nil, ErrUnavailable
	}
	return s.Users[leagueID], nil
}

func (s *Source) GetMatchups(_ context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	s.count(fmt.Sprintf("matchups/%s/%d", leagueID, week))
	if s.FailWeeks[week] {
		return nil, ErrUnavailable
	}
	return s.Matchups[leagueID][week], nil
}

func (s *Source) GetUserLeagues(_ context.Context, userID, season string) ([]models.League, error) {
	s.count("user_leagues/" + userID)
	return s.UserLeagues[userID+"/"+season], nil
}

func (s *Source) GetNFLState(_ context.Context) (*models.NFLState, error) {
	s.count("state")
	if s.State == nil {
		return nil, ErrUnavailable
	}
	return s.State, nil
}

func (s *Source) GetPlayers(_ context.Context) (map[string]models.Player, error) {
	s.count("players")
	if s.FailPlayers {
		return nil, ErrUnavailable
	}
	return s.PlayerDir, nil
}

func (s *Source) GetProjections(_ context.Context, _ models.SeasonPhase, _ string, week int) ([]models.Projection, error) {
	s.count(fmt.Sprintf("projections/%d", week))
	if s.FailProjects {
		return nil, ErrUnavailable
	}
	return s.Projected[week], nil
}

// Points is a shorthand for building matchup entries.
func Points(v float64) *float64 {
	return &v
}

// Pair builds two matchup entries sharing a matchup id.
func Pair(matchupID, rosterA int, pointsA float64, rosterB int, pointsB float64) []models.MatchupEntry {
	return []models.MatchupEntry{
		{RosterID: rosterA, MatchupID: matchupID, Points: Points(pointsA)},
		{RosterID: rosterB, MatchupID: matchupID, Points: Points(pointsB)},
	}
}
