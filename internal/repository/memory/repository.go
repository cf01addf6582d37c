package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

type matchupKey struct {
	leagueID string
	week     int
}

type Repository struct {
	players          map[string]models.Player
	playersUpdatedAt time.Time
	matchups         map[matchupKey][]models.MatchupEntry
	mu               sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{matchups: make(map[matchupKey][]models.MatchupEntry)}
}

func (r *Repository) SavePlayers(players map[string]models.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = players
	r.playersUpdatedAt = time.Now()
}

// GetPlayers returns the cached directory, or nil once it is older than maxAge.
func (r *Repository) GetPlayers(maxAge time.Duration) map[string]models.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.players == nil || time.Since(r.playersUpdatedAt) > maxAge {
		return nil
	}
	return r.players
}

func (r *Repository) SaveMatchups(leagueID string, week int, entries []models.MatchupEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchups[matchupKey{leagueID, week}] = entries
}

func (r *Repository) GetMatchups(leagueID string, week int) ([]models.MatchupEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.matchups[matchupKey{leagueID, week}]
	return entries, ok
}

// ResetMatchups drops every memoized week. Called at the start of each run
// so no matchup data outlives the run that fetched it.
func (r *Repository) ResetMatchups() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchups = make(map[matchupKey][]models.MatchupEntry)
}
