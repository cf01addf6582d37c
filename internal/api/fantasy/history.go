package fantasy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var ErrLeagueNotFound = errors.New("league not found")

// SeasonLeague pairs a season label with that season's league id.
type SeasonLeague struct {
	Season   string
	LeagueID string
}

// ResolveStartLeague finds the user's league for the given season. With an
// empty name the first league is used, otherwise the closest name match.
func (a *API) ResolveStartLeague(ctx context.Context, userID, leagueName, season string) (string, error) {
	leagues, err := a.source.GetUserLeagues(ctx, userID, season)
	if err != nil {
		return "", fmt.Errorf("resolving start league: %w", err)
	}
	if len(leagues) == 0 {
		return "", fmt.Errorf("no leagues for user %s in %s: %w", userID, season, ErrLeagueNotFound)
	}
	if leagueName == "" {
		return leagues[0].LeagueID, nil
	}

	names := make([]string, len(leagues))
	for i, league := range leagues {
		names[i] = league.Name
	}
	idx, ok := BestMatch(leagueName, names, 0.6)
	if !ok {
		return "", fmt.Errorf("no league named like %q: %w", leagueName, ErrLeagueNotFound)
	}
	slog.Info("Matched league", "query", leagueName, "league", leagues[idx].Name)
	return leagues[idx].LeagueID, nil
}

// LeagueHistory walks previous_league_id links from startID, newest first.
// Only a failure on the starting league is an error.
func (a *API) LeagueHistory(ctx context.Context, startID string, years int) ([]SeasonLeague, error) {
	var history []SeasonLeague
	leagueID := startID

	for i := 0; i < years && leagueID != ""; i++ {
		league, err := a.source.GetLeague(ctx, leagueID)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("fetching start league %s: %w", startID, err)
			}
			slog.Error("Error walking league history", "league_id", leagueID, "error", err)
			break
		}
		if league.Season != "" {
			history = append(history, SeasonLeague{Season: league.Season, LeagueID: leagueID})
		}
		leagueID = league.PreviousLeagueID
		if leagueID == "0" {
			leagueID = ""
		}
	}

	if len(history) == 0 {
		return nil, fmt.Errorf("league %s has no season: %w", startID, ErrLeagueNotFound)
	}
	return history, nil
}

// BestMatch returns the index of the candidate most similar to query, using
// normalized Levenshtein similarity above threshold and then subsequence
// matching.
func BestMatch(query string, candidates []string, threshold float64) (int, bool) {
	best := -1
	bestSimilarity := threshold
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, false
	}

	for i, candidate := range candidates {
		c := strings.ToLower(candidate)
		distance := fuzzy.LevenshteinDistance(q, c)
		maxLen := float64(max(len(q), len(c)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > bestSimilarity || (similarity == 1 && best == -1) {
			bestSimilarity = similarity
			best = i
		}
	}
	if best >= 0 {
		return best, true
	}

	// Fall back to subsequence matching so "dynasty" still finds
	// "The Dynasty League".
	ranks := fuzzy.RankFindNormalizedFold(q, candidates)
	if len(ranks) == 0 {
		return -1, false
	}
	sort.Sort(ranks)
	return ranks[0].OriginalIndex, true
}
