package service

import (
	"context"
	"sort"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// minRatingWeeks is the number of completed weeks needed before opponent
// strength means anything.
const minRatingWeeks = 2

// CalculateFDVOA rates every team over the weeks before currentWeek.
func (s *FantasyService) CalculateFDVOA(ctx context.Context, leagueID string, rosters models.RosterMap, currentWeek int) models.Result[[]models.Rating] {
	if len(rosters) == 0 {
		return models.Empty[[]models.Rating](models.StatusNoData, nil)
	}
	if currentWeek-1 < minRatingWeeks {
		return models.Empty[[]models.Rating](models.StatusInsufficientData, nil)
	}

	weeks := s.api.History(ctx, leagueID, 1, currentWeek-1)
	if scoredWeeks(weeks) < minRatingWeeks {
		return models.Empty[[]models.Rating](models.StatusInsufficientData, nil)
	}

	ratings := ComputeFDVOA(rosters, weeks)
	if len(ratings) == 0 {
		return models.Empty[[]models.Rating](models.StatusNoData, nil)
	}
	return models.Ok(ratings)
}

func scoredWeeks(weeks []models.WeekMatchups) int {
	n := 0
	for _, w := range weeks {
		if len(weekScores(w)) > 0 {
			n++
		}
	}
	return n
}

func weekScores(w models.WeekMatchups) map[int]float64 {
	scores := make(map[int]float64, len(w.Entries))
	for _, e := range w.Entries {
		if e.Points != nil {
			scores[e.RosterID] = *e.Points
		}
	}
	return scores
}

// opponents pairs rosters sharing a matchup id. Groups of any size other
// than two (byes, median games, null ids) produce no opponent.
func opponents(w models.WeekMatchups) map[int]int {
	groups := make(map[int][]int)
	for _, e := range w.Entries {
		if e.MatchupID == 0 {
			continue
		}
		groups[e.MatchupID] = append(groups[e.MatchupID], e.RosterID)
	}

	pairs := make(map[int]int, len(w.Entries))
	for _, group := range groups {
		if len(group) != 2 {
			continue
		}
		pairs[group[0]] = group[1]
		pairs[group[1]] = group[0]
	}
	return pairs
}

// ComputeFDVOA is the opponent-adjusted rating. For every team-week:
//
//	pct = (score - weeklyAvg + (oppSeasonAvg - leagueSeasonAvg)/2) / weeklyAvg * 100
//
// and a team's rating is the mean of its weekly pcts. Weeks with no reported
// scores are skipped, not counted as zero. The result is ordered by rating,
// highest first.
func ComputeFDVOA(rosters models.RosterMap, weeks []models.WeekMatchups) []models.Rating {
	type scoredWeek struct {
		scores    map[int]float64
		opponents map[int]int
	}

	var played []scoredWeek
	seasonScores := make(map[int][]float64, len(rosters))
	for _, w := range weeks {
		scores := weekScores(w)
		if len(scores) == 0 {
			continue
		}
		played = append(played, scoredWeek{scores: scores, opponents: opponents(w)})

		for _, rid := range sortedKeys(scores) {
			if _, ok := rosters[rid]; ok {
				seasonScores[rid] = append(seasonScores[rid], scores[rid])
			}
		}
	}
	if len(played) == 0 {
		return nil
	}

	seasonAvg := make(map[int]float64, len(seasonScores))
	var allPoints []float64
	for _, rid := range sortedKeys(seasonScores) {
		seasonAvg[rid] = mean(seasonScores[rid])
		allPoints = append(allPoints, seasonScores[rid]...)
	}
	leagueAvg := mean(allPoints)

	weekly := make(map[int][]float64, len(rosters))
	for _, w := range played {
		ids := sortedKeys(w.scores)
		values := make([]float64, len(ids))
		for i, rid := range ids {
			values[i] = w.scores[rid]
		}
		weeklyAvg := mean(values)

		for _, rid := range ids {
			// Unowned rosters still count toward the averages but are not rated.
			if identity, ok := rosters.Lookup(rid); !ok || identity.DisplayName == models.UnknownTeam {
				continue
			}
			opp, ok := w.opponents[rid]
			if !ok {
				continue
			}

			oppAvg, ok := seasonAvg[opp]
			if !ok {
				oppAvg = leagueAvg
			}
			adjusted := w.scores[rid] - weeklyAvg + (oppAvg-leagueAvg)/2

			pct := 0.0
			if weeklyAvg > 0 {
				pct = adjusted / weeklyAvg * 100
			}
			weekly[rid] = append(weekly[rid], pct)
		}
	}

	ratings := make([]models.Rating, 0, len(weekly))
	for _, rid := range sortedKeys(weekly) {
		identity, _ := rosters.Lookup(rid)
		ratings = append(ratings, models.Rating{
			RosterID: rid,
			TeamName: identity.DisplayName,
			Avatar:   identity.AvatarURL(),
			FDVOA:    mean(weekly[rid]),
		})
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].FDVOA > ratings[j].FDVOA
	})
	return ratings
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
