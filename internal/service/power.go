package service

import (
	"sort"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// SeasonWeeks is the length of the blend schedule, not the league's own
// regular season.
const SeasonWeeks = 17

// BlendWeight is the share of the power score carried by F-DVOA. It grows
// linearly from 0 in week 1 to 1 after week 18.
func BlendWeight(currentWeek int) float64 {
	if currentWeek <= 1 {
		return 0
	}
	w := float64(currentWeek-1) / SeasonWeeks
	if w > 1 {
		return 1
	}
	return w
}

// ComputePowerRankings blends normalized points-for with normalized F-DVOA.
// Without ratings the ranking is points-for alone. Teams with no rating are
// left out of the blended ranking.
func ComputePowerRankings(standings []models.TeamStanding, ratings []models.Rating, currentWeek int) []models.PowerRanking {
	if len(standings) == 0 {
		return []models.PowerRanking{}
	}

	if len(ratings) == 0 {
		teams := make([]models.TeamStanding, len(standings))
		copy(teams, standings)
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].PointsFor > teams[j].PointsFor
		})

		pf := make([]float64, len(teams))
		for i, t := range teams {
			pf[i] = t.PointsFor
		}
		scores := normalize(pf)

		rankings := make([]models.PowerRanking, len(teams))
		for i, t := range teams {
			rankings[i] = models.PowerRanking{
				Rank:       i + 1,
				RosterID:   t.RosterID,
				TeamName:   t.TeamName,
				Avatar:     t.Avatar,
				PowerScore: scores[i],
			}
		}
		return rankings
	}

	byRoster := make(map[int]float64, len(ratings))
	for _, r := range ratings {
		byRoster[r.RosterID] = r.FDVOA
	}

	var joined []models.TeamStanding
	var pf, fdvoa []float64
	for _, t := range standings {
		rating, ok := byRoster[t.RosterID]
		if !ok {
			continue
		}
		joined = append(joined, t)
		pf = append(pf, t.PointsFor)
		fdvoa = append(fdvoa, rating)
	}
	if len(joined) == 0 {
		return []models.PowerRanking{}
	}

	pfNorm := normalize(pf)
	fdvoaNorm := normalize(fdvoa)
	weight := BlendWeight(currentWeek)

	rankings := make([]models.PowerRanking, len(joined))
	for i, t := range joined {
		rankings[i] = models.PowerRanking{
			RosterID:   t.RosterID,
			TeamName:   t.TeamName,
			Avatar:     t.Avatar,
			PowerScore: pfNorm[i]*(1-weight) + fdvoaNorm[i]*weight,
		}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].PowerScore > rankings[j].PowerScore
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// normalize min-max scales values to [0,1]; a zero range maps everything to 0.5.
func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	for i, v := range values {
		if hi-lo > 0 {
			out[i] = (v - lo) / (hi - lo)
		} else {
			out[i] = 0.5
		}
	}
	return out
}
