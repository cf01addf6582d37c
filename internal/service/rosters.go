package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

type Regime string

const (
	RegimeProjected  Regime = "projected"
	RegimeLive       Regime = "live"
	RegimeHistorical Regime = "historical"
)

// SelectRegime picks how a week's rosters are summarized: completed seasons
// are averaged, week 1 of the current season is pure projection and later
// weeks blend live scoring into projections.
func SelectRegime(currentSeason bool, week int) Regime {
	switch {
	case !currentSeason:
		return RegimeHistorical
	case week <= 1:
		return RegimeProjected
	default:
		return RegimeLive
	}
}

func (r Regime) AnalysisType() models.AnalysisType {
	switch r {
	case RegimeProjected:
		return models.AnalysisProjections
	case RegimeHistorical:
		return models.AnalysisAverages
	default:
		return models.AnalysisScores
	}
}

type RosterRequest struct {
	League models.LeagueSnapshot
	Week   int
	Regime Regime
}

// AggregateRosters summarizes every team's starters by position under the
// requested regime. Without the player directory nothing can be bucketed and
// the result is empty; any narrower failure only zeroes its own slice.
func (s *FantasyService) AggregateRosters(ctx context.Context, req RosterRequest) models.Result[[]models.RosterRow] {
	players := s.api.Players(ctx)
	if !players.OK() {
		return models.Empty[[]models.RosterRow](players.Status, players.Err)
	}

	var res models.Result[[]models.RosterRow]
	switch req.Regime {
	case RegimeHistorical:
		res = s.historicalRows(ctx, req.League, players.Value)
	case RegimeProjected:
		res = s.projectedRows(ctx, req.League, req.Week, players.Value)
	default:
		res = s.liveRows(ctx, req.League, req.Week, players.Value)
	}

	sort.SliceStable(res.Value, func(i, j int) bool {
		return res.Value[i].Total() > res.Value[j].Total()
	})
	return res
}

func (s *FantasyService) projectedRows(ctx context.Context, league models.LeagueSnapshot, week int, players map[string]models.Player) models.Result[[]models.RosterRow] {
	projections := s.api.Projections(ctx, league.Phase, league.Season, week)

	rows := make([]models.RosterRow, 0, len(league.Standings))
	for _, team := range league.Standings {
		starters := league.Starters[team.RosterID]
		if len(starters) == 0 {
			continue
		}

		row := models.ProjectedRosterRow{Team: team.TeamName, Avatar: team.Avatar}
		var lineup []lineupPlayer
		for _, pid := range starters {
			player, ok := players[pid]
			if !ok {
				continue
			}
			projected := projections.Value[pid].Points()
			if pos, ok := models.ParsePosition(player.Position); ok {
				row.Add(pos, projected)
				lineup = append(lineup, lineupPlayer{name: player.Name(), pos: pos, points: projected})
			}
		}
		row.TotalPoints = row.Sum()
		row.Lineup = AssignLineup(league.RosterPositions, lineup)
		rows = append(rows, row)
	}

	return withStatus(rows, projections.Status, projections.Err)
}

func (s *FantasyService) liveRows(ctx context.Context, league models.LeagueSnapshot, week int, players map[string]models.Player) models.Result[[]models.RosterRow] {
	projections := s.api.Projections(ctx, league.Phase, league.Season, week)
	matchups := s.api.WeekMatchups(ctx, league.LeagueID, week)

	entries := make(map[int]models.MatchupEntry, len(matchups.Value.Entries))
	for _, e := range matchups.Value.Entries {
		entries[e.RosterID] = e
	}

	rows := make([]models.RosterRow, 0, len(league.Standings))
	for _, team := range league.Standings {
		entry, ok := entries[team.RosterID]
		starters := entry.Starters
		if !ok || len(starters) == 0 {
			starters = league.Starters[team.RosterID]
		}
		if len(starters) == 0 {
			continue
		}

		row := models.LiveRosterRow{Team: team.TeamName, Avatar: team.Avatar}
		var lineup []lineupPlayer
		for _, pid := range starters {
			player, ok := players[pid]
			if !ok {
				continue
			}
			pos, ok := models.ParsePosition(player.Position)
			if !ok {
				continue
			}

			projected := projections.Value[pid].Points()
			// Sleeper lists every starter in players_points with 0 until they
			// score, so a starter who finishes at exactly 0 keeps their projection.
			live, has := entry.PlayersPoints[pid]
			reported := has && live != 0
			row.Record(pos, projected, live, reported)

			shown := projected
			if reported {
				shown = live
			}
			lineup = append(lineup, lineupPlayer{name: player.Name(), pos: pos, points: shown})
		}
		row.Settle()

		for _, pos := range models.Positions {
			bucket := row.Get(pos)
			row.TotalPoints += bucket.Blended
			row.ProjectedTotal += bucket.Projected
			row.LiveTotal += bucket.Live
		}
		row.Lineup = AssignLineup(league.RosterPositions, lineup)
		rows = append(rows, row)
	}

	if !matchups.OK() {
		slog.Error("Live scores unavailable, showing projections", "season", league.Season, "week", week, "reason", matchups.Reason())
		return withStatus(rows, matchups.Status, matchups.Err)
	}
	return withStatus(rows, projections.Status, projections.Err)
}

func (s *FantasyService) historicalRows(ctx context.Context, league models.LeagueSnapshot, players map[string]models.Player) models.Result[[]models.RosterRow] {
	sums := make(map[int]*models.PositionTotals, len(league.Standings))
	weeks := make(map[int]int, len(league.Standings))

	for week := 1; week <= models.FinalWeek; week++ {
		res := s.api.WeekMatchups(ctx, league.LeagueID, week)
		if !res.OK() {
			continue
		}
		for _, entry := range res.Value.Entries {
			if len(entry.Starters) == 0 {
				continue
			}
			var weekly models.PositionTotals
			for i, pid := range entry.Starters {
				player, ok := players[pid]
				if !ok {
					continue
				}
				if pos, ok := models.ParsePosition(player.Position); ok {
					weekly.Add(pos, entry.StarterPoints(i))
				}
			}

			if sums[entry.RosterID] == nil {
				sums[entry.RosterID] = &models.PositionTotals{}
			}
			for _, pos := range models.Positions {
				sums[entry.RosterID].Add(pos, weekly.Get(pos))
			}
			weeks[entry.RosterID]++
		}
	}

	rows := make([]models.RosterRow, 0, len(league.Standings))
	for _, team := range league.Standings {
		n := weeks[team.RosterID]
		if n == 0 {
			continue
		}
		row := models.HistoricalAverageRosterRow{Team: team.TeamName, Avatar: team.Avatar, WeeksCounted: n}
		for _, pos := range models.Positions {
			row.Add(pos, sums[team.RosterID].Get(pos)/float64(n))
		}
		row.TotalPoints = row.Sum()
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return models.Result[[]models.RosterRow]{Value: rows, Status: models.StatusNoData}
	}
	return models.Ok(rows)
}

// WeeklyScores is each team's points for weeks 1 through 17, zero where a
// week has no data. Used for distribution charts of completed seasons.
func (s *FantasyService) WeeklyScores(ctx context.Context, leagueID string, rosters models.RosterMap) map[string][]float64 {
	series := make(map[string][]float64)
	for week := 1; week <= models.FinalWeek; week++ {
		res := s.api.WeekMatchups(ctx, leagueID, week)
		for _, entry := range res.Value.Entries {
			identity, ok := rosters.Lookup(entry.RosterID)
			if !ok || identity.DisplayName == models.UnknownTeam || entry.Points == nil {
				continue
			}
			if series[identity.DisplayName] == nil {
				series[identity.DisplayName] = make([]float64, models.FinalWeek)
			}
			series[identity.DisplayName][week-1] = *entry.Points
		}
	}
	return series
}

// withStatus keeps rows built from partial data and records why they are partial.
func withStatus(rows []models.RosterRow, status models.Status, err error) models.Result[[]models.RosterRow] {
	if status == models.StatusUpstreamUnavailable {
		return models.Result[[]models.RosterRow]{Value: rows, Status: status, Err: err}
	}
	return models.Ok(rows)
}
