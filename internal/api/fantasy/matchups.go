package fantasy

import (
	"context"
	"log/slog"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// WeekMatchups returns one week's matchup lines. Missing weeks are normal
// (byes, future weeks, outages) and come back empty with a reason.
func (a *API) WeekMatchups(ctx context.Context, leagueID string, week int) models.Result[models.WeekMatchups] {
	if entries, ok := a.repo.GetMatchups(leagueID, week); ok {
		return weekResult(week, entries)
	}

	entries, err := a.source.GetMatchups(ctx, leagueID, week)
	if err != nil {
		slog.Error("Error fetching matchups", "league_id", leagueID, "week", week, "error", err)
		return models.Result[models.WeekMatchups]{
			Value:  models.WeekMatchups{Week: week},
			Status: models.StatusUpstreamUnavailable,
			Err:    err,
		}
	}

	a.repo.SaveMatchups(leagueID, week, entries)
	return weekResult(week, entries)
}

func weekResult(week int, entries []models.MatchupEntry) models.Result[models.WeekMatchups] {
	wm := models.WeekMatchups{Week: week, Entries: entries}
	if len(entries) == 0 {
		return models.Result[models.WeekMatchups]{Value: wm, Status: models.StatusNoData}
	}
	return models.Ok(wm)
}

// History collects weeks from..to inclusive, skipping weeks without data.
func (a *API) History(ctx context.Context, leagueID string, from, to int) []models.WeekMatchups {
	var weeks []models.WeekMatchups
	for week := from; week <= to; week++ {
		res := a.WeekMatchups(ctx, leagueID, week)
		if !res.OK() {
			continue
		}
		weeks = append(weeks, res.Value)
	}
	return weeks
}

// ResetRun clears per-run memoized data.
func (a *API) ResetRun() {
	a.repo.ResetMatchups()
}
