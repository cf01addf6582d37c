package fantasy

import (
	"context"
	"log/slog"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// Players returns the league-wide player directory, cached for a day.
func (a *API) Players(ctx context.Context) models.Result[map[string]models.Player] {
	if players := a.repo.GetPlayers(playersMaxAge); players != nil {
		return models.Ok(players)
	}

	players, err := a.source.GetPlayers(ctx)
	if err != nil {
		slog.Error("Error fetching player directory", "error", err)
		return models.Empty[map[string]models.Player](models.StatusUpstreamUnavailable, err)
	}
	if len(players) == 0 {
		return models.Empty[map[string]models.Player](models.StatusNoData, nil)
	}

	a.repo.SavePlayers(players)
	return models.Ok(players)
}

// Projections returns the projection feed keyed by player id. A failed feed
// is reported but callers may still proceed with zero projections.
func (a *API) Projections(ctx context.Context, phase models.SeasonPhase, season string, week int) models.Result[map[string]models.Projection] {
	projections, err := a.source.GetProjections(ctx, phase, season, week)
	if err != nil {
		slog.Error("Error fetching projections", "season", season, "week", week, "error", err)
		return models.Result[map[string]models.Projection]{
			Value:  map[string]models.Projection{},
			Status: models.StatusUpstreamUnavailable,
			Err:    err,
		}
	}

	byPlayer := make(map[string]models.Projection, len(projections))
	for _, p := range projections {
		byPlayer[p.PlayerID] = p
	}
	if len(byPlayer) == 0 {
		return models.Result[map[string]models.Projection]{Value: byPlayer, Status: models.StatusNoData}
	}
	return models.Ok(byPlayer)
}
