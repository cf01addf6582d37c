// Package fantasy turns raw Sleeper responses into the league structures the
// analytics pipeline consumes. Upstream failures never escape this package as
// errors on the per-season paths; they come back as tagged results.
package fantasy

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/omarshaarawi/sleeperstats/internal/models"
	"github.com/omarshaarawi/sleeperstats/internal/repository/memory"
)

const playersMaxAge = 24 * time.Hour

// Source is the read-only upstream. *sleeper.API satisfies it.
type Source interface {
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetUsers(ctx context.Context, leagueID string) ([]models.User, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error)
	GetUserLeagues(ctx context.Context, userID, season string) ([]models.League, error)
	GetNFLState(ctx context.Context) (*models.NFLState, error)
	GetPlayers(ctx context.Context) (map[string]models.Player, error)
	GetProjections(ctx context.Context, phase models.SeasonPhase, season string, week int) ([]models.Projection, error)
}

type API struct {
	source Source
	repo   *memory.Repository
	now    func() time.Time
}

func NewAPI(source Source, repo *memory.Repository) *API {
	return &API{source: source, repo: repo, now: time.Now}
}

// SetClock replaces the wall clock used to decide which season is current.
func (a *API) SetClock(now func() time.Time) {
	a.now = now
}

func (a *API) Now() time.Time {
	return a.now()
}

func (a *API) CurrentSeason() string {
	return strconv.Itoa(a.now().Year())
}

func (a *API) IsCurrentSeason(season string) bool {
	return season == a.CurrentSeason()
}

// LoadLeague builds the standings table and roster identity map for one
// season. Past seasons are pinned to the final regular-season week.
func (a *API) LoadLeague(ctx context.Context, leagueID, season string) models.Result[models.LeagueSnapshot] {
	league, err := a.source.GetLeague(ctx, leagueID)
	if err != nil {
		slog.Error("Error loading league", "season", season, "league_id", leagueID, "error", err)
		return models.Empty[models.LeagueSnapshot](models.StatusUpstreamUnavailable, err)
	}

	rosters, err := a.source.GetRosters(ctx, leagueID)
	if err != nil {
		slog.Error("Error loading rosters", "season", season, "league_id", leagueID, "error", err)
		return models.Empty[models.LeagueSnapshot](models.StatusUpstreamUnavailable, err)
	}

	users, err := a.source.GetUsers(ctx, leagueID)
	if err != nil {
		slog.Error("Error loading users", "season", season, "league_id", leagueID, "error", err)
		return models.Empty[models.LeagueSnapshot](models.StatusUpstreamUnavailable, err)
	}

	if len(rosters) == 0 {
		return models.Empty[models.LeagueSnapshot](models.StatusNoData, nil)
	}

	userMap := make(map[string]models.User, len(users))
	for _, user := range users {
		userMap[user.UserID] = user
	}

	snapshot := models.LeagueSnapshot{
		LeagueID:        leagueID,
		Season:          season,
		Rosters:         make(models.RosterMap, len(rosters)),
		Starters:        make(map[int][]string, len(rosters)),
		Phase:           seasonPhase(league.SeasonType),
		RosterPositions: league.RosterPositions,
	}

	for _, roster := range rosters {
		user, ok := userMap[roster.OwnerID]
		if !ok || roster.OwnerID == "" {
			snapshot.Rosters[roster.RosterID] = models.TeamIdentity{DisplayName: models.UnknownTeam}
			continue
		}

		identity := models.TeamIdentity{DisplayName: user.DisplayName, Avatar: user.Avatar}
		snapshot.Rosters[roster.RosterID] = identity
		snapshot.Starters[roster.RosterID] = roster.Starters
		snapshot.Standings = append(snapshot.Standings, models.TeamStanding{
			RosterID:  roster.RosterID,
			TeamName:  identity.DisplayName,
			Avatar:    identity.AvatarURL(),
			Wins:      roster.Settings.Wins,
			Losses:    roster.Settings.Losses,
			PointsFor: roster.Settings.PointsFor(),
		})
	}

	if len(snapshot.Standings) == 0 {
		return models.Result[models.LeagueSnapshot]{Value: snapshot, Status: models.StatusMissingJoin}
	}

	snapshot.CurrentWeek = models.FinalWeek
	if a.IsCurrentSeason(season) {
		snapshot.CurrentWeek = league.Settings.Leg
		if snapshot.CurrentWeek < 1 {
			snapshot.CurrentWeek = 1
		}
	}

	return models.Ok(snapshot)
}

func seasonPhase(seasonType string) models.SeasonPhase {
	switch models.SeasonPhase(seasonType) {
	case models.PhasePre, models.PhasePost:
		return models.SeasonPhase(seasonType)
	default:
		return models.PhaseRegular
	}
}

// LiveWeek is the NFL's current week, used as the analysis week of the
// in-progress season.
func (a *API) LiveWeek(ctx context.Context) models.Result[int] {
	state, err := a.source.GetNFLState(ctx)
	if err != nil {
		slog.Error("Error fetching NFL state", "error", err)
		return models.Empty[int](models.StatusUpstreamUnavailable, err)
	}
	week := state.Week
	if week < 1 {
		week = 1
	}
	return models.Ok(week)
}
