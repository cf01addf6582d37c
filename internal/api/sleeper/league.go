package sleeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// ErrNotFound is returned when Sleeper answers 200 with a null body, which is
// how it reports unknown league ids.
var ErrNotFound = errors.New("not found")

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var league *models.League
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s", leagueID), &league); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	if league == nil || league.LeagueID == "" {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, ErrNotFound)
	}
	return league, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}
	return rosters, nil
}

func (a *API) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/users", leagueID), &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupEntry, error) {
	var matchups []models.MatchupEntry
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), &matchups); err != nil {
		return nil, fmt.Errorf("fetching matchups for week %d: %w", week, err)
	}
	return matchups, nil
}

func (a *API) GetUserLeagues(ctx context.Context, userID, season string) ([]models.League, error) {
	var leagues []models.League
	if err := a.client.Get(ctx, fmt.Sprintf("/user/%s/leagues/nfl/%s", userID, season), &leagues); err != nil {
		return nil, fmt.Errorf("fetching leagues for user %s: %w", userID, err)
	}
	return leagues, nil
}

func (a *API) GetNFLState(ctx context.Context) (*models.NFLState, error) {
	var state models.NFLState
	if err := a.client.Get(ctx, "/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("fetching nfl state: %w", err)
	}
	return &state, nil
}

// GetPlayers downloads the full player directory keyed by player id. The
// payload is several megabytes; callers cache it.
func (a *API) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	var players map[string]models.Player
	if err := a.client.Get(ctx, "/players/nfl", &players); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	for id, p := range players {
		if p.PlayerID == "" {
			p.PlayerID = id
			players[id] = p
		}
	}
	return players, nil
}

func (a *API) GetProjections(ctx context.Context, phase models.SeasonPhase, season string, week int) ([]models.Projection, error) {
	if phase == "" {
		phase = models.PhaseRegular
	}
	url := fmt.Sprintf("%s/%s/%s/%d", a.client.Config.ProjectionsURL, phase, season, week)

	var projections []models.Projection
	if err := a.client.GetURL(ctx, url, &projections); err != nil {
		return nil, fmt.Errorf("fetching projections for week %d: %w", week, err)
	}
	return projections, nil
}
