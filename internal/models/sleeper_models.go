package models

import "strings"

type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Season           string         `json:"season"`
	SeasonType       string         `json:"season_type"`
	Status           string         `json:"status"`
	PreviousLeagueID string         `json:"previous_league_id"`
	RosterPositions  []string       `json:"roster_positions"`
	Settings         LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	Leg              int `json:"leg"`
	NumTeams         int `json:"num_teams"`
	PlayoffWeekStart int `json:"playoff_week_start"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Starters []string       `json:"starters"`
	Players  []string       `json:"players"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

// PointsFor joins the integer and hundredths parts Sleeper reports separately.
func (s RosterSettings) PointsFor() float64 {
	return float64(s.Fpts) + float64(s.FptsDecimal)/100
}

type User struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

// MatchupEntry is one roster's line in a week's matchups response. MatchupID
// is zero when Sleeper sends null (bye or unscheduled weeks) and Points is nil
// when the roster has not reported a score.
type MatchupEntry struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      int                `json:"matchup_id"`
	Points         *float64           `json:"points"`
	Starters       []string           `json:"starters"`
	StartersPoints []float64          `json:"starters_points"`
	PlayersPoints  map[string]float64 `json:"players_points"`
}

// StarterPoints returns the points credited to the starter at index i, or
// zero when the parallel points slice is shorter than the starters slice.
func (m MatchupEntry) StarterPoints(i int) float64 {
	if i < 0 || i >= len(m.StartersPoints) {
		return 0
	}
	return m.StartersPoints[i]
}

type NFLState struct {
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
	Leg         int    `json:"leg"`
	Season      string `json:"season"`
	SeasonType  string `json:"season_type"`
}

type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	FantasyPositions []string `json:"fantasy_positions"`
}

// Name falls back to first and last name, which is all team defenses carry.
func (p Player) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.PlayerID
	}
	return name
}

type Projection struct {
	PlayerID string             `json:"player_id"`
	Stats    map[string]float64 `json:"stats"`
}

// Points prefers full PPR, then half PPR, then standard scoring.
func (p Projection) Points() float64 {
	for _, key := range []string{"pts_ppr", "pts_half_ppr", "pts_std"} {
		if v, ok := p.Stats[key]; ok && v != 0 {
			return v
		}
	}
	return 0
}
