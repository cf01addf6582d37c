package models

import "time"

const (
	// FinalWeek is the last regular-season week; past seasons are always
	// analysed as of this week.
	FinalWeek = 17

	AvatarBaseURL     = "https://sleepercdn.com/avatars/thumbs/"
	PlaceholderAvatar = "https://placehold.co/50x50/EBF4FF/76A9FA?text=?"

	UnknownTeam = "Unknown"
)

// AvatarURL expands a Sleeper avatar id, using the placeholder image when the
// user never set one.
func AvatarURL(avatar string) string {
	if avatar == "" {
		return PlaceholderAvatar
	}
	return AvatarBaseURL + avatar
}

type TeamIdentity struct {
	DisplayName string
	Avatar      string
}

// AvatarURL is the display URL of the identity's avatar.
func (t TeamIdentity) AvatarURL() string {
	return AvatarURL(t.Avatar)
}

// RosterMap is keyed by roster id and is the join key for every per-team
// structure of a season.
type RosterMap map[int]TeamIdentity

// Lookup never fails: unknown roster ids resolve to the Unknown identity.
func (m RosterMap) Lookup(rosterID int) (TeamIdentity, bool) {
	identity, ok := m[rosterID]
	if !ok {
		return TeamIdentity{DisplayName: UnknownTeam}, false
	}
	return identity, true
}

type TeamStanding struct {
	RosterID  int
	TeamName  string
	Avatar    string
	Wins      int
	Losses    int
	PointsFor float64
}

type SeasonPhase string

const (
	PhasePre     SeasonPhase = "pre"
	PhaseRegular SeasonPhase = "regular"
	PhasePost    SeasonPhase = "post"
)

// LeagueSnapshot is what the loader produces for one season.
type LeagueSnapshot struct {
	LeagueID        string
	Season          string
	Standings       []TeamStanding
	Rosters         RosterMap
	Starters        map[int][]string
	CurrentWeek     int
	Phase           SeasonPhase
	RosterPositions []string
}

type WeekMatchups struct {
	Week    int
	Entries []MatchupEntry
}

type Rating struct {
	RosterID int     `json:"-"`
	TeamName string  `json:"Team"`
	Avatar   string  `json:"Avatar"`
	FDVOA    float64 `json:"F-DVOA (%)"`
}

type PowerRanking struct {
	Rank       int     `json:"Rank"`
	RosterID   int     `json:"-"`
	TeamName   string  `json:"Team"`
	Avatar     string  `json:"Avatar"`
	PowerScore float64 `json:"Power Score"`
}

type AnalysisType string

const (
	AnalysisScores      AnalysisType = "scores"
	AnalysisProjections AnalysisType = "projections"
	AnalysisAverages    AnalysisType = "averages"
)

// SeasonReport is the per-season snapshot read by the front end.
type SeasonReport struct {
	PowerRankings   []PowerRanking       `json:"power_rankings"`
	FDVOA           []Rating             `json:"fdvoa"`
	Rosters         []RosterRow          `json:"rosters"`
	ProjectionWeek  int                  `json:"projection_week"`
	AnalysisType    AnalysisType         `json:"analysis_type"`
	IsCurrentSeason bool                 `json:"is_current_season"`
	WeeklyScores    map[string][]float64 `json:"weekly_scores,omitempty"`
	LastUpdated     string               `json:"lastUpdated"`
}

type SiteConfig struct {
	Years       []string `json:"years"`
	LogoURL     string   `json:"logoUrl"`
	LastUpdated string   `json:"lastUpdated"`
}

// TimestampLayout is the UTC layout of every lastUpdated field.
const TimestampLayout = "2006-01-02 15:04:05"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
