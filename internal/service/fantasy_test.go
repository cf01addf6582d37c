package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy/fantasytest"
	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/models"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

func testRosters() []models.Roster {
	return []models.Roster{
		{RosterID: 1, OwnerID: "u1", Starters: []string{"qb1", "rb1"}, Settings: models.RosterSettings{Wins: 2, Fpts: 1000, FptsDecimal: 50}},
		{RosterID: 2, OwnerID: "u2", Starters: []string{"wr1", "te1"}, Settings: models.RosterSettings{Losses: 2, Fpts: 900}},
		{RosterID: 3},
	}
}

func dynastySource() *fantasytest.Source {
	users := []models.User{
		{UserID: "u1", DisplayName: "Alice", Avatar: "abc"},
		{UserID: "u2", DisplayName: "Bob"},
	}
	played := func(a, b float64) []models.MatchupEntry {
		entries := fantasytest.Pair(1, 1, a, 2, b)
		entries[0].Starters, entries[0].StartersPoints = []string{"qb1", "rb1"}, []float64{a / 2, a / 2}
		entries[1].Starters, entries[1].StartersPoints = []string{"wr1", "te1"}, []float64{b / 2, b / 2}
		return entries
	}

	return &fantasytest.Source{
		Leagues: map[string]*models.League{
			"L25": {
				LeagueID:         "L25",
				Name:             "Dynasty Bros",
				Season:           "2025",
				SeasonType:       "regular",
				PreviousLeagueID: "L24",
				RosterPositions:  []string{"QB", "RB", "WR", "TE", "BN"},
				Settings:         models.LeagueSettings{Leg: 1},
			},
			"L24": {LeagueID: "L24", Name: "Dynasty Bros", Season: "2024", PreviousLeagueID: "0"},
		},
		Rosters: map[string][]models.Roster{"L25": testRosters(), "L24": testRosters()},
		Users:   map[string][]models.User{"L25": users, "L24": users},
		UserLeagues: map[string][]models.League{
			"u1/2025": {
				{LeagueID: "OTHER", Name: "Work League"},
				{LeagueID: "L25", Name: "Dynasty Bros"},
			},
		},
		Matchups: map[string]map[int][]models.MatchupEntry{
			"L24": {1: played(120, 100), 2: played(90, 110), 3: played(105, 95)},
		},
		State:     &models.NFLState{Week: 1, Season: "2025"},
		PlayerDir: testPlayers(),
		Projected: map[int][]models.Projection{1: testProjections()},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Sleeper: config.Sleeper{UserID: "u1", LeagueName: "dynasty bros", HistoryYears: 3},
		Output:  config.Output{LogoURL: "https://example.com/logo.png"},
	}
}

func TestBuildSeason_CurrentWeekOne(t *testing.T) {
	svc := newTestService(dynastySource())

	res := svc.BuildSeason(context.Background(), "2025", "L25")
	if !res.OK() {
		t.Fatalf("status = %s", res.Reason())
	}
	report := res.Value

	if !report.IsCurrentSeason {
		t.Error("2025 should be the current season")
	}
	if report.AnalysisType != models.AnalysisProjections || report.ProjectionWeek != 1 {
		t.Errorf("analysis = %s week %d", report.AnalysisType, report.ProjectionWeek)
	}
	if len(report.PowerRankings) != 2 || report.PowerRankings[0].TeamName != "Alice" || report.PowerRankings[0].PowerScore != 1 {
		t.Errorf("rankings = %+v", report.PowerRankings)
	}
	if report.PowerRankings[0].Avatar != models.AvatarBaseURL+"abc" {
		t.Errorf("avatar = %s", report.PowerRankings[0].Avatar)
	}
	if len(report.FDVOA) != 2 {
		t.Fatalf("placeholder ratings = %+v", report.FDVOA)
	}
	for _, r := range report.FDVOA {
		if r.FDVOA != 0 {
			t.Errorf("placeholder %s = %v, want 0", r.TeamName, r.FDVOA)
		}
	}
	if report.WeeklyScores != nil {
		t.Errorf("current season should not carry weekly scores")
	}
	if report.LastUpdated != "2025-10-12 09:00:00" {
		t.Errorf("lastUpdated = %s", report.LastUpdated)
	}
	if _, ok := report.Rosters[0].(models.ProjectedRosterRow); !ok {
		t.Errorf("row type = %T", report.Rosters[0])
	}
}

func TestBuildSeason_Completed(t *testing.T) {
	svc := newTestService(dynastySource())

	res := svc.BuildSeason(context.Background(), "2024", "L24")
	if !res.OK() {
		t.Fatalf("status = %s", res.Reason())
	}
	report := res.Value

	if report.IsCurrentSeason {
		t.Error("2024 should not be the current season")
	}
	if report.AnalysisType != models.AnalysisAverages || report.ProjectionWeek != models.FinalWeek {
		t.Errorf("analysis = %s week %d", report.AnalysisType, report.ProjectionWeek)
	}
	if len(report.FDVOA) != 2 || report.FDVOA[0].TeamName != "Alice" || report.FDVOA[0].FDVOA <= 0 {
		t.Errorf("ratings = %+v", report.FDVOA)
	}
	if len(report.WeeklyScores["Alice"]) != models.FinalWeek || report.WeeklyScores["Bob"][1] != 110 {
		t.Errorf("weekly scores = %v", report.WeeklyScores)
	}

	alice := report.Rosters[0].(models.HistoricalAverageRosterRow)
	if alice.WeeksCounted != 3 || alice.TotalPoints != 105 {
		t.Errorf("alice = %+v", alice)
	}
}

func TestBuildSeason_UnownedRostersNotRated(t *testing.T) {
	src := dynastySource()
	src.Rosters["L24"] = append(src.Rosters["L24"], models.Roster{RosterID: 4})
	for week := 1; week <= 3; week++ {
		src.Matchups["L24"][week] = append(src.Matchups["L24"][week], fantasytest.Pair(2, 3, 70, 4, 60)...)
	}
	svc := newTestService(src)

	res := svc.BuildSeason(context.Background(), "2024", "L24")
	if !res.OK() {
		t.Fatalf("status = %s", res.Reason())
	}
	report := res.Value

	if len(report.FDVOA) != 2 {
		t.Fatalf("got %d ratings, want 2: %+v", len(report.FDVOA), report.FDVOA)
	}
	for _, r := range report.FDVOA {
		if r.TeamName == models.UnknownTeam {
			t.Errorf("unowned roster rated: %+v", r)
		}
	}
	if len(report.PowerRankings) != 2 {
		t.Errorf("rankings = %+v", report.PowerRankings)
	}
	if _, ok := report.WeeklyScores[models.UnknownTeam]; ok {
		t.Errorf("weekly scores carry unowned rosters: %v", report.WeeklyScores)
	}
}

func TestBuildSeason_NoRosters(t *testing.T) {
	src := dynastySource()
	src.Rosters["L24"] = nil
	svc := newTestService(src)

	if res := svc.BuildSeason(context.Background(), "2024", "L24"); res.Status != models.StatusNoData {
		t.Errorf("status = %s, want no_data", res.Status)
	}
}

func TestRun_WritesSnapshots(t *testing.T) {
	dir := t.TempDir()
	store := snapshot.NewStore(dir)
	svc := newTestServiceWith(dynastySource(), testConfig(), store)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.RunID == "" || summary.Latest != "2025" {
		t.Errorf("summary = %+v", summary)
	}
	if !reflect.DeepEqual(summary.Written, []string{"2025", "2024"}) || len(summary.Skipped) != 0 {
		t.Errorf("written %v skipped %v", summary.Written, summary.Skipped)
	}

	cfg, err := store.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	want := models.SiteConfig{
		Years:       []string{"2025", "2024"},
		LogoURL:     "https://example.com/logo.png",
		LastUpdated: "2025-10-12 09:00:00",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}

	latest, err := store.LatestSeason()
	if err != nil {
		t.Fatalf("LatestSeason: %v", err)
	}
	if latest.Season != "2025" || latest.AnalysisType != models.AnalysisProjections {
		t.Errorf("latest = %+v", latest)
	}

	b, err := os.ReadFile(filepath.Join(dir, "data_2024.json"))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"power_rankings", "fdvoa", "rosters", "projection_week", "analysis_type", "is_current_season", "weekly_scores", "lastUpdated"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("data_2024.json missing %q", key)
		}
	}
}

func TestRun_SkipsEmptySeason(t *testing.T) {
	dir := t.TempDir()
	src := dynastySource()
	src.Rosters["L24"] = nil
	svc := newTestServiceWith(src, testConfig(), snapshot.NewStore(dir))

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(summary.Skipped, []string{"2024"}) {
		t.Errorf("skipped = %v", summary.Skipped)
	}
	if _, err := os.Stat(filepath.Join(dir, "data_2024.json")); !os.IsNotExist(err) {
		t.Errorf("data_2024.json should not exist, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data_2025.json")); err != nil {
		t.Errorf("data_2025.json: %v", err)
	}
}

func TestRun_ConfiguredLeagueID(t *testing.T) {
	src := dynastySource()
	cfg := testConfig()
	cfg.Sleeper.LeagueID = "L25"
	cfg.Sleeper.HistoryYears = 1
	svc := newTestServiceWith(src, cfg, snapshot.NewStore(t.TempDir()))

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(summary.Written, []string{"2025"}) {
		t.Errorf("written = %v", summary.Written)
	}
	if src.Calls("user_leagues/u1") != 0 {
		t.Errorf("configured league id should skip discovery")
	}
}

func TestRun_NoLeague(t *testing.T) {
	src := dynastySource()
	src.UserLeagues = nil
	svc := newTestServiceWith(src, testConfig(), snapshot.NewStore(t.TempDir()))

	_, err := svc.Run(context.Background())
	if !errors.Is(err, fantasy.ErrLeagueNotFound) {
		t.Errorf("err = %v, want ErrLeagueNotFound", err)
	}
}
