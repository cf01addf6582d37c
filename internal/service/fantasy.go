package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/models"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

type FantasyService struct {
	api   *fantasy.API
	cfg   *config.Config
	store *snapshot.Store
}

func NewFantasyService(api *fantasy.API, cfg *config.Config, store *snapshot.Store) *FantasyService {
	return &FantasyService{api: api, cfg: cfg, store: store}
}

// RunSummary reports what one run produced.
type RunSummary struct {
	RunID   string
	Written []string
	Skipped []string
	Reports map[string]models.SeasonReport
	Latest  string
}

// Run discovers the league's seasons, writes config.json and one snapshot
// per season. Only failing to resolve the starting league is fatal; a season
// that cannot be loaded is skipped.
func (s *FantasyService) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{RunID: uuid.NewString(), Reports: make(map[string]models.SeasonReport)}
	log := slog.With("run_id", summary.RunID)
	start := time.Now()
	log.Info("Starting run")

	s.api.ResetRun()

	startID := s.cfg.Sleeper.LeagueID
	if startID == "" {
		id, err := s.api.ResolveStartLeague(ctx, s.cfg.Sleeper.UserID, s.cfg.Sleeper.LeagueName, s.api.CurrentSeason())
		if err != nil {
			return nil, err
		}
		startID = id
	}
	log.Info("Found current season league", "league_id", startID)

	history, err := s.api.LeagueHistory(ctx, startID, s.cfg.Sleeper.HistoryYears)
	if err != nil {
		return nil, err
	}

	years := make([]string, len(history))
	for i, h := range history {
		years[i] = h.Season
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	summary.Latest = years[0]

	siteConfig := models.SiteConfig{
		Years:       years,
		LogoURL:     s.cfg.Output.LogoURL,
		LastUpdated: models.FormatTimestamp(s.api.Now()),
	}
	if err := s.store.WriteConfig(siteConfig); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	for _, h := range history {
		log.Info("Generating season", "season", h.Season, "league_id", h.LeagueID)
		res := s.BuildSeason(ctx, h.Season, h.LeagueID)
		if !res.OK() {
			log.Error("No standings or roster data found, skipping season", "season", h.Season, "reason", res.Reason())
			summary.Skipped = append(summary.Skipped, h.Season)
			continue
		}
		if err := s.store.WriteSeason(h.Season, res.Value); err != nil {
			return nil, fmt.Errorf("writing season %s: %w", h.Season, err)
		}
		summary.Written = append(summary.Written, h.Season)
		summary.Reports[h.Season] = res.Value
	}

	log.Info("Run finished", "written", summary.Written, "skipped", summary.Skipped, "duration", time.Since(start).Round(time.Millisecond))
	return summary, nil
}

// BuildSeason computes one season's report. A non-ok result means the season
// should be skipped.
func (s *FantasyService) BuildSeason(ctx context.Context, season, leagueID string) models.Result[models.SeasonReport] {
	loaded := s.api.LoadLeague(ctx, leagueID, season)
	if !loaded.OK() {
		return models.Empty[models.SeasonReport](loaded.Status, loaded.Err)
	}
	league := loaded.Value

	ratings := s.CalculateFDVOA(ctx, leagueID, league.Rosters, league.CurrentWeek)
	if !ratings.OK() {
		slog.Info("F-DVOA unavailable, ranking on points for", "season", season, "reason", ratings.Reason())
	}
	rankings := ComputePowerRankings(league.Standings, ratings.Value, league.CurrentWeek)

	current := s.api.IsCurrentSeason(season)
	week := league.CurrentWeek
	if current {
		if live := s.api.LiveWeek(ctx); live.OK() {
			week = live.Value
		}
	}

	regime := SelectRegime(current, week)
	rosters := s.AggregateRosters(ctx, RosterRequest{League: league, Week: week, Regime: regime})
	if !rosters.OK() {
		slog.Error("Roster summary degraded", "season", season, "week", week, "regime", regime, "reason", rosters.Reason())
	}
	rows := rosters.Value
	if rows == nil {
		rows = []models.RosterRow{}
	}

	report := models.SeasonReport{
		PowerRankings:   rankings,
		FDVOA:           ratingTable(league, ratings.Value),
		Rosters:         rows,
		ProjectionWeek:  week,
		AnalysisType:    regime.AnalysisType(),
		IsCurrentSeason: current,
		LastUpdated:     models.FormatTimestamp(s.api.Now()),
	}
	if !current {
		report.WeeklyScores = s.WeeklyScores(ctx, leagueID, league.Rosters)
	}
	return models.Ok(report)
}

// ratingTable falls back to every team at zero before ratings exist so the
// front end still lists the league.
func ratingTable(league models.LeagueSnapshot, ratings []models.Rating) []models.Rating {
	if len(ratings) > 0 {
		return ratings
	}
	table := make([]models.Rating, 0, len(league.Standings))
	for _, team := range league.Standings {
		table = append(table, models.Rating{RosterID: team.RosterID, TeamName: team.TeamName, Avatar: team.Avatar})
	}
	return table
}
