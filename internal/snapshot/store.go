// Package snapshot reads and writes the JSON files served to the front end:
// one data_<season>.json per season and a config.json listing the seasons.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

const ConfigFile = "config.json"

var seasonFilePattern = regexp.MustCompile(`^data_\d{4}\.json$`)

type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func SeasonFile(season string) string {
	return fmt.Sprintf("data_%s.json", season)
}

// IsSnapshotFile reports whether name is one of the files this store writes.
func IsSnapshotFile(name string) bool {
	return name == ConfigFile || seasonFilePattern.MatchString(name)
}

func (s *Store) WriteSeason(season string, report models.SeasonReport) error {
	return s.writeJSON(SeasonFile(season), report, "    ")
}

func (s *Store) WriteConfig(cfg models.SiteConfig) error {
	return s.writeJSON(ConfigFile, cfg, "")
}

// writeJSON replaces rel atomically so readers never see a half-written file.
func (s *Store) writeJSON(rel string, v any, indent string) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}

	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+rel+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *Store) ReadConfig() (models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := s.readJSON(ConfigFile, &cfg)
	return cfg, err
}

// SeasonSummary is the part of a season file the bot reads back. Roster rows
// vary by regime and are not decoded.
type SeasonSummary struct {
	Season         string                `json:"-"`
	PowerRankings  []models.PowerRanking `json:"power_rankings"`
	FDVOA          []models.Rating       `json:"fdvoa"`
	ProjectionWeek int                   `json:"projection_week"`
	AnalysisType   models.AnalysisType   `json:"analysis_type"`
	LastUpdated    string                `json:"lastUpdated"`
}

func (s *Store) ReadSeason(season string) (SeasonSummary, error) {
	var summary SeasonSummary
	if err := s.readJSON(SeasonFile(season), &summary); err != nil {
		return SeasonSummary{}, err
	}
	summary.Season = season
	return summary, nil
}

// LatestSeason reads the newest season listed in config.json.
func (s *Store) LatestSeason() (SeasonSummary, error) {
	cfg, err := s.ReadConfig()
	if err != nil {
		return SeasonSummary{}, err
	}
	if len(cfg.Years) == 0 {
		return SeasonSummary{}, fmt.Errorf("no seasons in %s", ConfigFile)
	}
	return s.ReadSeason(cfg.Years[0])
}

func (s *Store) readJSON(rel string, v any) error {
	b, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decoding %s: %w", rel, err)
	}
	return nil
}
