package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Sleeper     Sleeper
	Output      Output
	Schedule    Schedule
	Server      Server
	TelegramBot TelegramBot
}

type Sleeper struct {
	BaseURL           string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	ProjectionsURL    string        `envconfig:"SLEEPER_PROJECTIONS_URL" default:"https://api.sleeper.app/v1/projections/nfl"`
	LeagueID          string        `envconfig:"LEAGUE_ID"`
	UserID            string        `envconfig:"USER_ID" default:"992161421252763648"`
	LeagueName        string        `envconfig:"LEAGUE_NAME"`
	HistoryYears      int           `envconfig:"HISTORY_YEARS" default:"3"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"500"`
	Timeout           time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type Output struct {
	Dir     string `envconfig:"OUTPUT_DIR" default:"."`
	LogoURL string `envconfig:"LOGO_URL" default:"https://i.imgur.com/uCkJvgd.png"`
}

type Schedule struct {
	Cron     string `envconfig:"SCHEDULE_CRON" default:"*/30 * * * *"`
	Timezone string `envconfig:"SCHEDULE_TIMEZONE" default:"America/Chicago"`
}

type Server struct {
	Addr             string   `envconfig:"HTTP_ADDR" default:":8080"`
	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// TelegramBot is optional; an empty token disables notifications.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Sleeper.LeagueID == "" && c.Sleeper.UserID == "" {
		return fmt.Errorf("one of LEAGUE_ID or USER_ID is required")
	}
	if c.Sleeper.HistoryYears < 1 {
		return fmt.Errorf("HISTORY_YEARS must be at least 1, got %d", c.Sleeper.HistoryYears)
	}
	if c.Sleeper.RequestsPerMinute < 1 {
		return fmt.Errorf("REQUESTS_PER_MINUTE must be at least 1, got %d", c.Sleeper.RequestsPerMinute)
	}
	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return fmt.Errorf("invalid SCHEDULE_CRON %q: %w", c.Schedule.Cron, err)
	}
	if c.TelegramBot.Enabled() && c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}
