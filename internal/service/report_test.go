package service

import (
	"strings"
	"testing"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

func TestFormatPowerRankings(t *testing.T) {
	got := FormatPowerRankings("2025", 6, []models.PowerRanking{
		{Rank: 1, TeamName: "Alice", PowerScore: 0.8123},
		{Rank: 2, TeamName: "Bob", PowerScore: 0.25},
	})
	for _, want := range []string{"2025 Power Rankings (Week 6)", "1. *Alice* - 0.812", "2. *Bob* - 0.250"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	if got := FormatPowerRankings("2025", 1, nil); !strings.Contains(got, "not available") {
		t.Errorf("empty rankings: %s", got)
	}
}

func TestFormatFDVOA(t *testing.T) {
	got := FormatFDVOA("2024", []models.Rating{{TeamName: "Alice", FDVOA: 12.346}, {TeamName: "Bob", FDVOA: -3}})
	if !strings.Contains(got, "*Alice*: +12.35%") || !strings.Contains(got, "*Bob*: -3.00%") {
		t.Errorf("got:\n%s", got)
	}
}

func TestFormatTeam(t *testing.T) {
	got := FormatTeam("2025", &models.PowerRanking{Rank: 3, TeamName: "Alice", PowerScore: 0.5}, nil)
	if !strings.Contains(got, "*Alice* (2025)") || !strings.Contains(got, "Power Rank: 3 (0.500)") || !strings.Contains(got, "F-DVOA: n/a") {
		t.Errorf("got:\n%s", got)
	}
}

func TestFormat_EscapesTeamNames(t *testing.T) {
	name := "big_dog*"
	want := `big\_dog\*`

	rankings := FormatPowerRankings("2025", 3, []models.PowerRanking{{Rank: 1, TeamName: name}})
	ratings := FormatFDVOA("2025", []models.Rating{{TeamName: name}})
	team := FormatTeam("2025", nil, &models.Rating{TeamName: name})

	for _, got := range []string{rankings, ratings, team} {
		if !strings.Contains(got, want) || strings.Contains(got, name) {
			t.Errorf("name not escaped in:\n%s", got)
		}
	}
}
