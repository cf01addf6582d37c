package service

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

// escape keeps display names like "big_dog" from breaking Markdown replies.
func escape(name string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, name)
}

func FormatPowerRankings(season string, week int, rankings []models.PowerRanking) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%s Power Rankings (Week %d)*\n\n", season, week))

	if len(rankings) == 0 {
		sb.WriteString("Power rankings are not available yet.")
		return sb.String()
	}

	for _, r := range rankings {
		sb.WriteString(fmt.Sprintf("%d. *%s* - %.3f\n", r.Rank, escape(r.TeamName), r.PowerScore))
	}
	return sb.String()
}

func FormatFDVOA(season string, ratings []models.Rating) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *%s F-DVOA*\n\n", season))

	if len(ratings) == 0 {
		sb.WriteString("F-DVOA is not available yet for this season.")
		return sb.String()
	}

	for _, r := range ratings {
		sb.WriteString(fmt.Sprintf("*%s*: %+.2f%%\n", escape(r.TeamName), r.FDVOA))
	}
	return sb.String()
}

// FormatTeam shows one team's rank and rating, or nil values as n/a.
func FormatTeam(season string, ranking *models.PowerRanking, rating *models.Rating) string {
	var sb strings.Builder

	name := models.UnknownTeam
	switch {
	case ranking != nil:
		name = ranking.TeamName
	case rating != nil:
		name = rating.TeamName
	}
	sb.WriteString(fmt.Sprintf("📋 *%s* (%s)\n", escape(name), season))

	if ranking != nil {
		sb.WriteString(fmt.Sprintf("Power Rank: %d (%.3f)\n", ranking.Rank, ranking.PowerScore))
	} else {
		sb.WriteString("Power Rank: n/a\n")
	}
	if rating != nil {
		sb.WriteString(fmt.Sprintf("F-DVOA: %+.2f%%\n", rating.FDVOA))
	} else {
		sb.WriteString("F-DVOA: n/a\n")
	}
	return sb.String()
}
