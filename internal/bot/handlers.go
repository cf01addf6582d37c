package bot

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperstats/internal/models"
	"github.com/omarshaarawi/sleeperstats/internal/service"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

// SnapshotReader is the part of the snapshot store the bot answers from.
type SnapshotReader interface {
	LatestSeason() (snapshot.SeasonSummary, error)
}

type Handler struct {
	snapshots SnapshotReader
}

func NewHandler(snapshots SnapshotReader) *Handler {
	return &Handler{snapshots: snapshots}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.Text = h.reply(update.Message.Command(), update.Message.CommandArguments())
	return msg
}

func (h *Handler) reply(command, args string) string {
	switch strings.ToLower(command) {
	case "start":
		return "Welcome to SleeperStats! Use /help to see available commands."
	case "help":
		return "Available commands:\n/rankings - Power rankings for the latest season\n/fdvoa - F-DVOA ratings for the latest season\n/team <team> - A team's rank and rating"
	case "rankings":
		return h.handleRankings()
	case "fdvoa":
		return h.handleFDVOA()
	case "team":
		return h.handleTeam(args)
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

func (h *Handler) latest() (snapshot.SeasonSummary, string, bool) {
	summary, err := h.snapshots.LatestSeason()
	if errors.Is(err, fs.ErrNotExist) {
		return summary, "No snapshot has been generated yet.", false
	}
	if err != nil {
		return summary, fmt.Sprintf("Error reading snapshot: %v", err), false
	}
	return summary, "", true
}

func (h *Handler) handleRankings() string {
	summary, text, ok := h.latest()
	if !ok {
		return text
	}
	return service.FormatPowerRankings(summary.Season, summary.ProjectionWeek, summary.PowerRankings)
}

func (h *Handler) handleFDVOA() string {
	summary, text, ok := h.latest()
	if !ok {
		return text
	}
	return service.FormatFDVOA(summary.Season, summary.FDVOA)
}

func (h *Handler) handleTeam(args string) string {
	if strings.TrimSpace(args) == "" {
		return "Please provide a team name. Usage: /team <team name>"
	}
	summary, text, ok := h.latest()
	if !ok {
		return text
	}

	var names []string
	seen := make(map[string]bool)
	for _, r := range summary.PowerRankings {
		if !seen[r.TeamName] {
			seen[r.TeamName] = true
			names = append(names, r.TeamName)
		}
	}
	for _, r := range summary.FDVOA {
		if !seen[r.TeamName] {
			seen[r.TeamName] = true
			names = append(names, r.TeamName)
		}
	}

	idx, found := fantasy.BestMatch(args, names, 0.6)
	if !found {
		return fmt.Sprintf("No team found matching '%s'", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, args))
	}
	name := names[idx]

	var ranking *models.PowerRanking
	for i := range summary.PowerRankings {
		if summary.PowerRankings[i].TeamName == name {
			ranking = &summary.PowerRankings[i]
		}
	}
	var rating *models.Rating
	for i := range summary.FDVOA {
		if summary.FDVOA[i].TeamName == name {
			rating = &summary.FDVOA[i]
		}
	}
	return service.FormatTeam(summary.Season, ranking, rating)
}
