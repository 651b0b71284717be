package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/notifier"
	"github.com/mauv0809/bgstats/internal/rating"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendImportNotification(ctx context.Context, match *notifier.MatchImported, dryRun bool) error {
	msg := s.formatImportNotification(match)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerSummary(ctx context.Context, summary *notifier.PlayerSummary, dryRun bool) error {
	msg := s.formatPlayerSummary(summary)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

func (s *Notifier) formatImportNotification(match *notifier.MatchImported) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := "🎲 Match recorded 🎲"
	if match.Replaced {
		headerText = "🎲 Match re-recorded 🎲"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	detailsText := fmt.Sprintf("%s vs %s, %d point match", match.Players[0], match.Players[1], match.Length)
	if match.Length == 0 {
		detailsText = fmt.Sprintf("%s vs %s, money session", match.Players[0], match.Players[1])
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	var fields []*slack.TextBlockObject
	for side, name := range match.Players {
		text := fmt.Sprintf("%s\nError rate: %.4f\nRating: %s\nLuck: %s",
			name,
			match.OverallErrorRate[side],
			rating.SkillName(match.OverallRating[side]),
			rating.LuckName(match.LuckRating[side]),
		)
		fields = append(fields, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText(match), true, false), fields, nil))

	checksumText := fmt.Sprintf("Match #%d · checksum %s", match.MatchID, match.Checksum)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", checksumText, false, false)))

	return slack.NewBlockMessage(blocks...)
}

func resultText(match *notifier.MatchImported) string {
	switch match.Result {
	case analysis.ResultXWon:
		return fmt.Sprintf("Result: %s won! 🏆", match.Players[0])
	case analysis.ResultOWon:
		return fmt.Sprintf("Result: %s won! 🏆", match.Players[1])
	}
	return "Result: not finished"
}

func (s *Notifier) formatPlayerSummary(summary *notifier.PlayerSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("📊 Stats for %s", summary.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	var winRate float64
	if summary.GamesPlayed > 0 {
		winRate = float64(summary.GamesWon) / float64(summary.GamesPlayed) * 100
	}
	statsText := fmt.Sprintf("Matches: %d\nWon: %d (%.0f%%)\nAverage error rate: %.4f",
		summary.GamesPlayed, summary.GamesWon, winRate, summary.AverageErrorRate)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", statsText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
