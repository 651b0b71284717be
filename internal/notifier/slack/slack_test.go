package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/notifier"
	"github.com/mauv0809/bgstats/internal/rating"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sampleImport() *notifier.MatchImported {
	return &notifier.MatchImported{
		MatchID:          4,
		Checksum:         "abc123",
		Players:          [2]string{"Alice", "Bob"},
		Length:           7,
		Result:           analysis.ResultOWon,
		OverallErrorRate: [2]float64{0.175, 0.081},
		OverallRating:    [2]int{rating.Beginner, rating.Beginner},
		LuckRating:       [2]int{rating.NoLuck, rating.GoodDice},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestSendImportNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	err := notifier.SendImportNotification(context.Background(), sampleImport(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendImportNotification")
}

func TestFormatImportNotification(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatImportNotification(sampleImport())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🎲 Match recorded 🎲", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "Alice vs Bob, 7 point match", details.Text.Text)

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Third block should be a SectionBlock")
	assert.Equal(t, "Result: Bob won! 🏆", result.Text.Text)
	require.Len(t, result.Fields, 2)
	assert.Equal(t, "Alice\nError rate: 0.1750\nRating: Beginner\nLuck: None", result.Fields[0].Text)
	assert.Equal(t, "Bob\nError rate: 0.0810\nRating: Beginner\nLuck: Good dice, man!", result.Fields[1].Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Fourth block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	checksum, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Match #4 · checksum abc123", checksum.Text)
}

func TestFormatImportNotification_Replaced(t *testing.T) {
	match := sampleImport()
	match.Replaced = true
	match.Length = 0
	match.Result = analysis.ResultUnknown

	client := &Notifier{channelID: "C123"}
	msg := client.formatImportNotification(match)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "🎲 Match re-recorded 🎲", header.Text.Text)
	details := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Alice vs Bob, money session", details.Text.Text)
	result := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Equal(t, "Result: not finished", result.Text.Text)
}

func TestFormatPlayerSummary(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPlayerSummary(&notifier.PlayerSummary{Name: "Alice", GamesPlayed: 4, GamesWon: 3, AverageErrorRate: 0.0125})
	require.Len(t, msg.Blocks.BlockSet, 2)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "📊 Stats for Alice", header.Text.Text)
	stats := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Matches: 4\nWon: 3 (75%)\nAverage error rate: 0.0125", stats.Text.Text)
}
