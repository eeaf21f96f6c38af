package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownbeat/crownbeat/internal/domain"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, edit)
	return nil, nil
}

func testInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{ID: "interaction-1"}}
}

func TestAckDefersThenReplyEditsTheDeferredResponse(t *testing.T) {
	f := &fakeResponder{}
	b := &Bot{responder: f}
	i := testInteraction()

	require.True(t, b.ack(i))
	b.respondText(i, "done")

	require.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, f.responses[0].Type)

	require.Len(t, f.edits, 1)
	require.NotNil(t, f.edits[0].Content)
	assert.Equal(t, "done", *f.edits[0].Content)
}

func TestRespondRendersPerDisplayMode(t *testing.T) {
	t.Run("embed mode edits in an embed", func(t *testing.T) {
		f := &fakeResponder{}
		b := &Bot{responder: f}

		b.respond(testInteraction(), domain.DisplayModeEmbed, "Who knows Tool", "ranking")

		require.Len(t, f.edits, 1)
		require.NotNil(t, f.edits[0].Embeds)
		embeds := *f.edits[0].Embeds
		require.Len(t, embeds, 1)
		assert.Equal(t, "Who knows Tool", embeds[0].Title)
		assert.Equal(t, "ranking", embeds[0].Description)
		assert.Equal(t, embedColor, embeds[0].Color)
	})

	t.Run("text mode edits in plain content", func(t *testing.T) {
		f := &fakeResponder{}
		b := &Bot{responder: f}

		b.respond(testInteraction(), domain.DisplayModeText, "Who knows Tool", "ranking")

		require.Len(t, f.edits, 1)
		require.NotNil(t, f.edits[0].Content)
		assert.Equal(t, "**Who knows Tool**\nranking", *f.edits[0].Content)
	})
}

func TestReplyNowAnswersWithoutDeferring(t *testing.T) {
	f := &fakeResponder{}
	b := &Bot{responder: f}

	b.replyNow(testInteraction(), "Easy there. Try again in 3s.")

	require.Len(t, f.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, f.responses[0].Type)
	assert.Equal(t, "Easy there. Try again in 3s.", f.responses[0].Data.Content)
	assert.Empty(t, f.edits)
}
