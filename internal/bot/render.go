package bot

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
)

// maxListedRows caps how many entries a ranked reply shows
const maxListedRows = 10

const embedColor = 0xd92121

// interactionResponder is the slice of the session API the reply path uses.
// Factored out so reply sequencing is testable without a gateway connection.
type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ack sends the deferred acknowledgement. Discord voids the interaction token
// unless it is acknowledged within a few seconds, so this runs before any
// store or upstream work; the handler later edits the deferred reply.
func (b *Bot) ack(i *discordgo.InteractionCreate) bool {
	err := b.responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.Error(err, zap.String("interaction_id", i.ID))
		return false
	}
	return true
}

// replyNow answers an interaction that has not been acknowledged yet
func (b *Bot) replyNow(i *discordgo.InteractionCreate, content string) {
	err := b.responder.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		logger.Error(err, zap.String("interaction_id", i.ID))
	}
}

// respond renders a titled body either as an embed or as plain text,
// depending on the requesting user's display mode.
func (b *Bot) respond(i *discordgo.InteractionCreate, mode domain.DisplayMode, title, body string) {
	if mode == domain.DisplayModeText {
		b.respondText(i, "**"+title+"**\n"+body)
		return
	}
	embeds := []*discordgo.MessageEmbed{
		{
			Title:       title,
			Description: body,
			Color:       embedColor,
		},
	}
	b.send(i, &discordgo.WebhookEdit{Embeds: &embeds})
}

func (b *Bot) respondText(i *discordgo.InteractionCreate, content string) {
	b.send(i, &discordgo.WebhookEdit{Content: &content})
}

// send fills in the deferred reply sent by ack
func (b *Bot) send(i *discordgo.InteractionCreate, edit *discordgo.WebhookEdit) {
	if _, err := b.responder.InteractionResponseEdit(i.Interaction, edit); err != nil {
		logger.Error(err, zap.String("interaction_id", i.ID))
	}
}

// respondError maps domain errors to user-facing messages and logs the rest
func (b *Bot) respondError(ctx context.Context, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		b.respondText(i, "Link your Last.fm account first with `/login`.")
	case errors.Is(err, domain.ErrUsernameNotFound):
		b.respondText(i, "That Last.fm user does not exist.")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		b.respondText(i, "Last.fm is not responding right now. Try again in a bit.")
	case errors.Is(err, domain.ErrCrownsDisabled):
		b.respondText(i, "Crowns are disabled in this server.")
	default:
		logger.ErrorCtx(ctx, err, zap.String("guild_id", i.GuildID))
		b.respondText(i, "Something went wrong. Try again later.")
	}
}

func optionString(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func optionBool(i *discordgo.InteractionCreate, name string) bool {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionBoolean {
			return opt.BoolValue()
		}
	}
	return false
}

// optionUser returns the selected user's ID, or "" when the option is absent
func optionUser(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			if v, ok := opt.Value.(string); ok {
				return v
			}
		}
	}
	return ""
}
