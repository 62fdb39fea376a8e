package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// InteractionResponder is the part of *discordgo.Session used to answer
// interactions.
type InteractionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// CreateActionRow creates an action row with buttons
func CreateActionRow(buttons ...discordgo.MessageComponent) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: buttons,
	}
}

// CreateButton creates a button component
func CreateButton(customID, label string, style discordgo.ButtonStyle, disabled bool, emoji *discordgo.ComponentEmoji) discordgo.MessageComponent {
	button := discordgo.Button{
		CustomID: customID,
		Label:    label,
		Style:    style,
		Disabled: disabled,
	}

	if emoji != nil {
		button.Emoji = emoji
	}

	return button
}

// SendInteractionResponse answers a slash command with an embed and components
func SendInteractionResponse(s InteractionResponder, i *discordgo.InteractionCreate, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondEphemeral sends a short message only the caller can see
func RespondEphemeral(s InteractionResponder, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// AcknowledgeComponentInteraction acknowledges a component interaction without updating the message
func AcknowledgeComponentInteraction(s InteractionResponder, i *discordgo.InteractionCreate) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}

	return s.InteractionRespond(i.Interaction, response)
}

// InteractionUserID returns who triggered the interaction, in guilds and DMs.
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(id string) (int64, error) { return strconv.ParseInt(id, 10, 64) }

// Delivery failure kinds, as reported in logs.
const (
	DeliveryGone      = "gone"
	DeliveryRejected  = "rejected"
	DeliveryTransient = "transient"
)

// ClassifyDeliveryError sorts a failed REST call into gone (the target no
// longer exists), rejected (the request will never succeed) or transient.
// Failures are logged with this kind and never retried.
func ClassifyDeliveryError(err error) string {
	if err == nil {
		return ""
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage,
				discordgo.ErrCodeUnknownWebhook, discordgo.ErrCodeUnknownInteraction:
				return DeliveryGone
			case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
				return DeliveryRejected
			}
		}
		if restErr.Response != nil {
			switch code := restErr.Response.StatusCode; {
			case code == 404:
				return DeliveryGone
			case code >= 400 && code < 500 && code != 429:
				return DeliveryRejected
			}
		}
		return DeliveryTransient
	}

	switch {
	case isGoneError(err):
		return DeliveryGone
	case isRejectedError(err):
		return DeliveryRejected
	}
	return DeliveryTransient
}

// isGoneError checks if the error text says the target no longer exists
func isGoneError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Unknown Message") ||
		strings.Contains(msg, "Unknown Webhook") ||
		strings.Contains(msg, "\"code\": 10015") ||
		strings.Contains(msg, "Unknown interaction") ||
		strings.Contains(msg, "404")
}

// isRejectedError checks if the error text says retrying cannot help
func isRejectedError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Missing Permissions") ||
		strings.Contains(msg, "Missing Access") ||
		strings.Contains(msg, "400") ||
		strings.Contains(msg, "403")
}
