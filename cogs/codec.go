package cogs

import (
	"fmt"

	"jackpot-go/games/jackpot"
	"jackpot-go/utils"

	"github.com/bwmarrin/discordgo"
)

// blankField stands in for empty field names and values, which Discord
// rejects.
const blankField = "\u200b"

var buttonStyles = map[jackpot.ControlStyle]discordgo.ButtonStyle{
	jackpot.StylePrimary:   discordgo.PrimaryButton,
	jackpot.StyleSecondary: discordgo.SecondaryButton,
	jackpot.StyleSuccess:   discordgo.SuccessButton,
	jackpot.StyleDanger:    discordgo.DangerButton,
}

var controlStyles = func() map[discordgo.ButtonStyle]jackpot.ControlStyle {
	m := make(map[discordgo.ButtonStyle]jackpot.ControlStyle, len(buttonStyles))
	for c, b := range buttonStyles {
		m[b] = c
	}
	return m
}()

// EncodeMessage draws a game as one embed plus button rows. Text blocks
// become embed fields in order and control rows become action rows in
// order.
func EncodeMessage(msg jackpot.Message, color int) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := utils.CreateBrandedEmbed(msg.Title, "", color)
	components := make([]discordgo.MessageComponent, 0, 2)

	for _, b := range msg.Blocks {
		if b.IsControlRow() {
			buttons := make([]discordgo.MessageComponent, 0, len(b.Controls))
			for _, c := range b.Controls {
				id := c.Action.CustomID()
				if id == "" {
					continue
				}
				buttons = append(buttons, utils.CreateButton(id, c.Label, buttonStyles[c.Style], false, nil))
			}
			if len(buttons) > 0 {
				components = append(components, utils.CreateActionRow(buttons...))
			}
			continue
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  orBlank(b.Label),
			Value: orBlank(b.Text),
		})
	}
	return embed, components
}

// DecodeMessage reads a game back from a Discord message. Block IDs come
// from field headings and from the actions on each row.
func DecodeMessage(m *discordgo.Message) (jackpot.Message, error) {
	if m == nil || len(m.Embeds) == 0 || m.Embeds[0] == nil {
		return jackpot.Message{}, fmt.Errorf("message has no game embed: %w", jackpot.ErrMalformed)
	}

	embed := m.Embeds[0]
	msg := jackpot.Message{
		Title:  embed.Title,
		Blocks: make([]jackpot.Block, 0, len(embed.Fields)+len(m.Components)),
	}

	for _, f := range embed.Fields {
		if f == nil {
			continue
		}
		label := fromBlank(f.Name)
		msg.Blocks = append(msg.Blocks, jackpot.Block{
			ID:    jackpot.BlockIDForLabel(label),
			Label: label,
			Text:  fromBlank(f.Value),
		})
	}

	for _, comp := range m.Components {
		var row []discordgo.MessageComponent
		switch r := comp.(type) {
		case discordgo.ActionsRow:
			row = r.Components
		case *discordgo.ActionsRow:
			row = r.Components
		default:
			continue
		}

		controls := make([]jackpot.Control, 0, len(row))
		for _, c := range row {
			var button discordgo.Button
			switch b := c.(type) {
			case discordgo.Button:
				button = b
			case *discordgo.Button:
				button = *b
			default:
				continue
			}
			action, _ := jackpot.ParseAction(button.CustomID)
			controls = append(controls, jackpot.Control{
				Action: action,
				Label:  button.Label,
				Style:  controlStyles[button.Style],
			})
		}
		if len(controls) == 0 {
			continue
		}
		msg.Blocks = append(msg.Blocks, jackpot.Block{
			ID:       jackpot.ControlRowID(controls),
			Controls: controls,
		})
	}
	return msg, nil
}

func orBlank(s string) string {
	if s == "" {
		return blankField
	}
	return s
}

func fromBlank(s string) string {
	if s == blankField {
		return ""
	}
	return s
}
