package discord

import (
	"github.com/bwmarrin/discordgo"

	"eventpass/internal/ports/output"
)

const (
	embedColor = 0x5865F2

	// Discord caps a message at 5 rows of 5 buttons.
	buttonsPerRow = 5
	maxRows       = 5
)

// BuildMessage renders a transport-neutral message as an embed with one
// button per call to action.
func BuildMessage(msg output.Message) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Description: msg.Text,
			Color:       embedColor,
		}},
		Components: Buttons(msg.Actions),
	}
}

// Buttons lays calls to action out in rows; anything past the 25th is dropped.
func Buttons(actions []output.CallToAction) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(actions) && len(rows) < maxRows; start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(actions))
		row := discordgo.ActionsRow{}
		for _, a := range actions[start:end] {
			row.Components = append(row.Components, discordgo.Button{
				Label:    a.Label,
				Style:    discordgo.PrimaryButton,
				CustomID: a.ActionID,
			})
		}
		rows = append(rows, row)
	}
	return rows
}
