package discord

import "github.com/bwmarrin/discordgo"

// TextModal is a modal with a single paragraph input.
func TextModal(customID, title, inputID, label, placeholder string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputID,
					Label:       label,
					Style:       discordgo.TextInputParagraph,
					Required:    true,
					Placeholder: placeholder,
					MaxLength:   2500,
				},
			}},
		},
	}
}

// TextInputValue returns the value of the text input with the given id.
func TextInputValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == id {
				return input.Value
			}
		}
	}
	return ""
}
