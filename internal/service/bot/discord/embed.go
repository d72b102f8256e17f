package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
)

// toEmbed 미리보기를 디스코드 임베드로 변환합니다.
func toEmbed(p *preview.Preview) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:       p.Color,
		Title:       p.Title,
		Description: p.Description,
	}

	if p.AuthorName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    p.AuthorName,
			URL:     p.AuthorURL,
			IconURL: p.AuthorIconURL,
		}
	}
	if p.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: p.ImageURL}
	}
	if p.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: p.Footer}
	}
	for _, f := range p.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}

	return embed
}

// toComponents 미리보기 버튼을 하나의 ActionsRow로 변환합니다. 버튼이 없으면 nil을 반환합니다.
func toComponents(p *preview.Preview) []discordgo.MessageComponent {
	if !p.HasControls() {
		return nil
	}

	buttons := make([]discordgo.MessageComponent, 0, len(p.Controls))
	for _, c := range p.Controls {
		b := discordgo.Button{
			Label:    c.Label,
			Style:    buttonStyle(c.Style),
			Disabled: c.Disabled,
			CustomID: c.CustomID(),
		}
		if c.Emoji != "" {
			b.Emoji = &discordgo.ComponentEmoji{Name: c.Emoji}
		}
		buttons = append(buttons, b)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func buttonStyle(s preview.ButtonStyle) discordgo.ButtonStyle {
	if s == preview.StyleDanger {
		return discordgo.DangerButton
	}
	return discordgo.SecondaryButton
}

// footerText 메시지의 첫 번째 임베드 꼬리말을 반환합니다.
func footerText(m *discordgo.Message) string {
	if m == nil || len(m.Embeds) == 0 || m.Embeds[0].Footer == nil {
		return ""
	}
	return m.Embeds[0].Footer.Text
}
