package bot

import "github.com/darkkaiser/listing-bot/internal/service/preview"

const (
	textMissingEmbedPermission = ":x: Error!\nI do not have permission to embed links in this channel. Please add this permission to my role and/or this channel to continue."
	textItemNotFound           = "Item not found."
	notFoundSuffix             = ": Not found"

	// dismissEmoji 미리보기를 닫는 반응
	dismissEmoji = "❌"
)

// Welcome 봇이 새 서버(그룹)에 추가되었을 때 보내는 안내 메시지입니다.
func Welcome() *preview.Preview {
	return &preview.Preview{
		Color:       preview.ColorWelcome,
		Title:       "👋 Hey there!",
		Description: "Thanks for inviting my bot! I hope it serves you well.",
		Fields: []preview.Field{
			{
				Name:  "📋 Setup:",
				Value: "Please ensure the bot has permission to embed links in any channels you intend to use it in.",
			},
			{
				Name:  "❓ Did you know?",
				Value: "If you give the bot permission to delete messages, it will automatically shorten links too!",
			},
		},
		Footer: "Have fun!",
	}
}
