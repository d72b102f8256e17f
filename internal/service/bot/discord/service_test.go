package discord

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/darkkaiser/listing-bot/internal/config"
	"github.com/darkkaiser/listing-bot/internal/service/bot"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T) (*Service, *mockSession) {
	t.Helper()

	cache := listing.NewCache()
	controller := preview.NewController(cache, preview.NewSessionStore(), false)
	handler := bot.NewHandler(provider.NewRegistry(cache), controller, 50*time.Millisecond)

	sess := &mockSession{}
	svc := NewService(config.DiscordConfig{Enabled: true, Token: "token"}, handler)
	svc.session = sess
	svc.serviceStopCtx = context.Background()
	svc.botUserID = "bot-1"
	svc.iconURL = "https://cdn.discordapp.com/avatars/bot-1/icon.png"

	return svc, sess
}

func componentInteraction(customID, userID, username, footer string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "i1",
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: "c1",
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: username, Discriminator: "0001"},
			},
			Message: &discordgo.Message{
				ID:        "m1",
				ChannelID: "c1",
				Embeds: []*discordgo.MessageEmbed{
					{Footer: &discordgo.MessageEmbedFooter{Text: footer}},
				},
			},
			Data: discordgo.MessageComponentInteractionData{CustomID: customID},
		},
	}
}

func responseOfType(t discordgo.InteractionResponseType) interface{} {
	return mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Type == t
	})
}

// =============================================================================
// Conversion
// =============================================================================

func TestToEmbed(t *testing.T) {
	p := &preview.Preview{
		Color:         preview.ColorEbay,
		AuthorName:    "Vintage Camera",
		AuthorURL:     "https://ebay.co.uk/i/123456789012",
		AuthorIconURL: "https://cdn.example.com/bot.png",
		Description:   "Works fine",
		ImageURL:      "https://i.ebayimg.com/1.jpg",
		Footer:        "£10.00 BIN - Requested by alice#0001",
	}

	embed := toEmbed(p)

	assert.Equal(t, preview.ColorEbay, embed.Color)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "Vintage Camera", embed.Author.Name)
	assert.Equal(t, "https://ebay.co.uk/i/123456789012", embed.Author.URL)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://i.ebayimg.com/1.jpg", embed.Image.URL)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "£10.00 BIN - Requested by alice#0001", embed.Footer.Text)
	assert.Empty(t, embed.Fields)

	welcome := toEmbed(bot.Welcome())
	assert.Nil(t, welcome.Author)
	assert.Nil(t, welcome.Image)
	assert.Equal(t, "👋 Hey there!", welcome.Title)
	assert.Len(t, welcome.Fields, 2)
}

func TestToComponents(t *testing.T) {
	assert.Nil(t, toComponents(&preview.Preview{}))

	p := &preview.Preview{
		Controls: []preview.Control{
			{Action: preview.ActionPrevious, Label: "Previous", Emoji: "⬅️", Style: preview.StyleSecondary, Disabled: true},
			{Action: preview.ActionNext, Label: "Next", Emoji: "➡️", Style: preview.StyleSecondary},
			{Action: preview.ActionDelete, Label: "Delete", Style: preview.StyleDanger},
		},
	}

	rows := toComponents(p)
	require.Len(t, rows, 1)

	row, ok := rows[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 3)

	prev := row.Components[0].(discordgo.Button)
	assert.Equal(t, "previous", prev.CustomID)
	assert.True(t, prev.Disabled)
	require.NotNil(t, prev.Emoji)
	assert.Equal(t, "⬅️", prev.Emoji.Name)

	del := row.Components[2].(discordgo.Button)
	assert.Equal(t, discordgo.DangerButton, del.Style)
	assert.Nil(t, del.Emoji)
}

func TestFooterText(t *testing.T) {
	assert.Empty(t, footerText(nil))
	assert.Empty(t, footerText(&discordgo.Message{}))
	assert.Empty(t, footerText(&discordgo.Message{Embeds: []*discordgo.MessageEmbed{{}}}))
	assert.Equal(t, "x", footerText(&discordgo.Message{Embeds: []*discordgo.MessageEmbed{{Footer: &discordgo.MessageEmbedFooter{Text: "x"}}}}))
}

// =============================================================================
// Messenger
// =============================================================================

func TestService_Permissions(t *testing.T) {
	svc, sess := newTestService(t)

	sess.On("UserChannelPermissions", "bot-1", "c1").
		Return(int64(discordgo.PermissionEmbedLinks|discordgo.PermissionAddReactions), nil).Once()
	sess.On("UserChannelPermissions", "bot-1", "c2").
		Return(int64(0), errors.New("unknown channel")).Once()

	perms, err := svc.Permissions(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, bot.Permissions{EmbedLinks: true, AddReactions: true}, perms)

	_, err = svc.Permissions(context.Background(), "c2")
	assert.Error(t, err)

	sess.AssertExpectations(t)
}

func TestService_SendPreview(t *testing.T) {
	svc, sess := newTestService(t)

	sess.On("ChannelMessageSendComplex", "c1", mock.MatchedBy(func(data *discordgo.MessageSend) bool {
		return data.Content == "look https://ebay.co.uk/i/123456789012" &&
			len(data.Embeds) == 1 && data.Embeds[0].Author.Name == "Camera" &&
			len(data.Components) == 1
	})).Return(&discordgo.Message{ID: "sent-1"}, nil).Once()

	id, err := svc.SendPreview(context.Background(), "c1", "look https://ebay.co.uk/i/123456789012", &preview.Preview{
		AuthorName: "Camera",
		Controls:   []preview.Control{{Action: preview.ActionDelete, Label: "Delete", Style: preview.StyleDanger}},
	})

	require.NoError(t, err)
	assert.Equal(t, "sent-1", id)
	sess.AssertExpectations(t)
}

func TestService_RemoveOwnReaction(t *testing.T) {
	svc, sess := newTestService(t)

	sess.On("MessageReactionRemove", "c1", "m1", "❌", "@me").Return(nil).Once()

	require.NoError(t, svc.RemoveOwnReaction(context.Background(), "c1", "m1", "❌"))
	sess.AssertExpectations(t)
}

// =============================================================================
// Reactions
// =============================================================================

func TestReactionWaiters(t *testing.T) {
	t.Run("일치하는 반응", func(t *testing.T) {
		w := newReactionWaiters()
		watch := w.watch("c1", "m1", "u1", "❌")

		done := make(chan bool, 1)
		go func() {
			done <- watch.Wait(context.Background(), time.Second)
		}()

		w.notify("c1", "m1", "u2", "❌")
		w.notify("c1", "m1", "u1", "👍")
		w.notify("c1", "m1", "u1", "❌")

		assert.True(t, <-done)
		assert.Equal(t, 0, w.pending())
	})

	t.Run("Wait 전에 도착한 반응", func(t *testing.T) {
		w := newReactionWaiters()
		watch := w.watch("c1", "m1", "u1", "❌")
		require.Equal(t, 1, w.pending())

		w.notify("c1", "m1", "u1", "❌")

		assert.True(t, watch.Wait(context.Background(), 50*time.Millisecond))
		assert.Equal(t, 0, w.pending())
	})

	t.Run("다른 사용자의 반응은 무시", func(t *testing.T) {
		w := newReactionWaiters()
		watch := w.watch("c1", "m1", "u1", "❌")

		go func() {
			time.Sleep(10 * time.Millisecond)
			w.notify("c1", "m1", "u2", "❌")
		}()

		assert.False(t, watch.Wait(context.Background(), 50*time.Millisecond))
		assert.Equal(t, 0, w.pending())
	})

	t.Run("컨텍스트 취소", func(t *testing.T) {
		w := newReactionWaiters()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.False(t, w.watch("c1", "m1", "u1", "❌").Wait(ctx, time.Minute))
	})

	t.Run("Stop은 대기자를 제거", func(t *testing.T) {
		w := newReactionWaiters()
		first := w.watch("c1", "m1", "u1", "❌")
		second := w.watch("c1", "m1", "u1", "❌")

		first.Stop()
		first.Stop()
		assert.Equal(t, 1, w.pending())

		second.Stop()
		assert.Equal(t, 0, w.pending())
	})
}

func TestHandleMessageReactionAdd(t *testing.T) {
	svc, _ := newTestService(t)

	watch := svc.WatchReaction("c1", "m1", "u1", "❌")
	require.Equal(t, 1, svc.reactions.pending())

	svc.handleMessageReactionAdd(nil, &discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{
			UserID:    "u1",
			MessageID: "m1",
			ChannelID: "c1",
			Emoji:     discordgo.Emoji{Name: "❌"},
		},
	})

	assert.True(t, watch.Wait(context.Background(), time.Second))
}

// =============================================================================
// Events
// =============================================================================

func TestHandleMessageCreate_Ignored(t *testing.T) {
	svc, sess := newTestService(t)

	author := &discordgo.User{ID: "u1", Username: "alice"}

	// DM
	svc.handleMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID: "m1", ChannelID: "dm", Content: "ebay.co.uk/itm/123456789012", Author: author,
	}})
	// 봇
	svc.handleMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID: "m2", ChannelID: "c1", GuildID: "g1", Content: "ebay.co.uk/itm/123456789012",
		Author: &discordgo.User{ID: "b1", Bot: true},
	}})
	// 작성자 없는 수정
	svc.handleMessageUpdate(nil, &discordgo.MessageUpdate{Message: &discordgo.Message{ID: "m3", GuildID: "g1"}})

	sess.AssertNotCalled(t, "UserChannelPermissions", mock.Anything, mock.Anything)
}

func TestHandleMessageCreate_MissingEmbedPermission(t *testing.T) {
	svc, sess := newTestService(t)

	sess.On("UserChannelPermissions", "bot-1", "c1").Return(int64(discordgo.PermissionSendMessages), nil).Once()
	sess.On("ChannelMessageSend", "c1", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "permission to embed links")
	})).Return(&discordgo.Message{ID: "r1"}, nil).Once()

	svc.handleMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "look at this ebay.co.uk/itm/123456789012",
		Author:    &discordgo.User{ID: "u1", Username: "alice"},
	}})

	sess.AssertExpectations(t)
}

func TestHandleMessageUpdate_UnchangedContent(t *testing.T) {
	svc, sess := newTestService(t)

	content := "ebay.co.uk/itm/123456789012"
	svc.handleMessageUpdate(nil, &discordgo.MessageUpdate{
		Message: &discordgo.Message{
			ID: "m1", ChannelID: "c1", GuildID: "g1", Content: content,
			Author: &discordgo.User{ID: "u1", Username: "alice"},
		},
		BeforeUpdate: &discordgo.Message{Content: content},
	})

	sess.AssertNotCalled(t, "UserChannelPermissions", mock.Anything, mock.Anything)
}

func TestHandleInteractionCreate(t *testing.T) {
	const footer = "£10.00 BIN - Requested by alice#0001"

	t.Run("요청자의 삭제", func(t *testing.T) {
		svc, sess := newTestService(t)

		sess.On("InteractionRespond", mock.Anything, responseOfType(discordgo.InteractionResponseDeferredMessageUpdate)).Return(nil).Once()
		sess.On("ChannelMessageDelete", "c1", "m1").Return(nil).Once()

		svc.handleInteractionCreate(nil, componentInteraction("delete", "u1", "alice", footer))

		sess.AssertExpectations(t)
	})

	t.Run("다른 사용자의 삭제는 거부", func(t *testing.T) {
		svc, sess := newTestService(t)

		sess.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
			return r.Type == discordgo.InteractionResponseChannelMessageWithSource &&
				r.Data.Flags == discordgo.MessageFlagsEphemeral &&
				r.Data.Content == preview.ReplyNotYourPost
		})).Return(nil).Once()

		svc.handleInteractionCreate(nil, componentInteraction("delete", "u2", "bob", footer))

		sess.AssertExpectations(t)
		sess.AssertNotCalled(t, "ChannelMessageDelete", mock.Anything, mock.Anything)
	})

	t.Run("세션이 없는 다음 버튼은 만료 안내", func(t *testing.T) {
		svc, sess := newTestService(t)

		sess.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
			return r.Data != nil && r.Data.Content == preview.ReplyExpired
		})).Return(nil).Once()

		svc.handleInteractionCreate(nil, componentInteraction("next", "u1", "alice", footer))

		sess.AssertExpectations(t)
	})

	t.Run("알 수 없는 버튼은 확인만 응답", func(t *testing.T) {
		svc, sess := newTestService(t)

		sess.On("InteractionRespond", mock.Anything, responseOfType(discordgo.InteractionResponseDeferredMessageUpdate)).Return(nil).Once()

		svc.handleInteractionCreate(nil, componentInteraction("unknown", "u1", "alice", footer))

		sess.AssertExpectations(t)
	})
}

func TestHandleGuildCreate(t *testing.T) {
	svc, sess := newTestService(t)

	svc.handleReady(nil, &discordgo.Ready{
		User:   &discordgo.User{ID: "bot-1", Username: "listing-bot"},
		Guilds: []*discordgo.Guild{{ID: "g-known", Unavailable: true}},
	})

	sess.On("UserChannelCreate", "owner-new").Return(&discordgo.Channel{ID: "dm-1"}, nil).Once()
	sess.On("ChannelMessageSendComplex", "dm-1", mock.MatchedBy(func(data *discordgo.MessageSend) bool {
		return len(data.Embeds) == 1 && data.Embeds[0].Title == "👋 Hey there!"
	})).Return(&discordgo.Message{ID: "w1"}, nil).Once()

	now := time.Now()
	svc.handleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "g-known", OwnerID: "owner-known", JoinedAt: now}})
	svc.handleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "g-old", OwnerID: "owner-old", JoinedAt: now.Add(-time.Hour)}})
	svc.handleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "g-new", OwnerID: "owner-new", JoinedAt: now}})

	// 같은 서버의 GuildCreate가 다시 와도 한 번만 환영합니다.
	svc.handleGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{ID: "g-new", OwnerID: "owner-new", JoinedAt: now}})

	sess.AssertExpectations(t)
	assert.Equal(t, "bot-1", svc.botUserID)
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestService_StartStop(t *testing.T) {
	svc, sess := newTestService(t)
	svc.newSession = func(config.DiscordConfig) (session, error) { return sess, nil }

	sess.On("Open").Return(nil).Once()
	sess.On("Close").Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	require.NoError(t, svc.Start(ctx, wg))

	// 중복 시작
	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg))

	cancel()
	wg.Wait()

	sess.AssertExpectations(t)
	assert.False(t, svc.beginEvent(), "종료 후에는 이벤트를 받지 않아야 합니다")
}

func TestService_StartOpenFailure(t *testing.T) {
	svc, sess := newTestService(t)
	svc.newSession = func(config.DiscordConfig) (session, error) { return sess, nil }

	sess.On("Open").Return(errors.New("invalid token")).Once()

	wg := &sync.WaitGroup{}
	wg.Add(1)

	err := svc.Start(context.Background(), wg)
	require.Error(t, err)
	wg.Wait()
}
