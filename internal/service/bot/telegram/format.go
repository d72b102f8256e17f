package telegram

import (
	"html"
	"strings"

	"github.com/darkkaiser/listing-bot/internal/service/preview"
	"github.com/darkkaiser/listing-bot/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// captionDescriptionLimit 사진 캡션은 1024자로 제한되므로 설명을 줄여서 넣습니다.
	captionDescriptionLimit = 700

	// textDescriptionLimit 일반 메시지(4096자)의 설명 길이 제한
	textDescriptionLimit = 3000
)

// formatPreview 미리보기를 HTML 본문으로 변환합니다.
//
//	<b><a href="https://ebay.co.uk/i/123">제목</a></b>
//
//	설명
//
//	<i>£10.00 BIN - Requested by alice</i>
//
// 꼬리말은 항상 마지막 줄에 두어 버튼 이벤트에서 다시 읽을 수 있게 합니다.
func formatPreview(content string, p *preview.Preview, descriptionLimit int) string {
	var blocks []string

	if content = strings.TrimSpace(content); content != "" {
		blocks = append(blocks, html.EscapeString(content))
	}

	switch {
	case p.AuthorName != "" && p.AuthorURL != "":
		blocks = append(blocks, `<b><a href="`+html.EscapeString(p.AuthorURL)+`">`+html.EscapeString(p.AuthorName)+`</a></b>`)
	case p.AuthorName != "":
		blocks = append(blocks, "<b>"+html.EscapeString(p.AuthorName)+"</b>")
	case p.Title != "":
		blocks = append(blocks, "<b>"+html.EscapeString(p.Title)+"</b>")
	}

	if p.Description != "" {
		blocks = append(blocks, html.EscapeString(strutil.Truncate(p.Description, descriptionLimit)))
	}

	for _, f := range p.Fields {
		blocks = append(blocks, "<b>"+html.EscapeString(f.Name)+"</b>\n"+html.EscapeString(f.Value))
	}

	if p.Footer != "" {
		blocks = append(blocks, "<i>"+html.EscapeString(p.Footer)+"</i>")
	}

	return strings.Join(blocks, "\n\n")
}

// footerFromText 수신한 메시지 본문(서식이 제거된 텍스트)의 마지막 줄을 꼬리말로 반환합니다.
func footerFromText(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return text
}

// toKeyboard 미리보기 버튼을 인라인 키보드로 변환합니다.
// 텔레그램에는 비활성 버튼이 없으므로 비활성 버튼은 생략합니다.
func toKeyboard(p *preview.Preview) *tgbotapi.InlineKeyboardMarkup {
	if !p.HasControls() {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	for _, c := range p.Controls {
		if c.Disabled {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strutil.JoinNonEmpty(" ", c.Emoji, c.Label), c.CustomID()))
	}
	if len(row) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}
