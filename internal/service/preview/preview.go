// Package preview 정규화된 매물을 채팅 미리보기로 그리고, 미리보기의 버튼 동작(다음/이전/삭제)을 처리합니다.
//
// 미리보기는 특정 채팅 플랫폼에 의존하지 않는 값이며 각 프런트엔드가 자신의 메시지 형식으로 변환합니다.
package preview

// 미리보기 강조 색상
const (
	ColorEbay    = 0xde3036
	ColorAmazon  = 0xf79400
	ColorShpock  = 0x3cce69
	ColorError   = 0xff0000
	ColorWelcome = 0xeb9f1c
)

// ButtonStyle 버튼의 표시 스타일입니다.
type ButtonStyle int

const (
	StyleSecondary ButtonStyle = iota
	StyleDanger
)

// Control 미리보기에 붙는 버튼 하나입니다.
type Control struct {
	Action   Action
	Label    string
	Emoji    string
	Style    ButtonStyle
	Disabled bool
}

// CustomID 플랫폼에 전달할 버튼 식별자입니다.
func (c Control) CustomID() string {
	return string(c.Action)
}

// Field 제목과 값으로 이루어진 본문 항목입니다. (환영 메시지 등)
type Field struct {
	Name  string
	Value string
}

// Preview 플랫폼과 무관한 미리보기 메시지입니다.
type Preview struct {
	Color int

	// Title 작성자 블록이 없는 메시지의 제목
	Title string

	// 작성자 블록 (매물 제목, 짧은 URL, 봇 아이콘)
	AuthorName    string
	AuthorURL     string
	AuthorIconURL string

	Description string
	Fields      []Field
	ImageURL    string
	Footer      string

	Controls []Control
}

// HasControls 버튼이 하나라도 있는지 확인합니다.
func (p *Preview) HasControls() bool {
	return p != nil && len(p.Controls) > 0
}

// Control action에 해당하는 버튼을 반환합니다.
func (p *Preview) Control(action Action) (Control, bool) {
	if p == nil {
		return Control{}, false
	}
	for _, c := range p.Controls {
		if c.Action == action {
			return c, true
		}
	}
	return Control{}, false
}
