package preview

// 버튼 동작 거부 시 요청자에게만 보이는 응답
const (
	ReplyExpired     = "This message was posted too long ago to interact with."
	ReplyLastImage   = "You can't go forward any further!"
	ReplyFirstImage  = "You can't go back any further!"
	ReplyNotYourPost = "You didn't post this!"
)

const (
	requestedByPrefix = "Requested by "
	footerSeparator   = " - "
)

const (
	errorTitle       = ":x: Error!"
	errorDescription = "An unexpected error has occurred"
	errorFooter      = "Sorry about that"
)
