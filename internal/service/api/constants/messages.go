package constants

// 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"

	LogMsgServiceHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"
	LogMsgServiceUnexpectedExit          = "API 서비스 > http 서버가 예기치 않게 종료되었습니다"

	LogMsgHealthCheck = "헬스체크 조회"
	LogMsgVersionInfo = "버전 정보 조회"
	LogMsgStats       = "캐시 현황 조회"

	LogMsgHTTP4xxClientError = "클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "서버 내부 오류"
)

// 에러 응답 메시지
const (
	ErrMsgNotFound        = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer  = "내부 서버 오류가 발생했습니다"
)

// 공급자 상태 메시지
const (
	MsgProviderRegistered   = "등록됨"
	MsgProviderUnconfigured = "설정되지 않음"
)

// 패닉 메시지
const (
	PanicMsgRegistryRequired = "provider.Registry는 필수입니다"
	PanicMsgSessionsRequired = "preview.SessionStore는 필수입니다"
)
