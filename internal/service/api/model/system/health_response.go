package system

// DependencyStatus 매물 공급자별 상태
type DependencyStatus struct {
	// 상태: healthy, disabled
	Status string `json:"status" example:"healthy"`

	// 상태 상세 정보
	Message string `json:"message,omitempty" example:"등록됨"`
}

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, unhealthy
	Status string `json:"status" example:"healthy"`

	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	// 공급자별 상태 (키: ebay, amazon, shpock)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}
