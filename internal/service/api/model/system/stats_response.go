package system

// StatsResponse 메모리 캐시 현황
type StatsResponse struct {
	// 캐시된 매물 수
	Listings int `json:"listings" example:"12"`

	// 버튼 상태가 보관된 미리보기 수
	Sessions int `json:"sessions" example:"3"`
}
