// Package mocks provider 패키지의 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"context"

	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/darkkaiser/listing-bot/internal/service/provider"
	"github.com/stretchr/testify/mock"
)

var _ provider.Adapter = (*MockAdapter)(nil)

// MockAdapter testify/mock 기반의 Adapter 구현체입니다.
type MockAdapter struct {
	mock.Mock

	provider link.Provider
}

// NewMockAdapter p 공급자를 담당하는 MockAdapter를 생성합니다.
func NewMockAdapter(p link.Provider) *MockAdapter {
	return &MockAdapter{provider: p}
}

func (m *MockAdapter) Provider() link.Provider {
	return m.provider
}

func (m *MockAdapter) Parse(rawURL string) (provider.Ref, error) {
	args := m.Called(rawURL)
	return args.Get(0).(provider.Ref), args.Error(1)
}

func (m *MockAdapter) Fetch(ctx context.Context, ref provider.Ref) (*listing.Listing, error) {
	args := m.Called(ctx, ref)

	var l *listing.Listing
	if v := args.Get(0); v != nil {
		l = v.(*listing.Listing)
	}
	return l, args.Error(1)
}
