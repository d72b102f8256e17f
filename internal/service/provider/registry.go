package provider

import (
	"context"
	"sync"

	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
	"github.com/darkkaiser/listing-bot/internal/service/link"
	"github.com/darkkaiser/listing-bot/internal/service/listing"
	applog "github.com/darkkaiser/listing-bot/pkg/log"
)

// Registry 공급자별 어댑터를 보관하고 캐시를 거쳐 매물을 조회합니다.
type Registry struct {
	mu       sync.RWMutex
	adapters map[link.Provider]Adapter

	cache *listing.Cache
}

// NewRegistry 새로운 Registry를 생성합니다.
func NewRegistry(cache *listing.Cache) *Registry {
	if cache == nil {
		panic("listing.Cache는 필수입니다")
	}

	return &Registry{
		adapters: make(map[link.Provider]Adapter),
		cache:    cache,
	}
}

// Register 어댑터를 등록합니다. 같은 공급자를 두 번 등록할 수 없습니다.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return ErrAdapterNil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := a.Provider()
	if p == link.None {
		return newErrUnsupportedProvider(p)
	}
	if _, exists := r.adapters[p]; exists {
		return newErrDuplicateAdapter(p)
	}
	r.adapters[p] = a

	return nil
}

// MustRegister Register와 같지만 실패하면 패닉을 발생시킵니다.
func (r *Registry) MustRegister(a Adapter) {
	if err := r.Register(a); err != nil {
		panic(err.Error())
	}
}

// Supports 공급자의 어댑터가 등록되어 있는지 확인합니다.
func (r *Registry) Supports(p link.Provider) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.adapters[p]
	return ok
}

// Cache 조회에 사용하는 캐시를 반환합니다.
func (r *Registry) Cache() *listing.Cache {
	return r.cache
}

func (r *Registry) adapter(p link.Provider) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[p]
	if !ok {
		return nil, newErrUnsupportedProvider(p)
	}
	return a, nil
}

// Parse 공급자의 어댑터로 URL을 해석합니다.
func (r *Registry) Parse(p link.Provider, rawURL string) (Ref, error) {
	a, err := r.adapter(p)
	if err != nil {
		return Ref{}, err
	}
	return a.Parse(rawURL)
}

// Resolve URL을 해석하고 매물을 반환합니다.
//
// 캐시에 같은 ID의 매물이 있으면 네트워크 요청 없이 반환하고, 없으면 어댑터로 조회한 뒤 캐시에 저장합니다.
// URL 해석에 성공했다면 조회가 실패해도 Ref는 채워서 반환합니다.
// 어댑터가 Ref와 함께 NotFound를 반환한 경우에도 그 Ref를 그대로 전달합니다.
func (r *Registry) Resolve(ctx context.Context, p link.Provider, rawURL string) (Ref, *listing.Listing, error) {
	a, err := r.adapter(p)
	if err != nil {
		return Ref{}, nil, err
	}

	ref, err := a.Parse(rawURL)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			applog.WithComponentAndFields(component, applog.Fields{
				"provider": p.String(),
				"url":      rawURL,
			}).Info("매물 ID를 찾을 수 없는 URL입니다")
		}
		return ref, nil, err
	}

	if l, ok := r.cache.Get(ref.ID); ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"provider": p.String(),
			"item_id":  ref.ID,
		}).Debug("캐시된 매물을 사용합니다")

		return ref, l, nil
	}

	l, err := a.Fetch(ctx, ref)
	if err != nil {
		fields := applog.Fields{
			"provider": p.String(),
			"item_id":  ref.ID,
			"error":    err,
		}
		if apperrors.Is(err, apperrors.NotFound) {
			applog.WithComponentAndFields(component, fields).Info("매물을 찾을 수 없습니다")
		} else {
			applog.WithComponentAndFields(component, fields).Error("매물 조회 중 오류가 발생했습니다")
		}
		return ref, nil, err
	}

	r.cache.Set(ref.ID, l)

	applog.WithComponentAndFields(component, applog.Fields{
		"provider":    p.String(),
		"item_id":     ref.ID,
		"image_count": l.ImageCount(),
	}).Info("매물 조회 완료")

	return ref, l, nil
}
