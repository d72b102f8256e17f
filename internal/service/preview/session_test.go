package preview

import (
	"testing"

	"github.com/darkkaiser/listing-bot/internal/service/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheWith(ls ...*listing.Listing) *listing.Cache {
	c := listing.NewCache()
	for _, l := range ls {
		c.Set(l.ID, l)
	}
	return c
}

func TestSessionStore(t *testing.T) {
	s := NewSessionStore()

	_, ok := s.Get("k")
	assert.False(t, ok)

	s.Put("k", Session{ItemID: "123456789012", Index: 1})
	got, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
	assert.False(t, got.CreatedAt.IsZero())

	s.Put("k2", Session{})
	assert.Equal(t, 2, s.Len())

	s.Delete("k")
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 1, s.Clear())
	assert.Zero(t, s.Len())
}
