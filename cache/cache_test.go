package cache

import (
	"testing"

	"dcim/dao/model"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetSet(t *testing.T) {
	s := New()

	_, ok := s.Get(ListingKey(model.EntityRacks))
	assert.False(t, ok)

	s.Set(ListingKey(model.EntityRacks), []string{"A1"})
	v, ok := s.Get(ListingKey(model.EntityRacks))
	assert.True(t, ok)
	assert.Equal(t, []string{"A1"}, v)
}

func TestInvalidateListingDropsSummaryToo(t *testing.T) {
	s := New()
	s.Set(ListingKey(model.EntityRacks), 1)
	s.Set(ListingKey(model.EntityDevices), 2)
	s.Set(SummaryKey(), 3)

	s.InvalidateListing(model.EntityRacks)

	_, ok := s.Get(ListingKey(model.EntityRacks))
	assert.False(t, ok)
	_, ok = s.Get(SummaryKey())
	assert.False(t, ok)
	_, ok = s.Get(ListingKey(model.EntityDevices))
	assert.True(t, ok)
}

func TestInvalidateSummary(t *testing.T) {
	s := New()
	s.Set(SummaryKey(), 3)
	s.InvalidateSummary()
	_, ok := s.Get(SummaryKey())
	assert.False(t, ok)
}
