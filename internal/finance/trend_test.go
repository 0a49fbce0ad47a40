package finance

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketsWithTotals(totals ...int64) []Bucket {
	buckets := make([]Bucket, len(totals))
	for i, total := range totals {
		buckets[i] = Bucket{Index: i + 1, Total: decimal.NewFromInt(total)}
	}
	return buckets
}

func TestApplyTrend_SkipsFirstAndZeroBase(t *testing.T) {
	buckets := bucketsWithTotals(100, 150, 0, 50)

	ApplyTrend(buckets)

	assert.Nil(t, buckets[0].ChangePercent)
	require.NotNil(t, buckets[1].ChangePercent, spew.Sdump(buckets))
	assert.Equal(t, "50.00", buckets[1].ChangePercent.StringFixed(2))
	require.NotNil(t, buckets[2].ChangePercent)
	assert.Equal(t, "-100.00", buckets[2].ChangePercent.StringFixed(2))
	assert.Nil(t, buckets[3].ChangePercent)
}

func TestApplyTrend_RoundsToTwoPlaces(t *testing.T) {
	buckets := bucketsWithTotals(3, 4)

	ApplyTrend(buckets)

	require.NotNil(t, buckets[1].ChangePercent)
	assert.True(t, buckets[1].ChangePercent.Equal(decimal.RequireFromString("33.33")))
}

func TestApplyTrend_EmptyAndSingle(t *testing.T) {
	ApplyTrend(nil)

	single := bucketsWithTotals(10)
	ApplyTrend(single)
	assert.Nil(t, single[0].ChangePercent)
}

func TestApplyTrend_ResetsPreviousValues(t *testing.T) {
	buckets := bucketsWithTotals(0, 10)
	stale := decimal.NewFromInt(99)
	buckets[1].ChangePercent = &stale

	ApplyTrend(buckets)

	assert.Nil(t, buckets[1].ChangePercent)
}

func TestPercent_ZeroBase(t *testing.T) {
	pct, ok := Percent(decimal.NewFromInt(5), decimal.Zero)
	assert.False(t, ok)
	assert.True(t, pct.IsZero())

	_, ok = PercentChange(decimal.NewFromInt(5), decimal.Zero)
	assert.False(t, ok)
}
