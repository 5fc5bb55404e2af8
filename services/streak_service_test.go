package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(offset int) time.Time {
	return dayStartLocal(time.Now()).AddDate(0, 0, offset)
}

func TestConsecutiveDays_Empty(t *testing.T) {
	assert.Equal(t, 0, ConsecutiveDays(nil, time.Now()))
}

func TestConsecutiveDays_RunEndingToday(t *testing.T) {
	dates := []time.Time{day(0), day(-1), day(-2)}
	assert.Equal(t, 3, ConsecutiveDays(dates, time.Now()))
}

func TestConsecutiveDays_AliveFromYesterday(t *testing.T) {
	// Today not logged yet; the streak is still counted from yesterday.
	dates := []time.Time{day(-1), day(-2)}
	assert.Equal(t, 2, ConsecutiveDays(dates, time.Now()))
}

func TestConsecutiveDays_BurnedWhenLatestTooOld(t *testing.T) {
	dates := []time.Time{day(-2), day(-3), day(-4)}
	assert.Equal(t, 0, ConsecutiveDays(dates, time.Now()))
}

func TestConsecutiveDays_GapStopsTheCount(t *testing.T) {
	dates := []time.Time{day(0), day(-1), day(-3), day(-4)}
	assert.Equal(t, 2, ConsecutiveDays(dates, time.Now()))
}

func TestConsecutiveDays_DuplicateDaysCountOnce(t *testing.T) {
	dates := []time.Time{day(0), day(0), day(-1), day(-1)}
	assert.Equal(t, 2, ConsecutiveDays(dates, time.Now()))
}

func TestConsecutiveDays_IntradayTimestampsCollapse(t *testing.T) {
	morning := day(0).Add(8 * time.Hour)
	evening := day(0).Add(20 * time.Hour)
	dates := []time.Time{morning, evening, day(-1).Add(13 * time.Hour)}
	assert.Equal(t, 2, ConsecutiveDays(dates, time.Now()))
}
