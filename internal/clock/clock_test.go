package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, MinuteOfDay("00:00"))
	assert.Equal(t, 510, MinuteOfDay("08:30"))
	assert.Equal(t, 1139, MinuteOfDay("18:59"))
	assert.Equal(t, -1, MinuteOfDay("8h30"))
	assert.Equal(t, -1, MinuteOfDay(""))
}

func TestTodayAndTomorrow(t *testing.T) {
	tm, _ := time.Parse(DateLayout, "2026-12-31")
	c := Fixed{T: tm}

	assert.Equal(t, "2026-12-31", Today(c))
	// virada de ano
	assert.Equal(t, "2027-01-01", Tomorrow(c))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidDate("2026-09-02"))
	assert.False(t, ValidDate("02/09/2026"))
	assert.True(t, ValidTime("09:30"))
	assert.False(t, ValidTime("9:30pm"))
}
