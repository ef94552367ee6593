package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid(0))
	assert.True(t, Valid(12.5))
	assert.False(t, Valid(-0.01))
	assert.False(t, Valid(math.NaN()))
	assert.False(t, Valid(math.Inf(1)))
}

func TestSplitAndPercent(t *testing.T) {
	assert.Equal(t, 750.0, Split(1500, 2))
	assert.Equal(t, 0.0, Split(100, 0))
	assert.Equal(t, 70.0, Percent(70, 100))
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.True(t, Equal(Split(100, 3)*3, 100))
}

func TestPortion(t *testing.T) {
	assert.Equal(t, 600.0, Portion(750, 1200, 1500))
	assert.Equal(t, 0.0, Portion(750, 0, 1500))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1700.00", Format(1700))
	assert.Equal(t, "$33.33", Format(100.0/3))
	assert.Equal(t, 33.33, Round2(100.0/3))
}
