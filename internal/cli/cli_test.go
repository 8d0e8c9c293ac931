package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/domain"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("43.06, 141.35")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{Lat: 43.06, Lng: 141.35}, p)

	_, err = parsePoint("43.06")
	assert.Error(t, err)
	_, err = parsePoint("north,east")
	assert.Error(t, err)
}

func TestParseDayWindow(t *testing.T) {
	start, end, err := parseDayWindow("09:00-18:30")
	require.NoError(t, err)
	assert.Equal(t, domain.MustClock("09:00"), start)
	assert.Equal(t, domain.MustClock("18:30"), end)

	_, _, err = parseDayWindow("09:00")
	assert.Error(t, err)
}

func TestParseLunch(t *testing.T) {
	lunch, err := parseLunch("12:00-14:00/60")
	require.NoError(t, err)
	assert.Equal(t, domain.MustClock("12:00"), lunch.WindowOpen)
	assert.Equal(t, domain.MustClock("14:00"), lunch.WindowClose)
	assert.Equal(t, 60, lunch.DurationMin)

	_, err = parseLunch("12:00-14:00")
	assert.Error(t, err)
	_, err = parseLunch("12:00-14:00/long")
	assert.Error(t, err)
}
