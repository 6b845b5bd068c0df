package root

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArg(t *testing.T) {
	today := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	d, err := dateArg("", today)
	require.NoError(t, err)
	assert.Equal(t, today, d)

	d, err = dateArg("tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, today.AddDate(0, 0, 1), d)

	d, err = dateArg("2025-02-01", today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = dateArg("01.02.2025", today)
	assert.Error(t, err)
}

func TestIndexArg(t *testing.T) {
	i, err := indexArg("2")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = indexArg("-1")
	assert.Error(t, err)
	_, err = indexArg("x")
	assert.Error(t, err)
}

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2025-01-06 14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, err = parseWhen("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Day())

	_, err = parseWhen("soon")
	assert.Error(t, err)

	none, err := optionalWhen("  ")
	require.NoError(t, err)
	assert.Nil(t, none)
}
