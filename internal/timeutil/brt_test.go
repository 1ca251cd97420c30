package timeutil

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	ts, err := ParseDate("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.UTC().Hour())

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("  ")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))

	d := time.Date(2024, time.January, 5, 12, 0, 0, 0, BRT)
	assert.Equal(t, "05/01/2024", FormatDate(d))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "-", FormatDay(time.Time{}))

	var d time.Time
	require.NoError(t, pgtype.NewMap().Scan(pgtype.DateOID, pgtype.TextFormatCode, []byte("2024-03-01"), &d))
	assert.Equal(t, "01/03/2024", FormatDay(d))

	parsed, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "01/06/2024", FormatDay(parsed))
}

func TestParseEndDate(t *testing.T) {
	end, exclusive, err := ParseEndDate("2024-01-31")
	require.NoError(t, err)
	assert.True(t, exclusive)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, BRT), end)

	end, exclusive, err = ParseEndDate("2024-01-31T18:00:00Z")
	require.NoError(t, err)
	assert.False(t, exclusive)
	assert.Equal(t, 18, end.UTC().Hour())

	_, _, err = ParseEndDate("31/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
