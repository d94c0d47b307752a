package pgstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parknav/parknav/internal/core/domain"
)

func TestParseGridPayload(t *testing.T) {
	cells, rows, cols, err := parseGridPayload("B1", 2, []byte(`["e.+","#.s"]`))
	require.NoError(t, err)

	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	require.Len(t, cells, 6)
	assert.Equal(t, domain.KindEntrance, cells[0].Kind)
	assert.Equal(t, domain.Coord{Level: 2, Row: 1, Col: 2}, cells[5].Coord)
	assert.Equal(t, domain.KindSlot, cells[5].Kind)
}

func TestParseGridPayload_NotAnArray(t *testing.T) {
	_, _, _, err := parseGridPayload("B1", 0, []byte(`{"grid": true}`))
	require.ErrorIs(t, err, domain.ErrMalformedMap)
}

func TestParseGridPayload_BadLegend(t *testing.T) {
	_, _, _, err := parseGridPayload("B1", 0, []byte(`["..","?."]`))
	require.ErrorIs(t, err, domain.ErrMalformedMap)
	assert.Contains(t, err.Error(), domain.ErrUnknownCellKind.Error())
}

func TestNotFound(t *testing.T) {
	err := notFound("B9")
	require.ErrorIs(t, err, domain.ErrMapNotFound)
	assert.Contains(t, err.Error(), "B9")
}
