package uptime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZonesLoad(t *testing.T) {
	z := NewZones()

	loc, err := z.Load("America/Chicago")
	require.NoError(t, err)
	require.Equal(t, "America/Chicago", loc.String())

	again, err := z.Load("America/Chicago")
	require.NoError(t, err)
	require.Same(t, loc, again)
}

func TestZonesLoadUnknown(t *testing.T) {
	z := NewZones()

	_, err := z.Load("Not/AZone")
	require.ErrorIs(t, err, ErrInvalidTimeZone)
}
