package models_test

import (
	"testing"

	"github.com/souqdz/souq/app/models"
	"github.com/stretchr/testify/require"
)

func TestStringListNilIsSQLNull(t *testing.T) {
	var l models.StringList
	v, err := l.Value()
	require.NoError(t, err)
	require.Nil(t, v, "nil list must store as NULL, not \"[]\"")

	var scanned models.StringList
	require.NoError(t, scanned.Scan(nil))
	require.Nil(t, scanned)
}

func TestStringListRoundTrip(t *testing.T) {
	l := models.StringList{"S", "M"}
	v, err := l.Value()
	require.NoError(t, err)

	var out models.StringList
	require.NoError(t, out.Scan(v))
	require.Equal(t, l, out)

	// Drivers may hand back strings instead of bytes.
	require.NoError(t, out.Scan(`["a","b"]`))
	require.Equal(t, models.StringList{"a", "b"}, out)

	require.Error(t, out.Scan(42))
}

func TestStringListContains(t *testing.T) {
	l := models.StringList{"a.jpg", "b.jpg"}
	require.True(t, l.Contains("a.jpg"))
	require.False(t, l.Contains("c.jpg"))
}
