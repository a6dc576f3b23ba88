package riffle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayerRank(t *testing.T) {
	require.Less(t, LayerDataStructure.Rank(), LayerConfig.Rank())
	require.Less(t, LayerConfig.Rank(), LayerUtility.Rank())
	require.Less(t, LayerUtility.Rank(), LayerDataAccess.Rank())
	require.Less(t, LayerDataAccess.Rank(), LayerBusinessLogic.Rank())
	require.Less(t, LayerBusinessLogic.Rank(), LayerOrchestration.Rank())
	require.Less(t, LayerOrchestration.Rank(), LayerEntryPoint.Rank())
	require.Less(t, LayerEntryPoint.Rank(), LayerTest.Rank())
	require.Less(t, LayerTest.Rank(), LayerUnknown.Rank())

	// Missing and unrecognized layers rank as unknown.
	require.Equal(t, LayerUnknown.Rank(), Layer("").Rank())
	require.Equal(t, LayerUnknown.Rank(), Layer("frontend").Rank())
}

func TestLayerFromString(t *testing.T) {
	require.Equal(t, LayerDataAccess, LayerFromString("data-access"))
	require.Equal(t, LayerEntryPoint, LayerFromString("  Entry-Point "))
	require.Equal(t, LayerUnknown, LayerFromString("no-such-layer"))
	require.Equal(t, LayerUnknown, LayerFromString(""))
}

func TestLayerValid(t *testing.T) {
	require.True(t, LayerTest.Valid())
	require.False(t, Layer("widget").Valid())
	require.False(t, Layer("").Valid())
}
