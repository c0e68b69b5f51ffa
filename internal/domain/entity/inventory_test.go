package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneInventory_Independent(t *testing.T) {
	src := []InventoryItem{{Name: "Milk", Count: 1}}
	dst := CloneInventory(src)
	dst[0].Count = 5
	require.Equal(t, 1, src[0].Count)

	empty := CloneInventory(nil)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestTotalCount(t *testing.T) {
	require.Equal(t, 3, TotalCount([]InventoryItem{{Name: "Eggs", Count: 2}, {Name: "Milk", Count: 1}}))
}

func TestCaptureFrameEmpty(t *testing.T) {
	var f *CaptureFrame
	require.True(t, f.Empty())
	require.True(t, (&CaptureFrame{Width: 640, Height: 0, DataURL: "x"}).Empty())
	require.False(t, (&CaptureFrame{Width: 640, Height: 480, DataURL: "x"}).Empty())
}
