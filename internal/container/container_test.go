package container

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/infrastructure/camera"
	"smart-fridge/internal/infrastructure/fridgeapi"
)

type countingView struct {
	items [][]entity.InventoryItem
	shown []string
}

func (v *countingView) Show(ctx context.Context, n entity.NotificationState) error {
	v.shown = append(v.shown, n.Item)
	return nil
}

func (v *countingView) Hide(ctx context.Context, n entity.NotificationState) error { return nil }

func (v *countingView) InventoryUpdated(ctx context.Context, items []entity.InventoryItem) error {
	v.items = append(v.items, items)
	return nil
}

func TestContainer_WiresCycleEndToEnd(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/classify":
			_, _ = w.Write([]byte(`{"item":"Yogurt"}`))
		case "/inventory":
			_, _ = w.Write([]byte(`[{"name":"Yogurt","count":1}]`))
		}
	}))
	defer backend.Close()

	client := fridgeapi.NewClient(backend.URL, time.Second)
	device := camera.NewDevice(camera.OpenStill(image.NewRGBA(image.Rect(0, 0, 32, 24))), 0)
	c := New(device, client, client, client)

	view := &countingView{}
	c.Notifications.Attach(view)
	c.Inventory.Attach(view)

	ctx := context.Background()
	require.NoError(t, c.Workflow.Start(ctx))

	_, err := c.Workflow.RunCycle(ctx, entity.IntentAdd)
	require.NoError(t, err)
	c.Workflow.Wait()

	require.Equal(t, []string{"Yogurt"}, view.shown)
	require.Len(t, view.items, 2)
	require.Equal(t, []entity.InventoryItem{{Name: "Yogurt", Count: 1}}, c.Inventory.Current())

	require.NoError(t, c.Workflow.Stop(ctx))
	require.False(t, device.Bound())
}
