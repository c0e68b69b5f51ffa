package kiosk

import (
	"context"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	app "smart-fridge/internal/application"
	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/infrastructure/camera"
	"smart-fridge/internal/infrastructure/fridgeapi"
)

// fakeBackend минимальный сервис холодильника: /classify меняет счётчики, /inventory их отдаёт
type fakeBackend struct {
	mu        sync.Mutex
	item      string
	counts    map[string]int
	order     []string
	failInv   bool
	classifyN int
}

func newFakeBackend(item string) *fakeBackend {
	return &fakeBackend{item: item, counts: map[string]int{}}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.URL.Path {
	case "/classify":
		b.classifyN++
		var req struct {
			Image  string `json:"image"`
			Action string `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.HasPrefix(req.Image, "data:image/jpeg;base64,") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := b.counts[b.item]; !ok {
			b.order = append(b.order, b.item)
		}
		if req.Action == "add" {
			b.counts[b.item]++
		} else if b.counts[b.item] > 0 {
			b.counts[b.item]--
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"item": b.item})
	case "/inventory":
		if b.failInv {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		items := make([]entity.InventoryItem, 0, len(b.order))
		for _, name := range b.order {
			items = append(items, entity.InventoryItem{Name: name, Count: b.counts[name]})
		}
		_ = json.NewEncoder(w).Encode(items)
	case "/getrecipe":
		_, _ = w.Write([]byte(`{"Recipe_name":"Milk soup","Ingredients":["milk"],"Step by step instructions":["boil"],"Nutritional_note":"calcium"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type kioskFixture struct {
	backend *fakeBackend
	ctrl    *app.WorkflowController
	device  *camera.Device
	server  *httptest.Server
}

func newKioskFixture(t *testing.T, withCamera bool) *kioskFixture {
	t.Helper()

	backend := newFakeBackend("milk")
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	client := fridgeapi.NewClient(backendSrv.URL, time.Second)
	device := camera.NewDevice(camera.OpenStill(image.NewRGBA(image.Rect(0, 0, 640, 480))), 0)
	store := app.NewInventoryStore(client)
	ctrl := app.NewWorkflowController(device, client, store, app.NewNotificationPresenter())

	if withCamera {
		require.NoError(t, ctrl.Start(context.Background()))
	}
	t.Cleanup(func() { _ = ctrl.Stop(context.Background()) })

	h := &Handler{Workflow: ctrl, Recipes: app.NewRecipeService(client, store), Bound: device.Bound}
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)

	return &kioskFixture{backend: backend, ctrl: ctrl, device: device, server: srv}
}

func (f *kioskFixture) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestKiosk_Ping(t *testing.T) {
	f := newKioskFixture(t, false)
	resp, body := f.do(t, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(body))
}

func TestKiosk_AddCycleUpdatesStateAndInventory(t *testing.T) {
	f := newKioskFixture(t, true)

	resp, body := f.do(t, http.MethodPost, "/api/actions/add", "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var accepted map[string]string
	require.NoError(t, json.Unmarshal(body, &accepted))
	require.NotEmpty(t, accepted["cycle_id"])

	f.ctrl.Wait()

	resp, body = f.do(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state stateResponse
	require.NoError(t, json.Unmarshal(body, &state))
	require.Equal(t, entity.StateNotifying, state.State)
	require.True(t, state.Notification.Visible)
	require.Equal(t, "milk", state.Notification.Item)
	require.Equal(t, "add", state.Notification.Intent)
	require.Equal(t, accepted["cycle_id"], state.Notification.CycleID)
	require.Equal(t, []entity.InventoryItem{{Name: "milk", Count: 1}}, state.Inventory)
	require.NotNil(t, state.CameraBound)
	require.True(t, *state.CameraBound)

	resp, _ = f.do(t, http.MethodPost, "/api/notification/dismiss", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = f.do(t, http.MethodGet, "/api/state", "")
	require.NoError(t, json.Unmarshal(body, &state))
	require.False(t, state.Notification.Visible)
	require.Equal(t, entity.StateIdle, state.State)
}

func TestKiosk_PressWithoutCameraIsNoop(t *testing.T) {
	f := newKioskFixture(t, false)

	resp, _ := f.do(t, http.MethodPost, "/api/actions/remove", "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	f.ctrl.Wait()

	require.Zero(t, f.backend.classifyN)
	require.False(t, f.ctrl.Notification().Visible)

	resp, _ = f.do(t, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestKiosk_PressAndWaitReturnsOutcome(t *testing.T) {
	f := newKioskFixture(t, true)

	resp, body := f.do(t, http.MethodPost, "/api/actions/add?wait=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out cycleResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.CycleID)
	require.Equal(t, "add", out.Intent)
	require.Equal(t, "milk", out.Item)
	require.False(t, out.Stale)
	require.Equal(t, out.CycleID, f.ctrl.Notification().CycleID)
	f.ctrl.Wait()
}

func TestKiosk_PressAndWaitWithoutCamera(t *testing.T) {
	f := newKioskFixture(t, false)

	resp, _ := f.do(t, http.MethodPost, "/api/actions/remove?wait=1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Zero(t, f.backend.classifyN)
}

func TestKiosk_UnknownIntent(t *testing.T) {
	f := newKioskFixture(t, true)
	resp, _ := f.do(t, http.MethodPost, "/api/actions/eat", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKiosk_Snapshot(t *testing.T) {
	f := newKioskFixture(t, true)
	resp, body := f.do(t, http.MethodGet, "/api/snapshot", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap snapshotResponse
	require.NoError(t, json.Unmarshal(body, &snap))
	require.Equal(t, 640, snap.Width)
	require.Equal(t, 480, snap.Height)
	require.True(t, strings.HasPrefix(snap.Image, "data:image/jpeg;base64,"))
}

func TestKiosk_RefreshFailureKeepsStaleInventory(t *testing.T) {
	f := newKioskFixture(t, true)

	f.do(t, http.MethodPost, "/api/actions/add", "")
	f.ctrl.Wait()
	require.Len(t, f.ctrl.Inventory(), 1)

	f.backend.mu.Lock()
	f.backend.failInv = true
	f.backend.mu.Unlock()

	resp, body := f.do(t, http.MethodPost, "/api/inventory/refresh", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var inv inventoryResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	require.True(t, inv.Stale)
	require.Equal(t, []entity.InventoryItem{{Name: "milk", Count: 1}}, inv.Items)

	_, body = f.do(t, http.MethodGet, "/api/inventory", "")
	require.NoError(t, json.Unmarshal(body, &inv))
	require.Equal(t, []entity.InventoryItem{{Name: "milk", Count: 1}}, inv.Items)
}

func TestKiosk_Recipe(t *testing.T) {
	f := newKioskFixture(t, true)

	resp, body := f.do(t, http.MethodPost, "/api/recipe", `{"mealType":"lunch","dietaryNeeds":["vegan"],"cuisineType":"thai"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recipe entity.Recipe
	require.NoError(t, json.Unmarshal(body, &recipe))
	require.Equal(t, "Milk soup", recipe.Name)
	require.Equal(t, []string{"boil"}, recipe.Steps)

	resp, _ = f.do(t, http.MethodPost, "/api/recipe", `not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
