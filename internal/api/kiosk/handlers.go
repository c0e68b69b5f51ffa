package kiosk

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"smart-fridge/internal/domain/entity"
)

// maxRecipeBody ограничение на размер тела запроса рецепта
const maxRecipeBody = 64 << 10

// Workflow часть контроллера, которую использует страница киоска
type Workflow interface {
	Press(intent entity.ClassifyIntent) (string, error)
	RunCycle(ctx context.Context, intent entity.ClassifyIntent) (*entity.CycleOutcome, error)
	Dismiss(ctx context.Context) bool
	State() entity.WorkflowState
	Notification() entity.NotificationState
	Inventory() []entity.InventoryItem
	RefreshInventory(ctx context.Context) ([]entity.InventoryItem, error)
	Preview() (*entity.CaptureFrame, bool)
}

// Recipes генератор рецептов
type Recipes interface {
	Generate(ctx context.Context, prefs entity.RecipePreferences) (*entity.Recipe, error)
}

// Handler обработчики HTTP-интерфейса киоска
type Handler struct {
	Workflow Workflow
	Recipes  Recipes
	// Bound сообщает, подключена ли камера; nil означает "неизвестно"
	Bound func() bool
}

type notificationResponse struct {
	Visible bool       `json:"visible"`
	Item    string     `json:"item,omitempty"`
	Intent  string     `json:"intent,omitempty"`
	Message string     `json:"message,omitempty"`
	CycleID string     `json:"cycle_id,omitempty"`
	ShownAt *time.Time `json:"shown_at,omitempty"`
}

type stateResponse struct {
	State        entity.WorkflowState   `json:"state"`
	Notification notificationResponse   `json:"notification"`
	Inventory    []entity.InventoryItem `json:"inventory"`
	CameraBound  *bool                  `json:"camera_bound,omitempty"`
}

type snapshotResponse struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Image  string `json:"image"`
}

type inventoryResponse struct {
	Items []entity.InventoryItem `json:"items"`
	Stale bool                   `json:"stale,omitempty"`
	Error string                 `json:"error,omitempty"`
}

type cycleResponse struct {
	CycleID string `json:"cycle_id"`
	Intent  string `json:"intent"`
	Item    string `json:"item"`
	Stale   bool   `json:"stale"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// State отдаёт всё, что нужно странице для отрисовки
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		State:        h.Workflow.State(),
		Notification: toNotificationResponse(h.Workflow.Notification()),
		Inventory:    h.Workflow.Inventory(),
	}
	if h.Bound != nil {
		bound := h.Bound()
		resp.CameraBound = &bound
	}
	writeJSON(w, http.StatusOK, resp)
}

// Snapshot кадр для превью; 204 если кадра нет
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.Workflow.Preview()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{
		Width:  frame.Width,
		Height: frame.Height,
		Image:  frame.DataURL,
	})
}

// Press запускает цикл распознавания, итог приходит через /api/state.
// С ?wait=true цикл выполняется в запросе и итог возвращается в ответе.
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	intent, err := entity.ParseIntent(chi.URLParam(r, "intent"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		h.runCycle(w, r, intent)
		return
	}

	cycleID, err := h.Workflow.Press(intent)
	if err != nil {
		slog.Error("press failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to start cycle"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"cycle_id": cycleID})
}

// runCycle цикл не отменяется вместе с запросом
func (h *Handler) runCycle(w http.ResponseWriter, r *http.Request, intent entity.ClassifyIntent) {
	out, err := h.Workflow.RunCycle(context.WithoutCancel(r.Context()), intent)
	switch {
	case errors.Is(err, entity.ErrNoFrame):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, entity.ErrNetwork):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	case err != nil:
		slog.Error("cycle failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cycle failed"})
	default:
		writeJSON(w, http.StatusOK, cycleResponse{
			CycleID: out.CycleID,
			Intent:  string(out.Intent),
			Item:    out.Item,
			Stale:   out.Stale,
		})
	}
}

// Dismiss скрывает уведомление
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.Workflow.Dismiss(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Inventory текущий вид инвентаря без обращения к сервису
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, inventoryResponse{Items: h.Workflow.Inventory()})
}

// RefreshInventory перечитывает инвентарь; при сбое отдаёт прежний список с 502
func (h *Handler) RefreshInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Workflow.RefreshInventory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, inventoryResponse{
			Items: h.Workflow.Inventory(),
			Stale: true,
			Error: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, inventoryResponse{Items: items})
}

// Recipe передаёт пожелания генератору рецептов
func (h *Handler) Recipe(w http.ResponseWriter, r *http.Request) {
	if h.Recipes == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "recipe generator is not configured"})
		return
	}

	var prefs entity.RecipePreferences
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecipeBody)).Decode(&prefs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid preferences"})
		return
	}

	recipe, err := h.Recipes.Generate(r.Context(), prefs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrNetwork) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func toNotificationResponse(n entity.NotificationState) notificationResponse {
	resp := notificationResponse{Visible: n.Visible}
	if !n.Visible {
		return resp
	}
	shownAt := n.ShownAt
	resp.Item = n.Item
	resp.Intent = string(n.Intent)
	resp.Message = n.Message()
	resp.CycleID = n.CycleID
	resp.ShownAt = &shownAt
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}
