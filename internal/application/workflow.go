package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// WorkflowController управляет циклом снимок -> распознавание -> уведомление и
// синхронизация инвентаря.
//
// Каждый цикл получает порядковый номер при запуске. Ответ распознавания старше уже
// показанного уведомления не показывается, поэтому на экране всегда итог самого нового
// из завершившихся циклов. Запросы не отменяются и не повторяются.
type WorkflowController struct {
	camera     port.CaptureDevice
	classifier port.Classifier
	inventory  *InventoryStore
	presenter  *NotificationPresenter
	newID      func() string
	now        func() time.Time

	// renderMu упорядочивает изменение уведомления вместе с его отрисовкой
	renderMu sync.Mutex

	mu           sync.Mutex
	seq          uint64
	running      map[uint64]struct{} // номера незавершённых циклов
	state        entity.WorkflowState
	notification entity.NotificationState

	inflight tracker
}

// NewWorkflowController создаёт контроллер в состоянии Idle
func NewWorkflowController(camera port.CaptureDevice, classifier port.Classifier, inventory *InventoryStore, presenter *NotificationPresenter) *WorkflowController {
	if presenter == nil {
		presenter = NewNotificationPresenter()
	}
	return &WorkflowController{
		camera:     camera,
		classifier: classifier,
		inventory:  inventory,
		presenter:  presenter,
		newID:      func() string { return uuid.New().String() },
		now:        time.Now,
		running:    make(map[uint64]struct{}),
		state:      entity.StateIdle,
	}
}

// Start захватывает камеру и загружает инвентарь. Ошибки не фатальны: без камеры
// снимки просто не получаются, без инвентаря список остаётся пустым.
func (c *WorkflowController) Start(ctx context.Context) error {
	var errs []error

	if err := c.camera.Acquire(ctx); err != nil {
		slog.Error("camera is unavailable, feed stays blank", "error", err)
		errs = append(errs, err)
	}

	if _, err := c.inventory.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Stop ждёт завершения запущенных циклов (не дольше ctx) и освобождает камеру
func (c *WorkflowController) Stop(ctx context.Context) error {
	select {
	case <-c.inflight.wait():
	case <-ctx.Done():
		slog.Warn("stopping with cycles still in flight", "error", ctx.Err())
	}

	return c.camera.Release()
}

// Wait блокируется до завершения всех запущенных циклов и обновлений инвентаря
func (c *WorkflowController) Wait() {
	<-c.inflight.wait()
}

// Press запускает цикл в фоне и сразу возвращает его идентификатор.
// Цикл работает на отдельном контексте и не отменяется.
func (c *WorkflowController) Press(intent entity.ClassifyIntent) (string, error) {
	if !intent.Valid() {
		return "", fmt.Errorf("%w: %q", entity.ErrUnknownIntent, intent)
	}

	id := c.newID()
	c.inflight.add()
	go func() {
		defer c.inflight.done()
		// Итог уже записан в лог и передан отображениям.
		_, _ = c.runCycle(context.Background(), id, intent)
	}()

	return id, nil
}

// RunCycle выполняет один цикл синхронно.
// Без кадра возвращает entity.ErrNoFrame, и вызывающий должен считать это пустым действием.
func (c *WorkflowController) RunCycle(ctx context.Context, intent entity.ClassifyIntent) (*entity.CycleOutcome, error) {
	if !intent.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownIntent, intent)
	}

	c.inflight.add()
	defer c.inflight.done()
	return c.runCycle(ctx, c.newID(), intent)
}

func (c *WorkflowController) runCycle(ctx context.Context, id string, intent entity.ClassifyIntent) (*entity.CycleOutcome, error) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.running[seq] = struct{}{}
	c.state = entity.StateCapturing
	c.mu.Unlock()

	log := slog.With("cycle_id", id, "seq", seq, "intent", string(intent))

	frame, ok := c.camera.Snapshot()
	if !ok || frame.Empty() {
		c.finish(seq)
		log.Info("no frame available, action ignored")
		return nil, entity.ErrNoFrame
	}

	c.transition(seq, entity.StateClassifying)
	log.Debug("classifying frame", "width", frame.Width, "height", frame.Height)

	result, err := c.classifier.Classify(ctx, frame, intent)
	if err != nil {
		c.finish(seq)
		log.Error("classify failed", "error", err)
		return nil, err
	}

	// Сервис уже применил действие к инвентарю, поэтому обновляем список даже для
	// устаревшего ответа. Обновление не упорядочено с показом уведомления.
	c.inflight.add()
	go func() {
		defer c.inflight.done()
		if _, err := c.inventory.Refresh(context.WithoutCancel(ctx)); err != nil {
			log.Warn("inventory refresh after classify failed", "error", err)
		}
	}()

	shown := c.notify(ctx, seq, id, intent, result.Item)
	if shown {
		log.Info("item classified", "item", result.Item)
	} else {
		log.Info("classify response superseded by newer cycle", "item", result.Item)
	}

	return &entity.CycleOutcome{
		CycleID: id,
		Seq:     seq,
		Intent:  intent,
		Item:    result.Item,
		Stale:   !shown,
	}, nil
}

// transition меняет состояние, только если цикл seq последний из запущенных
func (c *WorkflowController) transition(seq uint64, state entity.WorkflowState) {
	c.mu.Lock()
	if seq == c.seq {
		c.state = state
	}
	c.mu.Unlock()
}

// finish завершает цикл без показа уведомления
func (c *WorkflowController) finish(seq uint64) {
	c.mu.Lock()
	c.settle(seq)
	c.mu.Unlock()
}

// settle снимает цикл seq с учёта. Если более новых незавершённых циклов нет, состояние
// определяется уведомлением: видно значит Notifying, иначе Idle. Вызывается под c.mu.
func (c *WorkflowController) settle(seq uint64) {
	delete(c.running, seq)
	for other := range c.running {
		if other > seq {
			return
		}
	}
	if c.notification.Visible {
		c.state = entity.StateNotifying
	} else {
		c.state = entity.StateIdle
	}
}

// notify показывает уведомление, если оно не старше уже показанного
func (c *WorkflowController) notify(ctx context.Context, seq uint64, id string, intent entity.ClassifyIntent, item string) bool {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if seq < c.notification.Seq {
		c.settle(seq)
		c.mu.Unlock()
		return false
	}
	c.notification = entity.NotificationState{
		Visible: true,
		Item:    item,
		Intent:  intent,
		Seq:     seq,
		CycleID: id,
		ShownAt: c.now(),
	}
	c.settle(seq)
	n := c.notification
	c.mu.Unlock()

	c.presenter.Show(ctx, n)
	return true
}

// Dismiss скрывает уведомление. Продукт и намерение остаются до следующего цикла.
// Возвращает false, если скрывать нечего.
//
// Сервис холодильника не вызывается: ни распознавание, ни инвентарь. Подключённые
// отображения получают Hide и сами обновляют свой вывод (сообщение в Telegram, топик MQTT).
func (c *WorkflowController) Dismiss(ctx context.Context) bool {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	if !c.notification.Visible {
		c.mu.Unlock()
		return false
	}
	c.notification.Visible = false
	if c.state == entity.StateNotifying {
		c.state = entity.StateIdle
	}
	n := c.notification
	c.mu.Unlock()

	slog.Info("notification dismissed", "cycle_id", n.CycleID, "item", n.Item)
	c.presenter.Hide(ctx, n)
	return true
}

// State состояние последнего запущенного цикла
func (c *WorkflowController) State() entity.WorkflowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Notification текущее состояние уведомления
func (c *WorkflowController) Notification() entity.NotificationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notification
}

// Inventory текущий вид инвентаря
func (c *WorkflowController) Inventory() []entity.InventoryItem {
	return c.inventory.Current()
}

// RefreshInventory принудительно перечитывает инвентарь
func (c *WorkflowController) RefreshInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	return c.inventory.Refresh(ctx)
}

// Preview снимок для живого превью на странице киоска, без распознавания
func (c *WorkflowController) Preview() (*entity.CaptureFrame, bool) {
	return c.camera.Snapshot()
}
