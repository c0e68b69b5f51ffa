package app

import (
	"context"
	"log/slog"
	"sync"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// NotificationPresenter раздаёт состояние уведомления всем подключённым отображениям.
// Собственного состояния не хранит.
type NotificationPresenter struct {
	mu    sync.RWMutex
	views []port.NotificationView
}

// NewNotificationPresenter создаёт презентер
func NewNotificationPresenter(views ...port.NotificationView) *NotificationPresenter {
	return &NotificationPresenter{views: views}
}

// Attach подключает отображение
func (p *NotificationPresenter) Attach(view port.NotificationView) {
	p.mu.Lock()
	p.views = append(p.views, view)
	p.mu.Unlock()
}

// Show показывает уведомление во всех отображениях; ошибки только в лог
func (p *NotificationPresenter) Show(ctx context.Context, n entity.NotificationState) {
	for _, v := range p.snapshot() {
		if err := v.Show(ctx, n); err != nil {
			slog.Warn("notification view show failed", "cycle_id", n.CycleID, "error", err)
		}
	}
}

// Hide скрывает уведомление во всех отображениях
func (p *NotificationPresenter) Hide(ctx context.Context, n entity.NotificationState) {
	for _, v := range p.snapshot() {
		if err := v.Hide(ctx, n); err != nil {
			slog.Warn("notification view hide failed", "cycle_id", n.CycleID, "error", err)
		}
	}
}

func (p *NotificationPresenter) snapshot() []port.NotificationView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]port.NotificationView(nil), p.views...)
}
