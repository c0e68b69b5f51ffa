package app

import (
	"context"
	"sync"
	"sync/atomic"

	"smart-fridge/internal/domain/entity"
)

type fakeCamera struct {
	mu         sync.Mutex
	frame      *entity.CaptureFrame
	acquireErr error
	acquired   int
	released   int
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{frame: &entity.CaptureFrame{Width: 640, Height: 480, DataURL: "data:image/jpeg;base64,AAAA"}}
}

func (c *fakeCamera) Acquire(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acquired++
	return c.acquireErr
}

func (c *fakeCamera) Snapshot() (*entity.CaptureFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil, false
	}
	cp := *c.frame
	return &cp, true
}

func (c *fakeCamera) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released++
	return nil
}

func (c *fakeCamera) setFrame(frame *entity.CaptureFrame) {
	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()
}

func (c *fakeCamera) releasedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

type classifyCall struct {
	intent entity.ClassifyIntent
	reply  chan classifyReply
}

type classifyReply struct {
	item string
	err  error
}

// fakeClassifier отвечает сразу через fn, либо отдаёт вызов в calls и ждёт ответа
type fakeClassifier struct {
	fn    func(intent entity.ClassifyIntent) (*entity.ClassifyResult, error)
	calls chan classifyCall
	count atomic.Int32
}

func (f *fakeClassifier) Classify(ctx context.Context, frame *entity.CaptureFrame, intent entity.ClassifyIntent) (*entity.ClassifyResult, error) {
	f.count.Add(1)
	if f.fn != nil {
		return f.fn(intent)
	}
	call := classifyCall{intent: intent, reply: make(chan classifyReply, 1)}
	f.calls <- call
	r := <-call.reply
	if r.err != nil {
		return nil, r.err
	}
	return &entity.ClassifyResult{Item: r.item}, nil
}

type fakeInventorySource struct {
	mu    sync.Mutex
	fn    func(ctx context.Context) ([]entity.InventoryItem, error)
	items []entity.InventoryItem
	err   error
	count atomic.Int32
}

func (f *fakeInventorySource) FetchInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	f.count.Add(1)
	f.mu.Lock()
	fn, items, err := f.fn, f.items, f.err
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	if err != nil {
		return nil, err
	}
	return entity.CloneInventory(items), nil
}

func (f *fakeInventorySource) set(items []entity.InventoryItem, err error) {
	f.mu.Lock()
	f.items, f.err = items, err
	f.mu.Unlock()
}

type recordingView struct {
	mu    sync.Mutex
	shown []entity.NotificationState
	hides int
	err   error
}

func (v *recordingView) Show(ctx context.Context, n entity.NotificationState) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = append(v.shown, n)
	return v.err
}

func (v *recordingView) Hide(ctx context.Context, n entity.NotificationState) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hides++
	return v.err
}

func (v *recordingView) items() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.shown))
	for _, n := range v.shown {
		out = append(out, n.Item)
	}
	return out
}

type recordingInventoryView struct {
	mu        sync.Mutex
	snapshots [][]entity.InventoryItem
}

func (v *recordingInventoryView) InventoryUpdated(ctx context.Context, items []entity.InventoryItem) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshots = append(v.snapshots, items)
	return nil
}
