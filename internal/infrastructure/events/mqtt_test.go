package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"smart-fridge/internal/domain/entity"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool { return true }

func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	retained bool
	payload  []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{topic: topic, retained: retained, payload: payload.([]byte)})
	return &fakeToken{err: p.err}
}

func TestMQTTEmitter_Notification(t *testing.T) {
	pub := &fakePublisher{}
	e := NewMQTTEmitter(pub, "kiosk")

	n := entity.NotificationState{Visible: true, Item: "Milk", Intent: entity.IntentAdd, Seq: 3, CycleID: "c-1"}
	require.NoError(t, e.Show(context.Background(), n))

	n.Visible = false
	require.NoError(t, e.Hide(context.Background(), n))

	require.Len(t, pub.msgs, 2)
	require.Equal(t, "kiosk/notification", pub.msgs[0].topic)
	require.True(t, pub.msgs[0].retained)

	var ev notificationEvent
	require.NoError(t, json.Unmarshal(pub.msgs[0].payload, &ev))
	require.True(t, ev.Visible)
	require.Equal(t, "Milk", ev.Item)
	require.Equal(t, "add", ev.Intent)
	require.Equal(t, "Milk added to the fridge", ev.Message)

	require.NoError(t, json.Unmarshal(pub.msgs[1].payload, &ev))
	require.False(t, ev.Visible)
}

func TestMQTTEmitter_Inventory(t *testing.T) {
	pub := &fakePublisher{}
	e := NewMQTTEmitter(pub, "")

	items := []entity.InventoryItem{{Name: "Eggs", Count: 6}, {Name: "Milk", Count: 1}}
	require.NoError(t, e.InventoryUpdated(context.Background(), items))

	require.Equal(t, "fridge/inventory", pub.msgs[0].topic)
	var ev inventoryEvent
	require.NoError(t, json.Unmarshal(pub.msgs[0].payload, &ev))
	require.Equal(t, items, ev.Items)
	require.Equal(t, 7, ev.Total)
}

func TestMQTTEmitter_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	e := NewMQTTEmitter(pub, "fridge")

	err := e.Show(context.Background(), entity.NotificationState{Item: "Milk"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "fridge/notification")
}
