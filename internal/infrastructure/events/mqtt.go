package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

const publishTimeout = 5 * time.Second

// publisher часть mqtt.Client, которая нужна эмиттеру
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTEmitter публикует уведомления и снимки инвентаря в брокер для внешних табло
type MQTTEmitter struct {
	client publisher
	prefix string
}

type notificationEvent struct {
	Visible bool      `json:"visible"`
	Item    string    `json:"item"`
	Intent  string    `json:"intent"`
	Message string    `json:"message"`
	CycleID string    `json:"cycle_id"`
	Seq     uint64    `json:"seq"`
	ShownAt time.Time `json:"shown_at"`
}

type inventoryEvent struct {
	Items []entity.InventoryItem `json:"items"`
	Total int                    `json:"total"`
	At    time.Time              `json:"at"`
}

// NewMQTTEmitter создаёт эмиттер поверх готового клиента
func NewMQTTEmitter(client publisher, prefix string) *MQTTEmitter {
	if prefix == "" {
		prefix = "fridge"
	}
	return &MQTTEmitter{client: client, prefix: prefix}
}

// Connect подключается к брокеру с автопереподключением
func Connect(ctx context.Context, broker, clientID, prefix string) (*MQTTEmitter, mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", broker))
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		slog.Info("mqtt connection established", "broker", broker, "client_id", clientID)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		slog.Warn("mqtt connection lost, will auto-reconnect", "broker", broker, "error", err)
	}

	client := mqtt.NewClient(opts)

	slog.Info("connecting to mqtt broker", "broker", broker)
	token := client.Connect()

	select {
	case <-token.Done():
	case <-ctx.Done():
		client.Disconnect(0)
		return nil, nil, fmt.Errorf("mqtt connect: %w", ctx.Err())
	case <-time.After(publishTimeout):
		client.Disconnect(0)
		return nil, nil, fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("mqtt connection failed: %w", err)
	}

	return NewMQTTEmitter(client, prefix), client, nil
}

// Show публикует новое уведомление
func (e *MQTTEmitter) Show(ctx context.Context, n entity.NotificationState) error {
	return e.publish(e.prefix+"/notification", toNotificationEvent(n))
}

// Hide публикует скрытое уведомление
func (e *MQTTEmitter) Hide(ctx context.Context, n entity.NotificationState) error {
	return e.publish(e.prefix+"/notification", toNotificationEvent(n))
}

// InventoryUpdated публикует снимок инвентаря
func (e *MQTTEmitter) InventoryUpdated(ctx context.Context, items []entity.InventoryItem) error {
	return e.publish(e.prefix+"/inventory", inventoryEvent{
		Items: items,
		Total: entity.TotalCount(items),
		At:    time.Now(),
	})
}

func (e *MQTTEmitter) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	token := e.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	slog.Debug("event published", "topic", topic, "bytes", len(payload))
	return nil
}

func toNotificationEvent(n entity.NotificationState) notificationEvent {
	return notificationEvent{
		Visible: n.Visible,
		Item:    n.Item,
		Intent:  string(n.Intent),
		Message: n.Message(),
		CycleID: n.CycleID,
		Seq:     n.Seq,
		ShownAt: n.ShownAt,
	}
}

var (
	_ port.NotificationView = (*MQTTEmitter)(nil)
	_ port.InventoryView    = (*MQTTEmitter)(nil)
)
