package fridgeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

type classifyRequest struct {
	Image  string `json:"image"`
	Action string `json:"action"`
}

type classifyResponse struct {
	Item *string `json:"item"`
}

// Classify отправляет кадр на POST /classify.
//
// Ответ считается успешным, если тело разбирается как {"item": string}, независимо от
// HTTP-статуса: сервис не различает 2xx и остальные коды на успешном пути. Не-2xx
// только пишется в лог.
func (c *Client) Classify(ctx context.Context, frame *entity.CaptureFrame, intent entity.ClassifyIntent) (*entity.ClassifyResult, error) {
	if frame.Empty() {
		return nil, entity.ErrNoFrame
	}
	if !intent.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownIntent, intent)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/classify", classifyRequest{
		Image:  frame.DataURL,
		Action: string(intent),
	})
	if err != nil {
		return nil, err
	}

	var resp classifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parse classify response (status %d): %v", entity.ErrNetwork, status, err)
	}
	if resp.Item == nil {
		return nil, fmt.Errorf("%w: classify response has no item (status %d)", entity.ErrNetwork, status)
	}

	if status < 200 || status > 299 {
		slog.Warn("classify returned non-2xx with parseable body, treating as success",
			"status", status,
			"item", *resp.Item)
	}

	return &entity.ClassifyResult{Item: *resp.Item}, nil
}

var _ port.Classifier = (*Client)(nil)
