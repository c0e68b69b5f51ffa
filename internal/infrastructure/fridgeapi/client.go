package fridgeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smart-fridge/internal/domain/entity"
)

// DefaultTimeout таймаут транспорта по умолчанию
const DefaultTimeout = 30 * time.Second

// maxBodySize ограничение на размер ответа сервиса
const maxBodySize = 4 << 20

// Client HTTP-клиент сервиса холодильника: распознавание, инвентарь, рецепты
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента; timeout <= 0 означает DefaultTimeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do выполняет запрос и возвращает статус и тело ответа.
// Любая ошибка транспорта оборачивается в entity.ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: build %s %s: %v", entity.ErrNetwork, method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", entity.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read %s response: %v", entity.ErrNetwork, path, err)
	}

	return resp.StatusCode, data, nil
}
