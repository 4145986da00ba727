package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tshirt-store/models"
)

// AdminAPI talks to the back-office listing endpoints. It implements
// both OrderLoader (full page) and LatestFetcher (limit=1 poll query).
type AdminAPI struct {
	baseURL  string
	token    string
	http     *http.Client
	pageSize int
}

func NewAdminAPI(baseURL, token string) *AdminAPI {
	return &AdminAPI{
		baseURL:  baseURL,
		token:    token,
		http:     &http.Client{Timeout: 15 * time.Second},
		pageSize: 50,
	}
}

func (a *AdminAPI) LoadOrders(ctx context.Context) ([]models.Order, error) {
	return a.listOrders(ctx, a.pageSize)
}

func (a *AdminAPI) LatestOrder(ctx context.Context) (*models.Order, error) {
	orders, err := a.listOrders(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

func (a *AdminAPI) listOrders(ctx context.Context, limit int) ([]models.Order, error) {
	url := fmt.Sprintf("%s/admin/orders?limit=%d&sortBy=createdAt", a.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order listing returned %d", resp.StatusCode)
	}

	var body models.OrderListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding order listing: %w", err)
	}
	return body.Orders, nil
}
