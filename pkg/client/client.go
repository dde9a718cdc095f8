// Package client is a thin typed HTTP client for the comanda API, used by
// the terminal order board.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/comandahq/comanda/internal/model"
)

type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Orders fetches the full order list for the restaurant.
func (c *Client) Orders(ctx context.Context, restaurantID string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+restaurantID, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus patches the order's backend status.
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/status", body, nil)
}

// Delete removes the order.
func (c *Client) Delete(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+orderID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: http %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
