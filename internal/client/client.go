// Package client is the REST client for the todo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Todo mirrors the wire shape served by the API.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetAll(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) Create(ctx context.Context, text string) (*Todo, error) {
	var todo Todo
	if err := c.do(ctx, http.MethodPost, "/todos", map[string]string{"text": text}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Update(ctx context.Context, id int64, completed bool) (*Todo, error) {
	var todo Todo
	path := "/todos/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, map[string]bool{"completed": completed}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	path := "/todos/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	var envelope struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.Type = envelope.Type
	}
	if apiErr.Message == "" {
		apiErr.Message = res.Status
	}
	return apiErr
}
