package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jataveda/Agriconnect/entities"
)

// apiClient talks to the Agriconnect REST API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type loginResult struct {
	User  entities.UserPublic `json:"user"`
	Token string              `json:"token"`
}

func (c *apiClient) login(identifier, password string) (loginResult, error) {
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}
	var out loginResult
	err := c.do(http.MethodPost, "/api/auth/login", body, &out)
	return out, err
}

func (c *apiClient) orders(userID string) ([]entities.Order, error) {
	var out []entities.Order
	err := c.do(http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/orders", nil, &out)
	return out, err
}

func (c *apiClient) thread(orderID string) ([]entities.Message, error) {
	var out []entities.Message
	err := c.do(http.MethodGet, "/api/orders/"+url.PathEscape(orderID)+"/messages", nil, &out)
	return out, err
}

func (c *apiClient) send(orderID, senderID, content string) (entities.Message, error) {
	var out entities.Message
	err := c.do(http.MethodPost, "/api/messages", map[string]string{
		"orderId":  orderID,
		"senderId": senderID,
		"content":  content,
	}, &out)
	return out, err
}

func (c *apiClient) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
