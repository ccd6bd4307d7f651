package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/engine"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

// Client talks to the bot's ops API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type statusPayload struct {
	Ticks []engine.TickStat `json:"ticks"`
}

type stocksPayload struct {
	Prices map[string]int64 `json:"prices"`
}

type leaderboardPayload struct {
	Leaderboard []game.LeaderboardRow `json:"leaderboard"`
}

func (c *Client) Status(ctx context.Context) ([]engine.TickStat, error) {
	var out statusPayload
	if err := c.do(ctx, http.MethodGet, "/v1/status", &out); err != nil {
		return nil, err
	}
	return out.Ticks, nil
}

func (c *Client) Stocks(ctx context.Context) (map[string]int64, error) {
	var out stocksPayload
	if err := c.do(ctx, http.MethodGet, "/v1/stocks", &out); err != nil {
		return nil, err
	}
	return out.Prices, nil
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardRow, error) {
	var out leaderboardPayload
	path := fmt.Sprintf("/v1/leaderboard?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}

func (c *Client) RunTick(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/v1/ticks/"+name+"/run", nil)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, payload.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
