package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable means the prediction agent could not be reached or returned
// a non-JSON failure. Handlers map it to 502.
var ErrUnavailable = errors.New("prediction agent unavailable")

// BurnoutPrediction is the agent's /api/burnout/predict response.
type BurnoutPrediction struct {
	Success         bool     `json:"success"`
	Date            string   `json:"date"`
	Score           int      `json:"score"`
	Status          string   `json:"status"`
	Reasoning       string   `json:"reasoning"`
	KeyFactors      []string `json:"key_factors"`
	Recommendations []string `json:"recommendations"`
	Cached          bool     `json:"cached"`
}

// Client talks to the companion prediction agent (a separate service that
// owns the burnout model).
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type predictRequest struct {
	Date      string `json:"date"`
	UserID    string `json:"user_id"`
	SleepTime string `json:"sleep_time,omitempty"`
	WakeTime  string `json:"wake_time,omitempty"`
}

// PredictBurnout asks the agent for a burnout score for one day.
func (c *Client) PredictBurnout(ctx context.Context, userID, date, sleepTime, wakeTime string) (*BurnoutPrediction, error) {
	body, err := json.Marshal(predictRequest{
		Date:      date,
		UserID:    userID,
		SleepTime: sleepTime,
		WakeTime:  wakeTime,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/burnout/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		var agentErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &agentErr) == nil && agentErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, agentErr.Error)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var prediction BurnoutPrediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &prediction, nil
}

// Health pings the agent's /api/health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
