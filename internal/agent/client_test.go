package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPredictBurnout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/burnout/predict" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req["user_id"] != "u1" || req["date"] != "2026-01-10" {
			t.Errorf("request body = %v", req)
		}
		json.NewEncoder(w).Encode(BurnoutPrediction{
			Success: true,
			Date:    "2026-01-10",
			Score:   72,
			Status:  "elevated",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	prediction, err := client.PredictBurnout(context.Background(), "u1", "2026-01-10", "", "")
	if err != nil {
		t.Fatalf("PredictBurnout() error = %v", err)
	}
	if prediction.Score != 72 || prediction.Status != "elevated" {
		t.Errorf("prediction = %+v", prediction)
	}
}

func TestPredictBurnoutAgentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "model not ready"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PredictBurnout(context.Background(), "u1", "2026-01-10", "", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestPredictBurnoutAgentDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	_, err := client.PredictBurnout(context.Background(), "u1", "2026-01-10", "", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}

	if err := client.Health(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Health() error = %v, want ErrUnavailable", err)
	}
}
