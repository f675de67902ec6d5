package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(baseURL string) *GroqClient {
	return NewGroqClient(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "llama3-8b-8192",
	})
}

func completionBody(content string) string {
	payload := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("The answer")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	answer := client.Generate(context.Background(), "question", 1500)

	if answer != "The answer" {
		t.Errorf("Generate() = %q, want 'The answer'", answer)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("request path = %q, want /chat/completions", gotPath)
	}
	if gotBody["max_tokens"].(float64) != 1500 {
		t.Errorf("max_tokens = %v, want 1500", gotBody["max_tokens"])
	}
	messages := gotBody["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(messages))
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := NewGroqClient(Config{BaseURL: "http://unused", Model: "llama3-8b-8192"})

	answer := client.Generate(context.Background(), "question", 100)
	if answer != msgNoAPIKey {
		t.Errorf("Generate() = %q, want %q", answer, msgNoAPIKey)
	}
}

func TestGenerateStatusTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, msgUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{}`, msgRateLimited},
		{"server error", http.StatusBadGateway, `{}`, "Error: GROQ API returned status 502"},
		{"empty choices", http.StatusOK, `{"choices":[]}`, msgBadFormat},
		{"invalid json", http.StatusOK, `not json`, msgBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			answer := newTestClient(server.URL).Generate(context.Background(), "question", 100)
			if answer != tt.want {
				t.Errorf("Generate() = %q, want %q", answer, tt.want)
			}
		})
	}
}

func TestGenerateConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	answer := newTestClient(server.URL).Generate(context.Background(), "question", 100)
	if answer != msgConnectFailed {
		t.Errorf("Generate() = %q, want %q", answer, msgConnectFailed)
	}
}

func TestHealthcheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["max_tokens"].(float64) != 5 {
			t.Errorf("healthcheck max_tokens = %v, want 5", body["max_tokens"])
		}
		_, _ = w.Write([]byte(completionBody("hi")))
	}))
	defer server.Close()

	if err := newTestClient(server.URL).Healthcheck(context.Background()); err != nil {
		t.Errorf("Healthcheck() unexpected error: %v", err)
	}
}

func TestHealthcheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Healthcheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("Healthcheck() error = %v, want status 503 error", err)
	}
}
