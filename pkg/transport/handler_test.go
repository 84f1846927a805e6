package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devtayyabsajjad/groqchat/pkg/api"
	"github.com/devtayyabsajjad/groqchat/pkg/config"
	"github.com/devtayyabsajjad/groqchat/pkg/models"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
)

// stubClient is a scripted CompletionClient. It records calls so tests
// can assert the no-retry property.
type stubClient struct {
	resp  *api.ChatResponse
	err   error
	calls int
	last  *api.ChatRequest
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Complete(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &api.ChatResponse{
		Reply:      "Sure! Why did the gopher cross the road?",
		ModelUsed:  req.Model,
		TokensUsed: 42,
	}, nil
}

func (s *stubClient) Close() error { return nil }

func newTestHandler(client provider.CompletionClient) http.Handler {
	settings := config.Defaults()
	settings.APIKey = "gsk_test"
	return NewHandler(&settings, models.Builtin(), client, nil).Routes()
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body api.DetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v (%s)", err, rec.Body.String())
	}
	return body.Detail
}

func TestChatSuccess(t *testing.T) {
	stub := &stubClient{}
	rec := postChat(t, newTestHandler(stub), `{"message":"Hello! Can you tell me a short joke?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var resp api.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Reply == "" {
		t.Error("reply is empty")
	}
	if resp.ModelUsed != "llama-3.1-8b-instant" {
		t.Errorf("model_used = %q, want the configured default", resp.ModelUsed)
	}
	if resp.TokensUsed < 0 {
		t.Errorf("tokens_used = %d, want >= 0", resp.TokensUsed)
	}

	// The client received the normalized request.
	if stub.last == nil || stub.last.MaxTokens == nil || *stub.last.MaxTokens != 1024 {
		t.Error("client did not receive normalized max_tokens default")
	}
	if stub.last.Temperature == nil || *stub.last.Temperature != 0.7 {
		t.Error("client did not receive normalized temperature default")
	}
}

func TestChatExplicitModelEchoed(t *testing.T) {
	stub := &stubClient{}
	rec := postChat(t, newTestHandler(stub), `{"message":"Hello","model":"mixtral-8x7b-32768"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp api.ChatResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ModelUsed != "mixtral-8x7b-32768" {
		t.Errorf("model_used = %q, want the requested model", resp.ModelUsed)
	}
}

func TestChatValidationFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{
			name:       "empty message",
			body:       `{"message":""}`,
			wantDetail: "empty",
		},
		{
			name:       "unknown model",
			body:       `{"message":"Hello","model":"invalid-model"}`,
			wantDetail: "invalid-model",
		},
		{
			name:       "temperature out of range",
			body:       `{"message":"Hello","temperature":3.0}`,
			wantDetail: "temperature",
		},
		{
			name:       "max_tokens out of range",
			body:       `{"message":"Hello","max_tokens":5000}`,
			wantDetail: "max_tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{}
			rec := postChat(t, newTestHandler(stub), tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if detail := decodeDetail(t, rec); !strings.Contains(detail, tt.wantDetail) {
				t.Errorf("detail = %q, want it to mention %q", detail, tt.wantDetail)
			}
			if stub.calls != 0 {
				t.Errorf("provider called %d times for invalid request, want 0", stub.calls)
			}
		})
	}
}

func TestChatProviderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "auth failure maps to 401",
			err:        &provider.AuthError{Message: "invalid_api_key"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "request rejection maps to 502",
			err:        &provider.RequestError{Message: "bad shape"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unavailable maps to 503",
			err:        &provider.UnavailableError{Message: "timeout"},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{err: tt.err}
			rec := postChat(t, newTestHandler(stub), `{"message":"Hello"}`)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if detail := decodeDetail(t, rec); detail == "" {
				t.Error("detail is empty")
			}
			if stub.calls != 1 {
				t.Errorf("provider called %d times, want exactly 1 (no retry)", stub.calls)
			}
		})
	}
}

func TestChatInvalidJSON(t *testing.T) {
	rec := postChat(t, newTestHandler(&stubClient{}), `{"message": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "invalid JSON") {
		t.Errorf("detail = %q", detail)
	}
}

func TestChatUnsupportedContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("message=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newTestHandler(&stubClient{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rec.Code)
	}
}

// TestChatContentTypeWithCharset verifies parameters on the media type
// are accepted; fetch and most HTTP clients send a charset.
func TestChatContentTypeWithCharset(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	newTestHandler(&stubClient{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
}

func TestChatWithoutClient(t *testing.T) {
	t.Run("valid request gets 503", func(t *testing.T) {
		rec := postChat(t, newTestHandler(nil), `{"message":"Hello"}`)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("invalid request still gets 400", func(t *testing.T) {
		rec := postChat(t, newTestHandler(nil), `{"message":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if detail := decodeDetail(t, rec); !strings.Contains(detail, "empty") {
			t.Errorf("detail = %q", detail)
		}
	})
}

func TestRoot(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newTestHandler(&stubClient{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
	if body["version"] != Version {
		t.Errorf("version = %q, want %q", body["version"], Version)
	}
}

func TestHealth(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		newTestHandler(&stubClient{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["provider_connectivity"] != "connected" {
			t.Errorf("provider_connectivity = %q", body["provider_connectivity"])
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		newTestHandler(nil).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["status"] != "unhealthy" || body["provider_connectivity"] != "disconnected" {
			t.Errorf("body = %v", body)
		}
	})
}

func TestModelsListStatic(t *testing.T) {
	h := newTestHandler(&stubClient{})

	var first string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/models", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if i == 0 {
			first = rec.Body.String()

			var body map[string][]models.Descriptor
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding models: %v", err)
			}
			list := body["models"]
			if len(list) != 4 {
				t.Fatalf("got %d models, want 4", len(list))
			}
			if list[0].ID != "llama-3.1-8b-instant" {
				t.Errorf("first model = %q", list[0].ID)
			}
			if list[0].MaxTokens == 0 {
				t.Error("max_tokens not surfaced in models list")
			}
			continue
		}
		if rec.Body.String() != first {
			t.Error("models list differs between calls")
		}
	}
}
