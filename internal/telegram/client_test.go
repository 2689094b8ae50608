package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient("123456:abcdef", 1000, WithBaseURL(srv.URL))
}

func TestValidateToken(t *testing.T) {
	if err := ValidateToken("123456:abcdef"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	for _, bad := range []string{"", "nodelimiter", ":abc", "123:"} {
		if err := ValidateToken(bad); err == nil {
			t.Errorf("ValidateToken(%q) should fail", bad)
		}
	}
}

func TestSendMessageOK(t *testing.T) {
	var gotPath string
	var gotReq SendMessageRequest

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 42, "chat": map[string]any{"id": 7}},
		})
	})

	msg, err := c.SendMessage(context.Background(), SendMessageRequest{
		ChatID:    7,
		Text:      "hi",
		ParseMode: "HTML",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if gotPath != "/bot123456:abcdef/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.Text != "hi" || gotReq.ChatID != 7 {
		t.Errorf("request = %+v", gotReq)
	}
	if msg.MessageID != 42 {
		t.Errorf("MessageID = %d, want 42", msg.MessageID)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  429,
			"description": "Too Many Requests: retry after 3",
			"parameters":  map[string]any{"retry_after": 3},
		})
	})

	_, err := c.SendMessage(context.Background(), SendMessageRequest{ChatID: 1, Text: "x"})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Code != 429 {
		t.Errorf("Code = %d, want 429", apiErr.Code)
	}
	if apiErr.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %v, want 3s", apiErr.RetryAfter)
	}
}

func TestGetUpdates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req getUpdatesRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Offset != 10 {
			t.Errorf("offset = %d, want 10", req.Offset)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": []map[string]any{
				{
					"update_id": 11,
					"message": map[string]any{
						"message_id": 1,
						"chat":       map[string]any{"id": 5},
						"text":       "python",
					},
				},
				{
					"update_id": 12,
					"callback_query": map[string]any{
						"id":   "cb1",
						"data": "level_Beginner",
					},
				},
			},
		})
	})

	updates, err := c.GetUpdates(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("GetUpdates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Text != "python" {
		t.Errorf("first update = %+v", updates[0])
	}
	if updates[1].CallbackQuery == nil || updates[1].CallbackQuery.Data != "level_Beginner" {
		t.Errorf("second update = %+v", updates[1])
	}
}

func TestPollTimeoutExceedsWindow(t *testing.T) {
	for _, sec := range []int{0, 30, 90} {
		window := time.Duration(sec) * time.Second
		if got := pollTimeout(sec); got <= window {
			t.Errorf("pollTimeout(%d) = %s, want longer than the %s poll window", sec, got, window)
		}
	}
}
