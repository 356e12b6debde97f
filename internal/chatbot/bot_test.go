package chatbot

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

func botMsg(content string) types.ChatMessage {
	return types.ChatMessage{Sender: "bot", Content: content, Timestamp: time.Now()}
}

func userMsg(content string) types.ChatMessage {
	return types.ChatMessage{Sender: "user", Content: content, Timestamp: time.Now()}
}

func TestKeywordReplies(t *testing.T) {
	bot := NewWithSource(rand.NewSource(1))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"loan", "Tell me about my loan application", replyLoan},
		{"status", "What is the status of my request?", replyStatus},
		{"help", "help", replyHelp},
		{"thanks", "Thank you so much", replyThanks},
		{"fallback", "The weather is nice today", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bot.Reply(nil, tt.input)
			if got != tt.want {
				t.Errorf("Reply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestComplaintStartsTicketFlow(t *testing.T) {
	bot := NewWithSource(rand.NewSource(1))

	got := bot.Reply(nil, "I have an issue with my account statement")
	if got != promptDescription {
		t.Errorf("expected description prompt, got %q", got)
	}
}

func TestTicketFlowEndToEnd(t *testing.T) {
	bot := NewWithSource(rand.NewSource(42))

	history := []types.ChatMessage{
		userMsg("I want to file a complaint"),
	}
	first := bot.Reply(history[:0], history[0].Content)
	if first != promptDescription {
		t.Fatalf("expected description prompt, got %q", first)
	}
	history = append(history, botMsg(first))

	history = append(history, userMsg("Interest was charged twice on my statement"))
	second := bot.Reply(history[:len(history)-1], history[len(history)-1].Content)
	if second != promptLoanID {
		t.Fatalf("expected loan id prompt, got %q", second)
	}
	history = append(history, botMsg(second))

	history = append(history, userMsg("LOAN003"))
	final := bot.Reply(history[:len(history)-1], history[len(history)-1].Content)
	if !strings.Contains(final, "ticket number is #") {
		t.Errorf("expected ticket confirmation, got %q", final)
	}
	if !strings.Contains(final, "LOAN003") {
		t.Errorf("expected loan id echoed in confirmation, got %q", final)
	}
}

func TestTicketFlowResetsAfterConfirmation(t *testing.T) {
	bot := NewWithSource(rand.NewSource(7))

	confirmation := bot.confirmTicket("LOAN001")
	history := []types.ChatMessage{
		botMsg(promptDescription),
		userMsg("Payment failed"),
		botMsg(promptLoanID),
		userMsg("LOAN001"),
		botMsg(confirmation),
	}

	// Back to keyword rules once the ticket is confirmed
	got := bot.Reply(history, "thank you")
	if got != replyThanks {
		t.Errorf("expected thanks reply after confirmation, got %q", got)
	}
}

func TestHandleChat(t *testing.T) {
	handler := NewHandler(NewWithSource(rand.NewSource(1)), zerolog.Nop())

	body := `{"history":[],"message":"help"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var reply types.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	if reply.Sender != "bot" {
		t.Errorf("expected bot sender, got %s", reply.Sender)
	}
	if reply.Content != replyHelp {
		t.Errorf("unexpected reply content: %q", reply.Content)
	}
	if reply.ID == "" || reply.Timestamp.IsZero() {
		t.Error("expected id and timestamp to be set")
	}
}

func TestHandleChatValidation(t *testing.T) {
	handler := NewHandler(NewWithSource(rand.NewSource(1)), zerolog.Nop())

	for _, body := range []string{`{"message":""}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.HandleChat(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected status 400, got %d", body, w.Code)
		}
	}
}
