// Package chatbot generates support replies for the client chat
// surface. Replies are keyword driven; the complaint-ticket sub-flow
// derives its position from the conversation history, so the bot
// itself keeps no per-conversation state.
package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

// Prompts that mark a position in the ticket collection sub-flow. The
// next user message after each prompt answers it.
const (
	promptDescription = "I understand you have a concern. Could you please describe the issue in detail? This will help me assist you better or direct you to the right department."
	promptLoanID      = "Thank you. Could you please provide your loan ID so I can link the ticket to your account?"
)

const (
	replyLoan   = "I can help you with loan applications. To proceed, I'll need your customer ID and some basic information. Would you like to start the application process?"
	replyStatus = "I can check the status of your application or complaint. Please provide your reference number."
	replyHelp   = "I can assist you with:\n- Loan applications\n- Checking application status\n- Filing complaints\n- General inquiries\n\nWhat would you like help with?"
	replyThanks = "You're welcome! Is there anything else I can help you with?"
	fallback    = "I understand. Could you please provide more details about your inquiry? This will help me assist you better."
)

// Bot produces replies for a chat conversation
type Bot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Bot with a time-seeded ticket number source
func New() *Bot {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a Bot with a deterministic source for tests
func NewWithSource(src rand.Source) *Bot {
	return &Bot{rng: rand.New(src)}
}

// Reply generates the bot's answer to the latest user message. The
// history is the conversation so far, oldest first, excluding latest.
func (b *Bot) Reply(history []types.ChatMessage, latest string) string {
	switch lastBotMessage(history) {
	case promptDescription:
		return promptLoanID
	case promptLoanID:
		return b.confirmTicket(strings.TrimSpace(latest))
	}

	input := strings.ToLower(latest)
	switch {
	case strings.Contains(input, "complaint"), strings.Contains(input, "issue"),
		strings.Contains(input, "problem"), strings.Contains(input, "ticket"):
		return promptDescription
	case strings.Contains(input, "loan"), strings.Contains(input, "application"):
		return replyLoan
	case strings.Contains(input, "status"):
		return replyStatus
	case strings.Contains(input, "help"):
		return replyHelp
	case strings.Contains(input, "thank"):
		return replyThanks
	}
	return fallback
}

func (b *Bot) confirmTicket(loanID string) string {
	b.mu.Lock()
	ticket := 10000 + b.rng.Intn(90000)
	b.mu.Unlock()

	return fmt.Sprintf("Great! I've created a helpdesk ticket for you. Your ticket number is #%d (loan %s).\n\nOur support team will review your issue and get back to you shortly. You can track your ticket status using your ticket number.", ticket, loanID)
}

// lastBotMessage returns the content of the most recent bot message,
// or "" when the bot has not spoken yet.
func lastBotMessage(history []types.ChatMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == "bot" {
			return history[i].Content
		}
	}
	return ""
}
