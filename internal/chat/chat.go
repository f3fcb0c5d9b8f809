// Package chat holds a tutoring conversation: the message list, the pending
// attachment and the round trip to the model.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/examaid/internal/domain"
	"github.com/phrazzld/examaid/internal/generation"
	"github.com/phrazzld/examaid/internal/session"
)

// Fixed model messages.
const (
	Greeting        = "Hello! I'm your Examaid AI Tutor. What subject or topic are you studying today? I can help you understand concepts, solve problems, or just chat about your studies."
	ClearedGreeting = "Chat cleared. What shall we study next?"
	EmptyReplyText  = "I'm sorry, I couldn't generate a response. Please try again."
	ErrorReplyText  = "Sorry, I encountered an error connecting to the AI. Please check your connection or API key."
)

// Generator is the part of generation.Generator a chat session needs.
type Generator interface {
	Chat(ctx context.Context, req generation.ChatRequest) (*generation.ChatReply, error)
}

// Session is one conversation. It is not safe for concurrent use.
type Session struct {
	gen    Generator
	logger *slog.Logger
	guard  session.Guard
	now    func() time.Time

	messages   []domain.ChatMessage
	attachment *domain.Attachment
}

// NewSession starts a conversation with the greeting.
func NewSession(gen Generator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{gen: gen, logger: logger, now: time.Now}
	s.messages = []domain.ChatMessage{s.modelMessage(Greeting, nil, false)}
	return s
}

// Attach sets the image sent with the next message.
func (s *Session) Attach(att *domain.Attachment) error {
	if att == nil {
		return fmt.Errorf("%w: attachment is nil", domain.ErrInvalidAttachment)
	}
	if err := att.Validate(); err != nil {
		return err
	}
	s.attachment = att
	return nil
}

// ClearAttachment drops the pending image.
func (s *Session) ClearAttachment() {
	s.attachment = nil
}

// PendingAttachment returns the image that will go with the next message.
func (s *Session) PendingAttachment() *domain.Attachment {
	return s.attachment
}

// Pending is a user turn that has been appended and awaits the model.
type Pending struct {
	ticket  session.Ticket
	Request generation.ChatRequest
}

// BeginSend appends the user message and returns the request for the model.
// The request history holds the turns before the new message.
func (s *Session) BeginSend(text string) (*Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" && s.attachment == nil {
		return nil, fmt.Errorf("%w: message text or an attachment is required", domain.ErrValidation)
	}

	ticket, err := s.guard.Begin()
	if err != nil {
		return nil, err
	}

	msg, err := domain.NewChatMessage(domain.RoleUser, text, s.attachment, s.now())
	if err != nil {
		s.guard.Finish(ticket)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	history := make([]domain.ChatMessage, len(s.messages))
	copy(history, s.messages)

	s.messages = append(s.messages, *msg)
	s.attachment = nil

	return &Pending{
		ticket:  ticket,
		Request: generation.ChatRequest{History: history, Text: text, Attachment: msg.Attachment},
	}, nil
}

// CompleteSend appends the model's answer, or a fallback notice on failure.
// It reports false when Clear superseded the turn.
func (s *Session) CompleteSend(ctx context.Context, p *Pending, reply *generation.ChatReply, err error) bool {
	if p == nil || !s.guard.Finish(p.ticket) {
		s.logger.DebugContext(ctx, "Dropping stale chat reply")
		return false
	}

	switch {
	case errors.Is(err, generation.ErrEmptyResponse):
		s.logger.WarnContext(ctx, "Chat reply was empty", "error", err)
		s.messages = append(s.messages, s.modelMessage(EmptyReplyText, nil, true))
	case err != nil:
		s.logger.WarnContext(ctx, "Chat turn failed", "error", err)
		s.messages = append(s.messages, s.modelMessage(ErrorReplyText, nil, true))
	case reply == nil || strings.TrimSpace(reply.Text) == "":
		s.messages = append(s.messages, s.modelMessage(EmptyReplyText, nil, true))
	default:
		s.messages = append(s.messages, s.modelMessage(reply.Text, reply.Sources, false))
	}
	return true
}

// Send runs a full turn. The returned error is the generator's, if any;
// the conversation already carries a fallback message for it.
func (s *Session) Send(ctx context.Context, text string) error {
	p, err := s.BeginSend(text)
	if err != nil {
		return err
	}
	reply, genErr := s.gen.Chat(ctx, p.Request)
	s.CompleteSend(ctx, p, reply, genErr)
	return genErr
}

// Clear resets the conversation and drops any in-flight turn.
func (s *Session) Clear() {
	s.guard.Invalidate()
	s.attachment = nil
	s.messages = []domain.ChatMessage{s.modelMessage(ClearedGreeting, nil, false)}
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a turn is awaiting the model.
func (s *Session) Busy() bool {
	return s.guard.Busy()
}

func (s *Session) modelMessage(text string, sources []domain.Source, fallback bool) domain.ChatMessage {
	msg, err := domain.NewChatMessage(domain.RoleModel, text, nil, s.now())
	if err != nil {
		// text is never blank here
		panic(fmt.Sprintf("building model message: %v", err))
	}
	if len(sources) > 0 {
		msg.GroundingMetadata = &domain.GroundingMetadata{Sources: sources}
	}
	msg.Fallback = fallback
	return *msg
}
