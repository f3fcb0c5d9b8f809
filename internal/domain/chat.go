package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

// Possible chat roles. The values match the role names used by the model API.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Attachment is an inline binary payload (an image) sent with a chat turn.
// Data holds the standard base64 encoding of the bytes.
type Attachment struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// NewAttachment encodes raw bytes into an Attachment.
func NewAttachment(mimeType string, raw []byte) (*Attachment, error) {
	a := &Attachment{
		MIMEType: strings.TrimSpace(mimeType),
		Data:     base64.StdEncoding.EncodeToString(raw),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that the attachment has a MIME type and a decodable payload.
func (a *Attachment) Validate() error {
	if a.MIMEType == "" {
		return fmt.Errorf("%w: mime type cannot be empty", ErrInvalidAttachment)
	}
	if a.Data == "" {
		return fmt.Errorf("%w: data cannot be empty", ErrInvalidAttachment)
	}
	if _, err := base64.StdEncoding.DecodeString(a.Data); err != nil {
		return fmt.Errorf("%w: data is not valid base64", ErrInvalidAttachment)
	}
	return nil
}

// Bytes returns the decoded attachment payload.
func (a *Attachment) Bytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: data is not valid base64", ErrInvalidAttachment)
	}
	return raw, nil
}

// Source is a web page the model cited while answering.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingMetadata lists the sources a grounded reply was based on.
type GroundingMetadata struct {
	Sources []Source `json:"sources"`
}

// ChatMessage is one turn of a tutoring conversation. Messages are immutable
// once created and live only as long as the chat session that holds them.
type ChatMessage struct {
	ID                string             `json:"id"`
	Role              Role               `json:"role"`
	Text              string             `json:"text"`
	Timestamp         int64              `json:"timestamp"`
	Attachment        *Attachment        `json:"attachment,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`

	// Fallback marks a locally produced notice (greeting or error text) that
	// is shown to the user but is not part of the model conversation.
	Fallback bool `json:"-"`
}

// NewChatMessage creates a message with a fresh ID and the given timestamp.
// A message needs text, an attachment, or both.
func NewChatMessage(role Role, text string, attachment *Attachment, at time.Time) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:         uuid.NewString(),
		Role:       role,
		Text:       text,
		Timestamp:  at.UnixMilli(),
		Attachment: attachment,
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: message id cannot be empty", ErrValidation)
	}
	if m.Role != RoleUser && m.Role != RoleModel {
		return fmt.Errorf("%w: %q", ErrInvalidRole, m.Role)
	}
	if strings.TrimSpace(m.Text) == "" && m.Attachment == nil {
		return fmt.Errorf("%w: message needs text or an attachment", ErrEmptyContent)
	}
	if m.Attachment != nil {
		if err := m.Attachment.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sources returns the cited sources of the message, if any.
func (m *ChatMessage) Sources() []Source {
	if m.GroundingMetadata == nil {
		return nil
	}
	return m.GroundingMetadata.Sources
}
