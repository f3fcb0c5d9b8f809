// Package notes reads study material from disk: plain text, markdown and PDF
// notes as flashcard source text, and images as chat attachments.
// File types are sniffed from content, not trusted from the extension.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/phrazzld/examaid/internal/domain"
)

// Size limits for files read from disk.
const (
	MaxNotesBytes = 5 << 20
	// inline image parts are limited to 20MB by the Gemini API
	MaxImageBytes = 20 << 20
	// MaxNotesChars caps the text sent to the model.
	MaxNotesChars = 30000
)

var (
	// ErrUnsupportedType is returned for files that are neither text, PDF nor image
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTooLarge is returned for files over the size limit
	ErrTooLarge = errors.New("file is too large")

	// ErrNoText is returned when a file holds no readable text
	ErrNoText = errors.New("file contains no readable text")
)

// LoadText reads notes from path and returns their text.
func LoadText(path string) (string, error) {
	data, err := readLimited(path, MaxNotesBytes)
	if err != nil {
		return "", err
	}
	return ExtractText(data)
}

// ExtractText returns the readable text of a text or PDF document, trimmed
// to MaxNotesChars.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoText
	}

	mt := mimetype.Detect(data)

	var text string
	switch {
	case mt.Is("application/pdf"):
		extracted, err := extractPDF(data)
		if err != nil {
			return "", err
		}
		text = extracted
	case isText(mt) && utf8.Valid(data):
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return truncateRunes(text, MaxNotesChars), nil
}

// LoadImage reads an image file into a chat attachment.
func LoadImage(path string) (*domain.Attachment, error) {
	data, err := readLimited(path, MaxImageBytes)
	if err != nil {
		return nil, err
	}
	return ImageAttachment(data)
}

// ImageAttachment sniffs data and wraps it as an attachment.
func ImageAttachment(data []byte) (*domain.Attachment, error) {
	mt := mimetype.Detect(data)
	mimeType, _, _ := strings.Cut(mt.String(), ";")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s is not an image", ErrUnsupportedType, mimeType)
	}
	return domain.NewAttachment(mimeType, data)
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return strings.Join(strings.Fields(string(b)), " "), nil
}

func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, limit)
	}
	return data, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
