package support

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emersion/go-message/mail"

	"github.com/nhle/admin-panel/internal/model"
)

// ExportMessage renders t as an RFC 5322 plain-text message from one
// address to another. Ticket fields are also carried in X-Ticket-* headers.
func ExportMessage(t model.Ticket, from, to string) ([]byte, error) {
	var h mail.Header
	h.SetDate(t.CreatedAt)
	h.SetAddressList("From", []*mail.Address{{Name: "Admin Panel", Address: from}})
	h.SetAddressList("To", []*mail.Address{{Name: "Support", Address: to}})
	h.SetSubject(fmt.Sprintf("[%s] %s", t.Priority, t.Subject))
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("X-Ticket-Id", t.ID)
	h.Set("X-Ticket-Category", t.Category)
	h.Set("X-Ticket-Priority", t.Priority)
	h.Set("X-Ticket-Status", t.Status)
	if t.Attachment != "" {
		h.Set("X-Ticket-Attachment", t.Attachment)
	}
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generating message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("creating message writer: %w", err)
	}
	if _, err := io.WriteString(w, t.Description+"\r\n"); err != nil {
		return nil, fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing message writer: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteOutbox writes t as dir/<id>.eml and returns the file path.
func WriteOutbox(dir string, t model.Ticket, from, to string) (string, error) {
	data, err := ExportMessage(t, from, to)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating outbox %s: %w", dir, err)
	}
	path := filepath.Join(dir, t.ID+".eml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
