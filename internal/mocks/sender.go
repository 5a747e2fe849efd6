package mocks

import (
	"context"
	"sync"
)

// SentMail records one Send call.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockSender implements mail.Sender for testing
type MockSender struct {
	// Custom behavior function
	SendFn func(ctx context.Context, to, subject, body string) error

	// Default error returned when no function is set
	Err error

	mu   sync.Mutex
	sent []SentMail
}

// Send implements the mail.Sender interface
func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}
	return m.Err
}

// Sent returns a copy of everything sent so far.
func (m *MockSender) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
