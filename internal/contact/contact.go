// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contact validates contact form submissions and hands them to one
// or more relays (the log, the local store).
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio/internal/storage"
)

// KeyPrefix prefixes stored message keys.
const KeyPrefix = "contact."

// Field limits keep a single message small enough for one store value.
const (
	MaxNameLen    = 200
	MaxSubjectLen = 300
	MaxMessageLen = 10000
)

// Validation errors. Their text is shown to the submitter.
var (
	ErrHoneypot      = errors.New("Invalid submission")
	ErrMissingFields = errors.New("All fields are required")
	ErrInvalidEmail  = errors.New("Invalid email address")
	ErrTooLong       = errors.New("Message is too long")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// =============================================================================
// SUBMISSION
// =============================================================================

// Submission is the raw form payload. Honeypot is a hidden field that only
// bots fill in.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot,omitempty"`
}

// Normalize trims surrounding whitespace from every field.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	s.Honeypot = strings.TrimSpace(s.Honeypot)
}

// Validate checks the submission in order: honeypot, required fields, email
// shape, lengths.
func (s Submission) Validate() error {
	if s.Honeypot != "" {
		return ErrHoneypot
	}
	if s.Name == "" || s.Email == "" || s.Subject == "" || s.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	if len(s.Name) > MaxNameLen || len(s.Subject) > MaxSubjectLen || len(s.Message) > MaxMessageLen {
		return ErrTooLong
	}
	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrHoneypot) || errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrTooLong)
}

// Message is an accepted submission.
type Message struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Submission
}

// =============================================================================
// RELAYS
// =============================================================================

// Relay delivers an accepted message somewhere.
type Relay interface {
	Deliver(ctx context.Context, m Message) error
}

// LogRelay writes messages to the log.
type LogRelay struct {
	Log *zap.SugaredLogger
	// To names the recipient in the log line
	To string
}

// Deliver logs m.
func (r LogRelay) Deliver(ctx context.Context, m Message) error {
	log := r.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log.Infow("contact form submission",
		"id", m.ID,
		"to", r.To,
		"name", m.Name,
		"email", m.Email,
		"subject", m.Subject,
		"message_len", len(m.Message),
	)
	return nil
}

// StoreRelay saves messages as JSON under KeyPrefix+ID.
type StoreRelay struct {
	Store storage.Store
}

// Deliver stores m.
func (r StoreRelay) Deliver(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if err := r.Store.Set(KeyPrefix+m.ID, string(data)); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// ListMessages returns stored messages, oldest first.
func ListMessages(store storage.Store) ([]Message, error) {
	keys, err := store.Keys(KeyPrefix)
	if err != nil {
		return nil, err
	}
	msgs := make([]Message, 0, len(keys))
	for _, k := range keys {
		raw, ok, err := store.Get(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var m Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("message %s: %w", k, err)
		}
		msgs = append(msgs, m)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].ReceivedAt.Before(msgs[j].ReceivedAt)
	})
	return msgs, nil
}

// =============================================================================
// SERVICE
// =============================================================================

// Service validates submissions and fans them out to relays.
type Service struct {
	relays []Relay
	now    func() time.Time
	newID  func() string
}

// NewService creates a service delivering to relays in order.
func NewService(relays ...Relay) *Service {
	return &Service{
		relays: relays,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Submit validates sub and delivers it. Validation failures are returned
// as-is so callers can show them; relay failures are wrapped.
func (s *Service) Submit(ctx context.Context, sub Submission) (Message, error) {
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return Message{}, err
	}

	m := Message{
		ID:         s.newID(),
		ReceivedAt: s.now().UTC(),
		Submission: sub,
	}
	for _, r := range s.relays {
		if err := r.Deliver(ctx, m); err != nil {
			return Message{}, fmt.Errorf("failed to send message: %w", err)
		}
	}
	return m, nil
}
