// Package store persists submitted snow globes.
//
// A Submission holds the compact tree JSON as an opaque blob together with
// the engraving text and the recipient email. Submissions are addressed by a
// short id that is unique within a store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"snowglobe/internal/state"
	"snowglobe/internal/treecodec"
)

var (
	// ErrNotFound is returned when no submission has the requested short id.
	ErrNotFound = errors.New("store: submission not found")

	// ErrDuplicate is returned when a caller-chosen short id is taken.
	ErrDuplicate = errors.New("store: short id already exists")
)

// maxShortIDAttempts bounds regeneration of colliding random short ids.
const maxShortIDAttempts = 16

// Submission is one stored snow globe.
type Submission struct {
	ID            string          `json:"id"`
	ShortID       string          `json:"shortid"`
	Tree          json.RawMessage `json:"tree"`
	CarvedText    string          `json:"carvedText"`
	SenderName    string          `json:"senderName"`
	RecipientName string          `json:"recipientName"`
	MessageText   string          `json:"messageText"`
	Email         string          `json:"email,omitempty"`
	Created       time.Time       `json:"created"`
	Updated       time.Time       `json:"updated"`
}

// Engraving returns the text fields of s.
func (s *Submission) Engraving() state.Engraving {
	return state.Engraving{
		CarvedText:    s.CarvedText,
		SenderName:    s.SenderName,
		RecipientName: s.RecipientName,
		MessageText:   s.MessageText,
	}
}

// SetEngraving copies e into the text fields of s.
func (s *Submission) SetEngraving(e state.Engraving) {
	s.CarvedText = e.CarvedText
	s.SenderName = e.SenderName
	s.RecipientName = e.RecipientName
	s.MessageText = e.MessageText
}

// Clone returns a deep copy of s.
func (s *Submission) Clone() *Submission {
	c := *s
	c.Tree = append(json.RawMessage(nil), s.Tree...)
	return &c
}

// Store is the persistence contract used by the HTTP server.
type Store interface {
	// Create assigns ID, ShortID (when empty) and timestamps, then stores sub.
	Create(ctx context.Context, sub *Submission) error
	GetByShortID(ctx context.Context, shortID string) (*Submission, error)
	SetEmail(ctx context.Context, shortID, email string) (*Submission, error)
	// List returns every submission, oldest first.
	List(ctx context.Context) ([]*Submission, error)
}

// Option configures a store.
type Option func(*options)

type options struct {
	newShortID func() string
	now        func() time.Time
}

// WithShortIDs replaces the random short id generator.
func WithShortIDs(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newShortID = fn
		}
	}
}

// WithClock replaces time.Now for Created and Updated.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.now = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		newShortID: treecodec.ShortID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// prepare fills in the generated fields of sub. taken reports whether a
// short id is already in use.
func (o options) prepare(sub *Submission, taken func(string) bool) error {
	if sub.ShortID != "" {
		if taken(sub.ShortID) {
			return fmt.Errorf("%w: %q", ErrDuplicate, sub.ShortID)
		}
	} else {
		for attempt := 0; ; attempt++ {
			if attempt == maxShortIDAttempts {
				return fmt.Errorf("%w: gave up after %d attempts", ErrDuplicate, attempt)
			}
			id := o.newShortID()
			if !taken(id) {
				sub.ShortID = id
				break
			}
		}
	}
	sub.ID = uuid.NewString()
	now := o.now().UTC()
	sub.Created = now
	sub.Updated = now
	return nil
}
