////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Params are the tunables of a [Client].
type Params struct {
	// FreshnessWindow is how recent a message's server timestamp must be for
	// the inbox watcher to count it as newly sent rather than part of a late
	// backfill. It is a guard on top of the subscription's backfill flag,
	// not a correctness guarantee.
	FreshnessWindow time.Duration
}

// DefaultParams returns the default client tunables.
func DefaultParams() Params {
	return Params{FreshnessWindow: time.Second}
}

// Config bundles the collaborators of a [Client]. Auth and Database are
// required; the rest may be nil.
type Config struct {
	Auth     Auth
	Database Database

	// Notifier receives new-message notifications from the inbox watcher.
	Notifier Notifier

	// Cache, when set, stores conversation snapshots locally so a reopened
	// conversation paints before the first live snapshot lands.
	Cache MessageCache

	// Prefs, when set, persists the last selected conversation across
	// sessions.
	Prefs Prefs

	// OnState is invoked with a fresh copy of the read model after every
	// state mutation. It may be called from multiple goroutines, but never
	// concurrently with itself.
	OnState func(s State)

	Params Params
}

// Client is the seam between the remote backend and the UI's read model. All
// state flows one way from subscription callbacks into [State]; all user
// commands flow one way into backend writes.
type Client struct {
	auth     Auth
	db       Database
	notifier Notifier
	cache    MessageCache
	prefs    Prefs
	onState  func(s State)
	params   Params

	// now is the observation clock for the inbox freshness check.
	now func() time.Time

	mux     sync.Mutex
	stateMx sync.Mutex // serializes onState deliveries

	user           *User
	users          []User
	loading        bool
	errMsg         string
	selectedChatID string
	selectedConvID string
	messages       []Message
	activeChats    []string
	pinnedChats    []string
	unread         map[string]int

	stopRoster     Unsubscribe
	stopMembership Unsubscribe
	stopInbox      Unsubscribe
	stopMessages   Unsubscribe
}

// NewClient creates a Client around the given collaborators.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Auth == nil {
		return nil, errors.New("chat: Config.Auth is required")
	}
	if cfg.Database == nil {
		return nil, errors.New("chat: Config.Database is required")
	}
	if cfg.Params.FreshnessWindow <= 0 {
		cfg.Params.FreshnessWindow = DefaultParams().FreshnessWindow
	}

	return &Client{
		auth:     cfg.Auth,
		db:       cfg.Database,
		notifier: cfg.Notifier,
		cache:    cfg.Cache,
		prefs:    cfg.Prefs,
		onState:  cfg.OnState,
		params:   cfg.Params,
		now:      time.Now,
		loading:  true,
		unread:   make(map[string]int),
	}, nil
}

// State returns a copy of the current read model.
func (c *Client) State() State {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked copies the mutable state into a State the UI may retain.
// Callers must hold c.mux.
func (c *Client) snapshotLocked() State {
	s := State{
		Loading:        c.loading,
		Error:          c.errMsg,
		SelectedChatID: c.selectedChatID,
		Users:          append([]User(nil), c.users...),
		Messages:       append([]Message(nil), c.messages...),
		ActiveChats:    append([]string(nil), c.activeChats...),
		PinnedChats:    append([]string(nil), c.pinnedChats...),
		UnreadMessages: make(map[string]int, len(c.unread)),
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	for id, n := range c.unread {
		s.UnreadMessages[id] = n
	}
	return s
}

// publish delivers a fresh snapshot to the UI. The snapshot is taken under
// stateMx so concurrent publishers cannot deliver an older snapshot after a
// newer one. Lock order is stateMx before mux; no caller holds mux here.
func (c *Client) publish() {
	if c.onState == nil {
		return
	}
	c.stateMx.Lock()
	defer c.stateMx.Unlock()

	c.mux.Lock()
	s := c.snapshotLocked()
	c.mux.Unlock()

	c.onState(s)
}

// setError replaces the current user-facing error string.
func (c *Client) setError(msg string) {
	c.mux.Lock()
	c.errMsg = msg
	c.mux.Unlock()
	c.publish()
}

// notify emits a notification when a notifier is wired.
func (c *Client) notify(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

// contains reports whether ids holds id.
func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// without returns a copy of ids with id removed.
func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
