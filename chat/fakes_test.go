////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// fakeAuth is an in-memory identity provider driven by the test.
type fakeAuth struct {
	mu        sync.Mutex
	sessionFn func(*User)

	signInErr   error
	signUpErr   error
	popupErr    error
	redirectErr error
	signOutErr  error

	popupCalls    int
	redirectCalls int
	signOutCalls  int
}

func (a *fakeAuth) SignInWithEmail(string, string) error { return a.signInErr }
func (a *fakeAuth) SignUpWithEmail(string, string) error { return a.signUpErr }

func (a *fakeAuth) SignInWithPopup() error {
	a.mu.Lock()
	a.popupCalls++
	a.mu.Unlock()
	return a.popupErr
}

func (a *fakeAuth) SignInWithRedirect() error {
	a.mu.Lock()
	a.redirectCalls++
	a.mu.Unlock()
	return a.redirectErr
}

func (a *fakeAuth) SignOut() error {
	a.mu.Lock()
	a.signOutCalls++
	fn := a.sessionFn
	a.mu.Unlock()
	if a.signOutErr != nil {
		return a.signOutErr
	}
	if fn != nil {
		fn(nil)
	}
	return nil
}

func (a *fakeAuth) OnSessionChange(fn func(*User)) Unsubscribe {
	a.mu.Lock()
	a.sessionFn = fn
	a.mu.Unlock()
	return Once(func() {
		a.mu.Lock()
		a.sessionFn = nil
		a.mu.Unlock()
	})
}

// setSession emulates a session change pushed by the provider.
func (a *fakeAuth) setSession(u *User) {
	a.mu.Lock()
	fn := a.sessionFn
	a.mu.Unlock()
	if fn != nil {
		fn(u)
	}
}

// fakeDB is an in-memory document store with synchronous live subscriptions.
// Subscribing delivers the current data immediately (the inbox delivery is
// flagged as backfill), and every write pushes fresh snapshots to matching
// watchers, the way the real backend does.
type fakeDB struct {
	mu sync.Mutex

	roster      []User
	memberships map[string]Membership
	presence    map[string]bool
	msgs        []Message
	nextMsgID   int

	presenceErr      error
	setMembershipErr error
	addMessageErr    error

	// membershipWrites records every SetMembership patch per user id.
	membershipWrites map[string][]MembershipPatch

	rosterFns     []func([]User)
	membershipFns map[string][]func(Membership)
	convFns       map[string][]func([]Message)
	inboxFns      map[string][]func(InboxEvent)

	convWatches int
	convStops   int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		memberships:      make(map[string]Membership),
		presence:         make(map[string]bool),
		membershipWrites: make(map[string][]MembershipPatch),
		membershipFns:    make(map[string][]func(Membership)),
		convFns:          make(map[string][]func([]Message)),
		inboxFns:         make(map[string][]func(InboxEvent)),
	}
}

func (db *fakeDB) WatchRoster(_ string, fn func([]User)) Unsubscribe {
	db.mu.Lock()
	db.rosterFns = append(db.rosterFns, fn)
	users := append([]User(nil), db.roster...)
	db.mu.Unlock()
	fn(users)
	return Once(func() {})
}

func (db *fakeDB) WatchMembership(userID string, fn func(Membership)) Unsubscribe {
	db.mu.Lock()
	db.membershipFns[userID] = append(db.membershipFns[userID], fn)
	m := db.memberships[userID]
	db.mu.Unlock()
	fn(m)
	return Once(func() {})
}

func (db *fakeDB) WatchConversation(chatID string, fn func([]Message)) Unsubscribe {
	db.mu.Lock()
	db.convFns[chatID] = append(db.convFns[chatID], fn)
	db.convWatches++
	msgs := db.conversationLocked(chatID)
	db.mu.Unlock()
	fn(msgs)
	return Once(func() {
		db.mu.Lock()
		db.convStops++
		db.mu.Unlock()
	})
}

func (db *fakeDB) WatchInbox(userID string, fn func(InboxEvent)) Unsubscribe {
	db.mu.Lock()
	db.inboxFns[userID] = append(db.inboxFns[userID], fn)
	var changes []MessageChange
	for _, m := range db.msgs {
		if m.ReceiverID == userID {
			changes = append(changes, MessageChange{ChangeAdded, m})
		}
	}
	db.mu.Unlock()
	fn(InboxEvent{Changes: changes, Backfill: true})
	return Once(func() {})
}

func (db *fakeDB) UpdatePresence(userID string, online bool) error {
	if db.presenceErr != nil {
		return db.presenceErr
	}
	db.mu.Lock()
	db.presence[userID] = online
	db.mu.Unlock()
	return nil
}

func (db *fakeDB) SetMembership(userID string, patch MembershipPatch) error {
	if db.setMembershipErr != nil {
		return db.setMembershipErr
	}
	db.mu.Lock()
	db.membershipWrites[userID] = append(db.membershipWrites[userID], patch)
	m := db.memberships[userID]
	if patch.ActiveChats != nil {
		m.ActiveChats = *patch.ActiveChats
	}
	if patch.PinnedChats != nil {
		m.PinnedChats = *patch.PinnedChats
	}
	db.memberships[userID] = m
	fns := append([]func(Membership){}, db.membershipFns[userID]...)
	db.mu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
	return nil
}

func (db *fakeDB) AddMessage(msg Message) error {
	if db.addMessageErr != nil {
		return db.addMessageErr
	}
	db.mu.Lock()
	db.nextMsgID++
	msg.ID = fmt.Sprintf("msg-%d", db.nextMsgID)
	msg.Timestamp = time.Now()
	db.msgs = append(db.msgs, msg)
	convFns := append([]func([]Message){}, db.convFns[msg.ChatID]...)
	conv := db.conversationLocked(msg.ChatID)
	inboxFns := append([]func(InboxEvent){}, db.inboxFns[msg.ReceiverID]...)
	db.mu.Unlock()

	for _, fn := range convFns {
		fn(conv)
	}
	ev := InboxEvent{Changes: []MessageChange{{ChangeAdded, msg}}}
	for _, fn := range inboxFns {
		fn(ev)
	}
	return nil
}

// conversationLocked returns the chat's messages ordered by send time
// ascending. Callers must hold db.mu.
func (db *fakeDB) conversationLocked(chatID string) []Message {
	var out []Message
	for _, m := range db.msgs {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// pushInbox emulates a live inbox delivery without going through AddMessage.
func (db *fakeDB) pushInbox(userID string, ev InboxEvent) {
	db.mu.Lock()
	fns := append([]func(InboxEvent){}, db.inboxFns[userID]...)
	db.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// pushRoster emulates a roster snapshot.
func (db *fakeDB) pushRoster(users []User) {
	db.mu.Lock()
	db.roster = users
	fns := append([]func([]User){}, db.rosterFns...)
	db.mu.Unlock()
	for _, fn := range fns {
		fn(users)
	}
}

// fakeNotifier records every emitted notification.
type fakeNotifier struct {
	mu    sync.Mutex
	notes []Notification
}

func (n *fakeNotifier) Notify(note Notification) {
	n.mu.Lock()
	n.notes = append(n.notes, note)
	n.mu.Unlock()
}

func (n *fakeNotifier) all() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.notes...)
}

// fakeCache is an in-memory MessageCache.
type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]Message
	stores int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]Message)}
}

func (c *fakeCache) Store(chatID string, msgs []Message) {
	c.mu.Lock()
	c.data[chatID] = append([]Message(nil), msgs...)
	c.stores++
	c.mu.Unlock()
}

func (c *fakeCache) Load(chatID string) ([]Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.data[chatID]...), nil
}

// newTestClient builds a signed-in client over fresh fakes.
func newTestClient(t interface{ Fatalf(string, ...interface{}) }) (
	*Client, *fakeAuth, *fakeDB, *fakeNotifier) {
	auth := &fakeAuth{}
	db := newFakeDB()
	notifier := &fakeNotifier{}
	c, err := NewClient(Config{
		Auth:     auth,
		Database: db,
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %+v", err)
	}
	return c, auth, db, notifier
}

// signIn drives the fake session feed with the given identity.
func signIn(c *Client, auth *fakeAuth, u User) {
	c.Initialize()
	auth.setSession(&u)
}
