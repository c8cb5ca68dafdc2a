////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import "sync"

// Unsubscribe stops a live subscription. The owning component must invoke it
// exactly once when the corresponding scope ends; implementations returned by
// this module make repeat invocations a safe no-op (see [Once]).
type Unsubscribe func()

// Once wraps an Unsubscribe so that only the first invocation runs. It is
// used on every disposer handed across a package boundary.
func Once(u Unsubscribe) Unsubscribe {
	var once sync.Once
	return func() {
		once.Do(u)
	}
}

// Auth is the identity provider. Sign-in and sign-up calls block until the
// provider acknowledges or rejects the attempt; failures carry an [*AuthError]
// when the provider reported a recognizable code.
type Auth interface {
	SignInWithEmail(email, password string) error
	SignUpWithEmail(email, password string) error

	// SignInWithPopup starts an interactive federated sign-in. When the
	// browser blocks the popup it fails with [CodePopupBlocked], and the
	// caller falls back to SignInWithRedirect, which navigates the whole
	// page and therefore never reports success in this session.
	SignInWithPopup() error
	SignInWithRedirect() error

	SignOut() error

	// OnSessionChange invokes fn with the signed-in identity, or nil after
	// sign-out, immediately on subscribe and then on every session change.
	OnSessionChange(fn func(user *User)) Unsubscribe
}

// Database is the remote document store. Watch methods deliver the current
// result set immediately and then push a fresh snapshot on every change until
// the returned disposer is invoked. Callbacks for one subscription are
// delivered in backend order; no ordering holds across subscriptions.
type Database interface {
	// WatchRoster watches every identity except the one owning selfEmail.
	// Each delivery replaces the whole roster.
	WatchRoster(selfEmail string, fn func(users []User)) Unsubscribe

	// WatchMembership watches the active/pinned chat fields of one user
	// document.
	WatchMembership(userID string, fn func(m Membership)) Unsubscribe

	// WatchConversation watches the message stream for one conversation id,
	// ordered by send time ascending. Each delivery replaces the whole list.
	WatchConversation(chatID string, fn func(msgs []Message)) Unsubscribe

	// WatchInbox watches all messages addressed to userID, ordered by send
	// time descending, and delivers snapshot diffs.
	WatchInbox(userID string, fn func(ev InboxEvent)) Unsubscribe

	// UpdatePresence writes the presence flag and last-seen timestamp on the
	// user's own document.
	UpdatePresence(userID string, online bool) error

	// SetMembership merge-writes the non-nil fields of the patch onto the
	// user's own document.
	SetMembership(userID string, patch MembershipPatch) error

	// AddMessage appends a new message with a server-assigned timestamp.
	AddMessage(msg Message) error
}

// Notification is a user-visible alert about a newly received message.
type Notification struct {
	SenderID   string
	SenderName string
	Text       string
}

// Notifier surfaces notifications to the user, typically as a toast with an
// action that selects the sender's conversation.
type Notifier interface {
	Notify(n Notification)
}

// MessageCache is an optional local cache of conversation snapshots, used to
// paint a reopened conversation before the first live snapshot lands. Store
// failures are logged by implementations and never surfaced.
type MessageCache interface {
	Store(chatID string, msgs []Message)
	Load(chatID string) ([]Message, error)
}

// Prefs is optional persistent UI preference storage.
type Prefs interface {
	LastSelectedChat() (string, bool)
	SetLastSelectedChat(id string)
}
