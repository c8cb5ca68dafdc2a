////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package chat contains the client-side synchronization core of the chat
// application. It maintains a single read model for the UI (session, roster,
// active and pinned conversations, the open message stream, and unread
// counters) and keeps it converged with a remote document store through live
// subscriptions. All persistence, credential validation, and message delivery
// are delegated to the backend reached through the [Auth] and [Database]
// interfaces; this package only wires snapshots into state and user commands
// into writes.
package chat

import "time"

// User is the cached copy of an identity from the users collection. All
// fields are read-only on the client except the current identity's own
// presence, which is written on session start and end.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	PhotoURL string    `json:"photoURL,omitempty"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// Message is a single chat message. Messages are immutable once created; the
// timestamp is assigned by the backend on the append write, so it is zero on
// a message that has not been acknowledged yet.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	ChatID     string    `json:"chatId"`
	Timestamp  time.Time `json:"timestamp"`
}

// Membership is the chat membership state stored on the current identity's
// own user document. Only that identity's client ever writes it.
type Membership struct {
	ActiveChats []string `json:"activeChats"`
	PinnedChats []string `json:"pinnedChats"`
}

// MembershipPatch is a partial merge write against the membership fields of a
// user document. A nil field is left untouched by the write.
type MembershipPatch struct {
	ActiveChats *[]string `json:"activeChats,omitempty"`
	PinnedChats *[]string `json:"pinnedChats,omitempty"`
}

// ChangeType describes how a document moved in a snapshot diff.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeModified
	ChangeRemoved
)

// String returns a human-readable name for the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MessageChange is a single entry in an inbox snapshot diff.
type MessageChange struct {
	Type    ChangeType
	Message Message
}

// InboxEvent is one delivery on the global inbox subscription. Backfill is
// set when the delivery is the initial load of the subscription rather than
// a live change; backfilled messages must never produce notifications.
type InboxEvent struct {
	Changes  []MessageChange
	Backfill bool
}

// State is the read model published to the UI after every mutation. Slices
// and the unread map are copies; the receiver may retain them.
type State struct {
	User           *User          `json:"user"`
	Users          []User         `json:"users"`
	Loading        bool           `json:"loading"`
	Error          string         `json:"error,omitempty"`
	SelectedChatID string         `json:"selectedChatId,omitempty"`
	Messages       []Message      `json:"messages"`
	ActiveChats    []string       `json:"activeChats"`
	PinnedChats    []string       `json:"pinnedChats"`
	UnreadMessages map[string]int `json:"unreadMessages"`
}
