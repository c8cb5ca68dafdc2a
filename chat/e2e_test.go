////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"testing"
)

// Tests the full conversation flow across two clients sharing one backend:
// Alice starts a chat with Bob and sends a message; Bob's client gains Alice
// in its active set without any invite step, counts the message as unread,
// raises a notification, and sees exactly the sent message when Bob opens the
// conversation.
func TestClients_Conversation(t *testing.T) {
	db := newFakeDB()
	db.roster = []User{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	}

	authA := &fakeAuth{}
	a, err := NewClient(Config{Auth: authA, Database: db})
	if err != nil {
		t.Fatalf("Failed to create Alice's client: %+v", err)
	}
	signIn(a, authA, User{ID: "alice", Name: "Alice"})

	authB := &fakeAuth{}
	notifierB := &fakeNotifier{}
	b, err := NewClient(Config{Auth: authB, Database: db, Notifier: notifierB})
	if err != nil {
		t.Fatalf("Failed to create Bob's client: %+v", err)
	}
	signIn(b, authB, User{ID: "bob", Name: "Bob"})

	// Alice opens a chat with Bob and sends a message.
	if err = a.AddActiveChat("bob"); err != nil {
		t.Fatalf("AddActiveChat failed: %+v", err)
	}
	a.SelectChat("bob")
	if err = a.SendMessage("alice", "bob", "hello"); err != nil {
		t.Fatalf("SendMessage failed: %+v", err)
	}

	// Bob's side: the chat appears, counts unread, and notifies.
	sb := b.State()
	if !contains(sb.ActiveChats, "alice") {
		t.Errorf("Alice not added to Bob's active set: %v", sb.ActiveChats)
	}
	if n := sb.UnreadMessages["alice"]; n != 1 {
		t.Errorf("Unexpected unread count for Bob."+
			"\nexpected: %d\nreceived: %d", 1, n)
	}
	notes := notifierB.all()
	if len(notes) != 1 {
		t.Fatalf("Unexpected notification count."+
			"\nexpected: %d\nreceived: %d", 1, len(notes))
	}
	if notes[0].SenderName != "Alice" || notes[0].Text != "hello" {
		t.Errorf("Unexpected notification: %+v", notes[0])
	}

	// Bob opens the conversation and sees exactly the sent message.
	b.SelectChat("alice")
	msgs := b.State().Messages
	if len(msgs) != 1 {
		t.Fatalf("Unexpected message count for Bob."+
			"\nexpected: %d\nreceived: %d", 1, len(msgs))
	}
	if msgs[0].Text != "hello" || msgs[0].SenderID != "alice" {
		t.Errorf("Unexpected message for Bob: %+v", msgs[0])
	}
	if n := b.State().UnreadMessages["alice"]; n != 0 {
		t.Errorf("Unread counter not reset on open."+
			"\nexpected: %d\nreceived: %d", 0, n)
	}

	// Alice's own stream shows the same single message.
	msgs = a.State().Messages
	if len(msgs) != 1 || msgs[0].ChatID != ConversationID("alice", "bob") {
		t.Errorf("Unexpected message stream for Alice: %+v", msgs)
	}
}
