////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package indexedDb

import (
	"os"
	"testing"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/chat"
)

func TestMain(m *testing.M) {
	jww.SetStdoutThreshold(jww.LevelDebug)
	os.Exit(m.Run())
}

// Happy path: store a conversation snapshot and load it back in send order.
func TestMessageCache_StoreLoad(t *testing.T) {
	c, err := NewMessageCache()
	if err != nil {
		t.Fatalf("Failed to open message cache: %+v", err)
	}

	base := time.Now().Truncate(time.Second).UTC()
	convID := chat.ConversationID("alice", "bob")
	msgs := []chat.Message{
		{ID: "m2", Text: "second", SenderID: "bob", ReceiverID: "alice",
			ChatID: convID, Timestamp: base.Add(time.Second)},
		{ID: "m1", Text: "first", SenderID: "alice", ReceiverID: "bob",
			ChatID: convID, Timestamp: base},
	}

	c.Store(convID, msgs)

	loaded, err := c.Load(convID)
	if err != nil {
		t.Fatalf("Failed to load cached conversation: %+v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Unexpected cached message count."+
			"\nexpected: %d\nreceived: %d", 2, len(loaded))
	}
	if loaded[0].ID != "m1" || loaded[1].ID != "m2" {
		t.Errorf("Cached messages not in send order: %+v", loaded)
	}
}

// Tests that storing a smaller snapshot replaces, rather than merges with,
// the previous cached copy.
func TestMessageCache_StoreReplaces(t *testing.T) {
	c, err := NewMessageCache()
	if err != nil {
		t.Fatalf("Failed to open message cache: %+v", err)
	}

	convID := chat.ConversationID("carol", "dave")
	now := time.Now().UTC()
	c.Store(convID, []chat.Message{
		{ID: "a", ChatID: convID, Timestamp: now},
		{ID: "b", ChatID: convID, Timestamp: now.Add(time.Second)},
	})
	c.Store(convID, []chat.Message{
		{ID: "b", ChatID: convID, Timestamp: now.Add(time.Second)},
	})

	loaded, err := c.Load(convID)
	if err != nil {
		t.Fatalf("Failed to load cached conversation: %+v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "b" {
		t.Errorf("Stale entries not replaced: %+v", loaded)
	}
}

// Tests that snapshots for two conversations land in the same object store
// without mixing on load.
func TestMessageCache_TwoConversations(t *testing.T) {
	c, err := NewMessageCache()
	if err != nil {
		t.Fatalf("Failed to open message cache: %+v", err)
	}

	now := time.Now().UTC()
	convAB := chat.ConversationID("ann", "ben")
	convAC := chat.ConversationID("ann", "cat")
	c.Store(convAB, []chat.Message{
		{ID: "ab1", ChatID: convAB, Timestamp: now}})
	c.Store(convAC, []chat.Message{
		{ID: "ac1", ChatID: convAC, Timestamp: now},
		{ID: "ac2", ChatID: convAC, Timestamp: now.Add(time.Second)}})

	dump, err := Dump(c.db, messageStoreName)
	if err != nil {
		t.Fatalf("Failed to dump message store: %+v", err)
	}
	if len(dump) < 3 {
		t.Errorf("Stored records missing from the object store."+
			"\nexpected: at least %d\nreceived: %d", 3, len(dump))
	}

	loaded, err := c.Load(convAB)
	if err != nil {
		t.Fatalf("Failed to load cached conversation: %+v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "ab1" {
		t.Errorf("Load mixed conversations: %+v", loaded)
	}
}

// Tests that loading a conversation that was never stored returns an empty
// slice and no error.
func TestMessageCache_LoadEmpty(t *testing.T) {
	c, err := NewMessageCache()
	if err != nil {
		t.Fatalf("Failed to open message cache: %+v", err)
	}

	loaded, err := c.Load(chat.ConversationID("nobody", "noone"))
	if err != nil {
		t.Fatalf("Load of missing conversation failed: %+v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Unexpected cached messages: %+v", loaded)
	}
}
