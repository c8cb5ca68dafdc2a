////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package firebase

import (
	"syscall/js"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/pkg/errors"

	"github.com/lassante/cursor-chat-app/chat"
	"github.com/lassante/cursor-chat-app/utils"
)

// snapshotQueueLen is the per-subscription backlog of converted snapshots
// waiting for the handler goroutine. The handler replaces state wholesale, so
// deliveries only queue up while a previous handler blocks on a write.
const snapshotQueueLen = 64

// subscribe opens an onSnapshot listener on the target. convert runs on the
// Javascript event loop and must only read the snapshot; the closure it
// returns runs on a dedicated goroutine, in delivery order, and may block.
func (c *Client) subscribe(
	target js.Value, convert func(snap js.Value) func()) chat.Unsubscribe {
	queue := make(chan func(), snapshotQueueLen)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case f := <-queue:
				f()
			case <-done:
				return
			}
		}
	}()

	cb := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		f := convert(args[0])
		if f == nil {
			return nil
		}
		select {
		case queue <- f:
		default:
			// The handler is stuck; do not block the event loop with it.
			jww.WARN.Print("Snapshot queue full; delivering out of order")
			go func() { queue <- f }()
		}
		return nil
	})
	errCb := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		jww.ERROR.Printf("Snapshot listener failed: %s",
			utils.JsToJson(args[0]))
		return nil
	})

	unsubscribe := c.onSnapshot(target, cb, errCb)

	return chat.Once(func() {
		if unsubscribe.Type() == js.TypeFunction {
			unsubscribe.Invoke()
		}
		close(done)
		cb.Release()
		errCb.Release()
	})
}

// WatchRoster watches every identity except the one owning selfEmail.
func (c *Client) WatchRoster(
	selfEmail string, fn func([]chat.User)) chat.Unsubscribe {
	q := c.query(c.collection(c.db, usersCollection),
		c.where("email", "!=", selfEmail))
	return c.subscribe(q, func(snap js.Value) func() {
		users := usersFromSnapshot(snap)
		return func() { fn(users) }
	})
}

// WatchMembership watches the active/pinned chat fields of one user document.
func (c *Client) WatchMembership(
	userID string, fn func(chat.Membership)) chat.Unsubscribe {
	return c.subscribe(c.userDoc(userID), func(snap js.Value) func() {
		m := membershipFromDoc(snap)
		return func() { fn(m) }
	})
}

// WatchConversation watches the message stream for one conversation id,
// ordered by send time ascending.
func (c *Client) WatchConversation(
	chatID string, fn func([]chat.Message)) chat.Unsubscribe {
	q := c.query(c.collection(c.db, messagesCollection),
		c.where("chatId", "==", chatID),
		c.orderBy("timestamp", "asc"))
	return c.subscribe(q, func(snap js.Value) func() {
		msgs := messagesFromSnapshot(snap)
		return func() { fn(msgs) }
	})
}

// WatchInbox watches all messages addressed to userID and delivers snapshot
// diffs. The first delivery after subscribing covers the existing backlog and
// is flagged as backfill.
func (c *Client) WatchInbox(
	userID string, fn func(chat.InboxEvent)) chat.Unsubscribe {
	q := c.query(c.collection(c.db, messagesCollection),
		c.where("receiverId", "==", userID),
		c.orderBy("timestamp", "desc"))

	// Only read and reset on the event loop, so no lock is needed.
	backfill := true
	return c.subscribe(q, func(snap js.Value) func() {
		ev := chat.InboxEvent{
			Changes:  changesFromSnapshot(snap),
			Backfill: backfill,
		}
		backfill = false
		return func() { fn(ev) }
	})
}

// UpdatePresence writes the presence flag and a server-assigned last-seen
// timestamp on the user's own document.
func (c *Client) UpdatePresence(userID string, online bool) error {
	update := js.ValueOf(map[string]interface{}{
		"isOnline": online,
		"lastSeen": c.serverTimestamp(),
	})
	promise := c.updateDoc(c.userDoc(userID), update)
	if _, errJS := utils.Await(promise); errJS != nil {
		return errors.Errorf("failed to update presence for %s: %s",
			userID, utils.JsToJson(errJS[0]))
	}
	return nil
}

// SetMembership merge-writes the non-nil fields of the patch onto the user's
// own document. Fields absent from the patch are left untouched by the
// backend.
func (c *Client) SetMembership(
	userID string, patch chat.MembershipPatch) error {
	fields := map[string]interface{}{}
	if patch.ActiveChats != nil {
		fields["activeChats"] = anySlice(*patch.ActiveChats)
	}
	if patch.PinnedChats != nil {
		fields["pinnedChats"] = anySlice(*patch.PinnedChats)
	}

	opts := js.ValueOf(map[string]interface{}{"merge": true})
	promise := c.setDoc(c.userDoc(userID), js.ValueOf(fields), opts)
	if _, errJS := utils.Await(promise); errJS != nil {
		return errors.Errorf("failed to set membership for %s: %s",
			userID, utils.JsToJson(errJS[0]))
	}
	return nil
}

// AddMessage appends a new message with a server-assigned timestamp.
func (c *Client) AddMessage(msg chat.Message) error {
	obj := js.ValueOf(map[string]interface{}{
		"text":       msg.Text,
		"senderId":   msg.SenderID,
		"receiverId": msg.ReceiverID,
		"chatId":     msg.ChatID,
		"timestamp":  c.serverTimestamp(),
	})
	promise := c.addDoc(c.collection(c.db, messagesCollection), obj)
	if _, errJS := utils.Await(promise); errJS != nil {
		return errors.Errorf("failed to add message to %s: %s",
			msg.ChatID, utils.JsToJson(errJS[0]))
	}
	return nil
}

// anySlice converts a string slice for [js.ValueOf].
func anySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
