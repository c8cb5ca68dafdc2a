////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	jww "github.com/spf13/jwalterweatherman"
)

// handleInbox processes one delivery of the global inbox subscription, which
// covers every message addressed to the current identity across all
// conversations. Per newly added message it (a) adds unknown senders to the
// active chat set, so a conversation appears for the recipient without an
// invite step, and (b) for fresh messages from a sender that is neither the
// current identity nor the selected conversation, bumps that sender's unread
// counter and emits exactly one notification.
func (c *Client) handleInbox(ev InboxEvent) {
	for _, change := range ev.Changes {
		if change.Type != ChangeAdded {
			continue
		}
		c.handleInboxMessage(ev, change.Message)
	}
}

func (c *Client) handleInboxMessage(ev InboxEvent, msg Message) {
	c.mux.Lock()
	user := c.user
	if user == nil {
		c.mux.Unlock()
		return
	}
	selfID := user.ID
	selected := c.selectedChatID
	inActive := contains(c.activeChats, msg.SenderID)
	c.mux.Unlock()

	if !inActive {
		// Errors are already logged; the membership subscription reconciles.
		_ = c.AddActiveChat(msg.SenderID)
	}

	if msg.SenderID == selfID || msg.SenderID == selected {
		return
	}
	if ev.Backfill {
		// Initial load of the subscription, not a newly sent message.
		return
	}
	if c.now().Sub(msg.Timestamp) > c.params.FreshnessWindow {
		jww.DEBUG.Printf("Suppressing stale inbox message %s from %s",
			msg.ID, msg.SenderID)
		return
	}

	c.mux.Lock()
	c.unread[msg.SenderID]++
	c.mux.Unlock()

	if name := c.userName(msg.SenderID); name != "" {
		c.notify(Notification{
			SenderID:   msg.SenderID,
			SenderName: name,
			Text:       msg.Text,
		})
	} else {
		jww.DEBUG.Printf(
			"Sender %s not in roster yet; skipping toast", msg.SenderID)
	}

	c.publish()
}
