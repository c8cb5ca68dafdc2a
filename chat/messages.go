////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"strings"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// SelectChat makes partnerID the selected conversation: its unread counter is
// reset to zero, the previous message stream is closed, and a live
// subscription for the canonical conversation id is opened. Passing "" only
// deselects. Already-received messages stay visible until the next
// conversation's snapshot replaces them.
func (c *Client) SelectChat(partnerID string) {
	c.mux.Lock()
	user := c.user
	if user == nil {
		c.mux.Unlock()
		return
	}
	stop := c.stopMessages
	c.stopMessages = nil
	c.selectedChatID = partnerID
	delete(c.unread, partnerID)
	var convID string
	if partnerID != "" {
		convID = ConversationID(user.ID, partnerID)
	}
	c.selectedConvID = convID
	c.mux.Unlock()

	if stop != nil {
		stop()
	}
	if c.prefs != nil {
		c.prefs.SetLastSelectedChat(partnerID)
	}

	if convID == "" {
		c.publish()
		return
	}

	// Paint the cached copy, if any, while the first live snapshot is in
	// flight.
	if c.cache != nil {
		if msgs, err := c.cache.Load(convID); err != nil {
			jww.DEBUG.Printf("No cached copy of %s: %+v", convID, err)
		} else if len(msgs) > 0 {
			c.mux.Lock()
			if c.selectedConvID == convID {
				c.messages = msgs
			}
			c.mux.Unlock()
		}
	}

	sub := c.db.WatchConversation(convID, func(msgs []Message) {
		c.handleConversation(convID, msgs)
	})
	c.mux.Lock()
	if c.selectedConvID == convID {
		c.stopMessages = sub
		sub = nil
	}
	c.mux.Unlock()
	if sub != nil {
		// The selection moved on while the subscription was opening.
		sub()
	}

	c.publish()
}

// handleConversation replaces the local message list with a full snapshot of
// the selected conversation. Late deliveries for a conversation that is no
// longer selected are dropped.
func (c *Client) handleConversation(convID string, msgs []Message) {
	c.mux.Lock()
	if c.selectedConvID != convID {
		c.mux.Unlock()
		return
	}
	c.messages = msgs
	c.mux.Unlock()

	if c.cache != nil {
		c.cache.Store(convID, msgs)
	}
	c.publish()
}

// SendMessage appends a message to the conversation with the receiver. Empty
// and whitespace-only text is rejected locally without a backend write. The
// timestamp is assigned by the backend.
func (c *Client) SendMessage(senderID, receiverID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		jww.DEBUG.Print("Dropping empty message")
		return nil
	}

	msg := Message{
		Text:       text,
		SenderID:   senderID,
		ReceiverID: receiverID,
		ChatID:     ConversationID(senderID, receiverID),
	}
	if err := c.db.AddMessage(msg); err != nil {
		jww.ERROR.Printf("Failed to send message to %s: %+v", receiverID, err)
		return errors.Wrap(err, "send message")
	}
	return nil
}
