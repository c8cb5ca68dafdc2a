////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// handleMembership replaces the local active/pinned sets with the backend's
// authoritative copy. This converges the view after writes from this session
// or from another session on the same account.
func (c *Client) handleMembership(m Membership) {
	c.mux.Lock()
	c.activeChats = m.ActiveChats
	c.pinnedChats = m.PinnedChats
	c.mux.Unlock()
	c.publish()
}

// AddActiveChat adds a conversation partner to the active set. It is
// idempotent: when the id is already present no write occurs.
func (c *Client) AddActiveChat(partnerID string) error {
	c.mux.Lock()
	user := c.user
	if user == nil || contains(c.activeChats, partnerID) {
		c.mux.Unlock()
		return nil
	}
	next := append(append([]string(nil), c.activeChats...), partnerID)
	c.mux.Unlock()

	err := c.db.SetMembership(user.ID, MembershipPatch{ActiveChats: &next})
	if err != nil {
		jww.ERROR.Printf("Failed to add %s to active chats: %+v",
			partnerID, err)
		return errors.Wrap(err, "add active chat")
	}

	c.mux.Lock()
	c.activeChats = next
	c.mux.Unlock()
	c.publish()
	return nil
}

// RemoveChat removes a conversation from both the active and pinned sets in
// one combined merge write, clears its unread counter, and clears the
// selection when the removed conversation was the selected one.
func (c *Client) RemoveChat(partnerID string) error {
	c.mux.Lock()
	user := c.user
	if user == nil {
		c.mux.Unlock()
		return nil
	}
	nextActive := without(c.activeChats, partnerID)
	nextPinned := without(c.pinnedChats, partnerID)
	c.mux.Unlock()

	err := c.db.SetMembership(user.ID, MembershipPatch{
		ActiveChats: &nextActive,
		PinnedChats: &nextPinned,
	})
	if err != nil {
		jww.ERROR.Printf("Failed to remove chat %s: %+v", partnerID, err)
		return errors.Wrap(err, "remove chat")
	}

	c.mux.Lock()
	c.activeChats = nextActive
	c.pinnedChats = nextPinned
	delete(c.unread, partnerID)
	var stop Unsubscribe
	if c.selectedChatID == partnerID {
		c.selectedChatID = ""
		c.selectedConvID = ""
		c.messages = nil
		stop = c.stopMessages
		c.stopMessages = nil
	}
	c.mux.Unlock()

	if stop != nil {
		stop()
	}
	c.publish()
	return nil
}

// TogglePinnedChat flips the conversation's membership in the pinned set.
// The active set is untouched.
func (c *Client) TogglePinnedChat(partnerID string) error {
	c.mux.Lock()
	user := c.user
	if user == nil {
		c.mux.Unlock()
		return nil
	}
	var next []string
	if contains(c.pinnedChats, partnerID) {
		next = without(c.pinnedChats, partnerID)
	} else {
		next = append(append([]string(nil), c.pinnedChats...), partnerID)
	}
	c.mux.Unlock()

	err := c.db.SetMembership(user.ID, MembershipPatch{PinnedChats: &next})
	if err != nil {
		jww.ERROR.Printf("Failed to toggle pin for %s: %+v", partnerID, err)
		return errors.Wrap(err, "toggle pinned chat")
	}

	c.mux.Lock()
	c.pinnedChats = next
	c.mux.Unlock()
	c.publish()
	return nil
}
