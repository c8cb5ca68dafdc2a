////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

// handleRoster replaces the whole roster on every snapshot. No incremental
// diffing is attempted; the backend's list is taken as is.
func (c *Client) handleRoster(users []User) {
	c.mux.Lock()
	c.users = users
	c.mux.Unlock()
	c.publish()
}

// userName resolves the display name of an identity from the cached roster.
// Returns "" when the identity is not known yet.
func (c *Client) userName(id string) string {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i := range c.users {
		if c.users[i].ID == id {
			return c.users[i].Name
		}
	}
	return ""
}
