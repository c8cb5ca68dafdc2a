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

// Initialize opens the continuous session feed and starts managing the
// session-scoped subscriptions (roster, membership, inbox). It returns a
// disposer that tears the whole client down; invoking it more than once is a
// no-op.
func (c *Client) Initialize() Unsubscribe {
	stopSession := c.auth.OnSessionChange(c.handleSession)
	return Once(func() {
		stopSession()
		c.closeSessionScoped()
		c.publish()
	})
}

// handleSession reacts to a session change from the identity provider: on
// sign-in it marks presence and opens the session-scoped subscriptions, on
// sign-out it closes them. Roster and chat-set state is frozen, not cleared,
// when the session ends.
func (c *Client) handleSession(user *User) {
	c.closeSessionScoped()

	c.mux.Lock()
	c.user = user
	c.loading = false
	c.mux.Unlock()

	if user == nil {
		jww.INFO.Print("Session ended; subscriptions closed")
		c.publish()
		return
	}

	jww.INFO.Printf("Session started for %s", user.ID)

	// Best effort; the membership subscription reconciles the view even if
	// this write is lost.
	if err := c.db.UpdatePresence(user.ID, true); err != nil {
		jww.WARN.Printf("Failed to mark %s online: %+v", user.ID, err)
	}

	membership := c.db.WatchMembership(user.ID, c.handleMembership)
	roster := c.db.WatchRoster(user.Email, c.handleRoster)
	inbox := c.db.WatchInbox(user.ID, c.handleInbox)

	c.mux.Lock()
	c.stopMembership = membership
	c.stopRoster = roster
	c.stopInbox = inbox
	c.mux.Unlock()

	c.publish()

	if c.prefs != nil {
		if id, ok := c.prefs.LastSelectedChat(); ok && id != "" {
			c.SelectChat(id)
		}
	}
}

// closeSessionScoped disposes every subscription tied to the session,
// including the open message stream.
func (c *Client) closeSessionScoped() {
	c.mux.Lock()
	stops := []Unsubscribe{
		c.stopMembership, c.stopRoster, c.stopInbox, c.stopMessages}
	c.stopMembership, c.stopRoster, c.stopInbox, c.stopMessages =
		nil, nil, nil, nil
	c.mux.Unlock()

	for _, stop := range stops {
		if stop != nil {
			stop()
		}
	}
}

// SignInWithEmail signs in with an email/password credential. On failure the
// read model's error string is replaced with the translated message and the
// provider error is returned.
func (c *Client) SignInWithEmail(email, password string) error {
	c.setError("")
	if err := c.auth.SignInWithEmail(email, password); err != nil {
		jww.ERROR.Printf("Email sign-in failed: %+v", err)
		c.setError(signInErrorMessage(err))
		return errors.Wrap(err, "email sign-in")
	}
	return nil
}

// SignUpWithEmail creates a new email/password account.
func (c *Client) SignUpWithEmail(email, password string) error {
	c.setError("")
	if err := c.auth.SignUpWithEmail(email, password); err != nil {
		jww.ERROR.Printf("Account creation failed: %+v", err)
		c.setError(signUpErrorMessage(err))
		return errors.Wrap(err, "email sign-up")
	}
	return nil
}

// SignInWithGoogle starts a federated sign-in via popup, falling back to a
// full-page redirect when the popup is blocked.
func (c *Client) SignInWithGoogle() error {
	c.setError("")
	err := c.auth.SignInWithPopup()
	if err == nil {
		return nil
	}

	if authCode(err) == CodePopupBlocked {
		jww.INFO.Print("Popup blocked; falling back to redirect sign-in")
		if rErr := c.auth.SignInWithRedirect(); rErr != nil {
			jww.ERROR.Printf("Redirect sign-in failed: %+v", rErr)
			c.setError(msgPopupBlocked)
			return errors.Wrap(rErr, "redirect sign-in")
		}
		return nil
	}

	jww.ERROR.Printf("Federated sign-in failed: %+v", err)
	c.setError(msgSignInFailed)
	return errors.Wrap(err, "federated sign-in")
}

// SignOut clears the presence flag and then terminates the session. Both
// steps are best effort: a failed presence write is logged and never blocks
// the sign-out.
func (c *Client) SignOut() error {
	c.mux.Lock()
	user := c.user
	c.mux.Unlock()

	if user != nil {
		if err := c.db.UpdatePresence(user.ID, false); err != nil {
			jww.WARN.Printf(
				"Failed to mark %s offline on sign-out: %+v", user.ID, err)
		}
	}

	if err := c.auth.SignOut(); err != nil {
		jww.ERROR.Printf("Sign-out failed: %+v", err)
		return errors.Wrap(err, "sign out")
	}
	return nil
}
