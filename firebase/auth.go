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

	"github.com/lassante/cursor-chat-app/chat"
	"github.com/lassante/cursor-chat-app/utils"
)

// authError converts a rejected Firebase promise value into a
// [chat.AuthError] carrying the provider's error code (e.g.
// "auth/wrong-password").
func authError(errJS js.Value) error {
	ae := &chat.AuthError{}
	if code := errJS.Get("code"); code.Type() == js.TypeString {
		ae.Code = code.String()
	}
	if msg := errJS.Get("message"); msg.Type() == js.TypeString {
		ae.Detail = msg.String()
	} else {
		ae.Detail = utils.JsToJson(errJS)
	}
	return ae
}

// SignInWithEmail signs in with an email/password credential. It blocks until
// the provider resolves the attempt.
func (c *Client) SignInWithEmail(email, password string) error {
	promise := c.signInWithEmailAndPassword(c.auth, email, password)
	if _, errJS := utils.Await(promise); errJS != nil {
		return authError(errJS[0])
	}
	return nil
}

// SignUpWithEmail creates a new email/password account and signs it in.
func (c *Client) SignUpWithEmail(email, password string) error {
	promise := c.createUserWithEmailAndPassword(c.auth, email, password)
	if _, errJS := utils.Await(promise); errJS != nil {
		return authError(errJS[0])
	}
	return nil
}

// SignInWithPopup starts a Google federated sign-in in a popup window.
func (c *Client) SignInWithPopup() error {
	provider := c.googleProvider.New()
	promise := c.signInWithPopup(c.auth, provider)
	if _, errJS := utils.Await(promise); errJS != nil {
		return authError(errJS[0])
	}
	return nil
}

// SignInWithRedirect starts a Google federated sign-in with a full-page
// redirect. On success the page navigates away, so a nil return only means
// the navigation was accepted.
func (c *Client) SignInWithRedirect() error {
	provider := c.googleProvider.New()
	promise := c.signInWithRedirect(c.auth, provider)
	if _, errJS := utils.Await(promise); errJS != nil {
		return authError(errJS[0])
	}
	return nil
}

// SignOut terminates the provider session.
func (c *Client) SignOut() error {
	if _, errJS := utils.Await(c.signOut(c.auth)); errJS != nil {
		return authError(errJS[0])
	}
	return nil
}

// OnSessionChange subscribes to the provider's continuous session feed. The
// callback receives the signed-in identity or nil and runs on its own
// goroutine, so it may block on further SDK calls.
func (c *Client) OnSessionChange(fn func(*chat.User)) chat.Unsubscribe {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		var user *chat.User
		if len(args) > 0 && !args[0].IsNull() && !args[0].IsUndefined() {
			user = sessionUser(args[0])
		}
		// Handlers write to Firestore and await the result, which must not
		// run on the event loop.
		go fn(user)
		return nil
	})

	unsubscribe := c.onAuthStateChanged(c.auth, cb)

	return chat.Once(func() {
		if unsubscribe.Type() == js.TypeFunction {
			unsubscribe.Invoke()
		} else {
			jww.WARN.Print(
				"onAuthStateChanged did not return an unsubscriber")
		}
		cb.Release()
	})
}

// sessionUser converts a Firebase auth user object to a [chat.User].
func sessionUser(userJS js.Value) *chat.User {
	user := &chat.User{ID: userJS.Get("uid").String()}
	if v := userJS.Get("displayName"); v.Type() == js.TypeString {
		user.Name = v.String()
	}
	if v := userJS.Get("email"); v.Type() == js.TypeString {
		user.Email = v.String()
	}
	if v := userJS.Get("photoURL"); v.Type() == js.TypeString {
		user.PhotoURL = v.String()
	}
	return user
}
