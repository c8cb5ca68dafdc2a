////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

// Package wasm exposes the chat client to the page as Javascript objects. The
// page hands in the initialized Firebase SDK and a state callback; every
// command on the returned object maps onto one [chat.Client] operation.
package wasm

import (
	"encoding/json"
	"syscall/js"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/chat"
	"github.com/lassante/cursor-chat-app/firebase"
	"github.com/lassante/cursor-chat-app/indexedDb"
	"github.com/lassante/cursor-chat-app/storage"
	"github.com/lassante/cursor-chat-app/utils"
)

// ChatClient wraps the [chat.Client] object so its methods can be wrapped to
// be Javascript compatible.
type ChatClient struct {
	api *chat.Client
}

// newChatClientJS creates a new Javascript compatible object (map[string]any)
// that matches the [chat.Client] structure.
func newChatClientJS(api *chat.Client) map[string]any {
	cc := ChatClient{api}
	chatClient := map[string]any{
		"Initialize":       js.FuncOf(cc.Initialize),
		"GetState":         js.FuncOf(cc.GetState),
		"SignInWithEmail":  js.FuncOf(cc.SignInWithEmail),
		"SignUpWithEmail":  js.FuncOf(cc.SignUpWithEmail),
		"SignInWithGoogle": js.FuncOf(cc.SignInWithGoogle),
		"SignOut":          js.FuncOf(cc.SignOut),
		"SelectChat":       js.FuncOf(cc.SelectChat),
		"SendMessage":      js.FuncOf(cc.SendMessage),
		"AddActiveChat":    js.FuncOf(cc.AddActiveChat),
		"RemoveChat":       js.FuncOf(cc.RemoveChat),
		"TogglePinnedChat": js.FuncOf(cc.TogglePinnedChat),
	}
	return chatClient
}

// NewChatClient builds a chat client over the Firebase SDK handed in from the
// page. The message cache is opened as part of construction, which is why
// this returns a promise.
//
// Parameters:
//   - args[0] - Object carrying the Firebase SDK instances and modular
//     functions (see [firebase.NewClient]).
//   - args[1] - Javascript function invoked with the full read model, as an
//     object, after every state change.
//
// Returns a promise:
//   - Resolves to a Javascript representation of the [chat.Client] object.
//   - Rejected with an error if client construction fails.
func NewChatClient(_ js.Value, args []js.Value) any {
	sdk := args[0]
	onState := args[1]

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		fb := firebase.NewClient(sdk)

		// The cache is an optimization; run without it if it cannot open.
		var cache chat.MessageCache
		if mc, err := indexedDb.NewMessageCache(); err != nil {
			jww.WARN.Printf("Running without message cache: %+v", err)
		} else {
			cache = mc
		}

		notifier := newToastNotifier()
		api, err := chat.NewClient(chat.Config{
			Auth:     fb,
			Database: fb,
			Notifier: notifier,
			Cache:    cache,
			Prefs:    storage.GetPrefs(),
			OnState: func(s chat.State) {
				data, err := json.Marshal(s)
				if err != nil {
					jww.ERROR.Printf(
						"Failed to JSON marshal state: %+v", err)
					return
				}
				obj, err := utils.JsonToJS(data)
				if err != nil {
					jww.ERROR.Printf("Failed to convert state: %+v", err)
					return
				}
				onState.Invoke(obj)
			},
		})
		if err != nil {
			reject(utils.JsTrace(err))
			return
		}
		notifier.selectChat = api.SelectChat

		resolve(newChatClientJS(api))
	}

	return utils.CreatePromise(promiseFn)
}

// Initialize opens the session feed and starts managing the session-scoped
// subscriptions.
//
// Returns:
//   - A Javascript function that tears the client down. Invoking it more
//     than once is a no-op.
func (cc *ChatClient) Initialize(js.Value, []js.Value) any {
	stop := cc.api.Initialize()
	return js.FuncOf(func(js.Value, []js.Value) any {
		go stop()
		return nil
	})
}

// GetState returns the current read model.
//
// Returns:
//   - The full state (object). Throws a TypeError if it cannot be converted.
func (cc *ChatClient) GetState(js.Value, []js.Value) any {
	data, err := json.Marshal(cc.api.State())
	if err != nil {
		utils.Throw(utils.TypeError, err)
		return nil
	}
	obj, err := utils.JsonToJS(data)
	if err != nil {
		utils.Throw(utils.TypeError, err)
		return nil
	}
	return obj
}

// SignInWithEmail signs in with an email/password credential.
//
// Parameters:
//   - args[0] - Email address (string).
//   - args[1] - Password (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error on failure. The translated user-facing message
//     is also published on the read model.
func (cc *ChatClient) SignInWithEmail(_ js.Value, args []js.Value) any {
	email := args[0].String()
	password := args[1].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.SignInWithEmail(email, password); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// SignUpWithEmail creates a new email/password account.
//
// Parameters:
//   - args[0] - Email address (string).
//   - args[1] - Password (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error on failure.
func (cc *ChatClient) SignUpWithEmail(_ js.Value, args []js.Value) any {
	email := args[0].String()
	password := args[1].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.SignUpWithEmail(email, password); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// SignInWithGoogle starts a Google federated sign-in via popup, falling back
// to a full-page redirect when the popup is blocked.
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error on failure.
func (cc *ChatClient) SignInWithGoogle(js.Value, []js.Value) any {
	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.SignInWithGoogle(); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// SignOut clears the presence flag and terminates the session.
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error if the provider sign-out fails.
func (cc *ChatClient) SignOut(js.Value, []js.Value) any {
	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.SignOut(); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// SelectChat makes the given partner the selected conversation: the unread
// counter resets and the message stream subscription moves.
//
// Parameters:
//   - args[0] - Partner user id (string). Pass "" to deselect.
//
// Returns a promise:
//   - Resolves to nothing once the subscription is in place (void).
func (cc *ChatClient) SelectChat(_ js.Value, args []js.Value) any {
	partnerID := args[0].String()

	promiseFn := func(resolve, _ func(args ...interface{}) js.Value) {
		cc.api.SelectChat(partnerID)
		resolve()
	}

	return utils.CreatePromise(promiseFn)
}

// SendMessage appends a message to the conversation with the receiver.
// Whitespace-only text resolves without a write.
//
// Parameters:
//   - args[0] - Sender user id (string).
//   - args[1] - Receiver user id (string).
//   - args[2] - Message text (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error if the append write fails.
func (cc *ChatClient) SendMessage(_ js.Value, args []js.Value) any {
	senderID := args[0].String()
	receiverID := args[1].String()
	text := args[2].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.SendMessage(senderID, receiverID, text); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// AddActiveChat adds a conversation partner to the active set. Adding a
// partner that is already present resolves without a write.
//
// Parameters:
//   - args[0] - Partner user id (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error if the membership write fails.
func (cc *ChatClient) AddActiveChat(_ js.Value, args []js.Value) any {
	partnerID := args[0].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.AddActiveChat(partnerID); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// RemoveChat removes a conversation from the active and pinned sets in one
// combined write and clears its unread counter and selection.
//
// Parameters:
//   - args[0] - Partner user id (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error if the membership write fails; local state is
//     untouched in that case.
func (cc *ChatClient) RemoveChat(_ js.Value, args []js.Value) any {
	partnerID := args[0].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.RemoveChat(partnerID); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}

// TogglePinnedChat flips the conversation's membership in the pinned set.
//
// Parameters:
//   - args[0] - Partner user id (string).
//
// Returns a promise:
//   - Resolves to nothing on success (void).
//   - Rejected with an error if the membership write fails.
func (cc *ChatClient) TogglePinnedChat(_ js.Value, args []js.Value) any {
	partnerID := args[0].String()

	promiseFn := func(resolve, reject func(args ...interface{}) js.Value) {
		if err := cc.api.TogglePinnedChat(partnerID); err != nil {
			reject(utils.JsTrace(err))
		} else {
			resolve()
		}
	}

	return utils.CreatePromise(promiseFn)
}
