////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

// Package firebase adapts the Firebase Javascript SDK, handed in from the
// page, to the [chat.Auth] and [chat.Database] interfaces. The page
// initializes the SDK (initializeApp, getAuth, getFirestore) and passes the
// instances plus the modular SDK functions in a single object; everything
// here calls back into those functions and converts snapshots to Go values.
package firebase

import (
	"syscall/js"

	"github.com/lassante/cursor-chat-app/utils"
)

// Collection names in Firestore.
const (
	usersCollection    = "users"
	messagesCollection = "messages"
)

// Client wraps the Firebase SDK objects provided by the page. It implements
// [chat.Auth] and [chat.Database].
type Client struct {
	// auth is the Auth instance (from getAuth).
	auth js.Value

	// db is the Firestore instance (from getFirestore).
	db js.Value

	// googleProvider is the GoogleAuthProvider constructor.
	googleProvider js.Value

	// Wrapped auth functions from firebase/auth.
	signInWithEmailAndPassword     func(args ...interface{}) js.Value
	createUserWithEmailAndPassword func(args ...interface{}) js.Value
	signInWithPopup                func(args ...interface{}) js.Value
	signInWithRedirect             func(args ...interface{}) js.Value
	signOut                        func(args ...interface{}) js.Value
	onAuthStateChanged             func(args ...interface{}) js.Value

	// Wrapped firestore functions from firebase/firestore.
	collection      func(args ...interface{}) js.Value
	doc             func(args ...interface{}) js.Value
	query           func(args ...interface{}) js.Value
	where           func(args ...interface{}) js.Value
	orderBy         func(args ...interface{}) js.Value
	onSnapshot      func(args ...interface{}) js.Value
	setDoc          func(args ...interface{}) js.Value
	addDoc          func(args ...interface{}) js.Value
	updateDoc       func(args ...interface{}) js.Value
	serverTimestamp func(args ...interface{}) js.Value
}

// NewClient wraps the Firebase SDK object passed in from Javascript. The
// object must carry the fields auth, db, GoogleAuthProvider, and every
// modular SDK function named below.
//
// Panics via the log if a required function is missing, since nothing can
// work without the SDK.
func NewClient(sdk js.Value) *Client {
	return &Client{
		auth:           sdk.Get("auth"),
		db:             sdk.Get("db"),
		googleProvider: sdk.Get("GoogleAuthProvider"),

		signInWithEmailAndPassword: utils.WrapCB(
			sdk, "signInWithEmailAndPassword"),
		createUserWithEmailAndPassword: utils.WrapCB(
			sdk, "createUserWithEmailAndPassword"),
		signInWithPopup:    utils.WrapCB(sdk, "signInWithPopup"),
		signInWithRedirect: utils.WrapCB(sdk, "signInWithRedirect"),
		signOut:            utils.WrapCB(sdk, "signOut"),
		onAuthStateChanged: utils.WrapCB(sdk, "onAuthStateChanged"),

		collection:      utils.WrapCB(sdk, "collection"),
		doc:             utils.WrapCB(sdk, "doc"),
		query:           utils.WrapCB(sdk, "query"),
		where:           utils.WrapCB(sdk, "where"),
		orderBy:         utils.WrapCB(sdk, "orderBy"),
		onSnapshot:      utils.WrapCB(sdk, "onSnapshot"),
		setDoc:          utils.WrapCB(sdk, "setDoc"),
		addDoc:          utils.WrapCB(sdk, "addDoc"),
		updateDoc:       utils.WrapCB(sdk, "updateDoc"),
		serverTimestamp: utils.WrapCB(sdk, "serverTimestamp"),
	}
}

// userDoc returns the document reference for the given user id.
func (c *Client) userDoc(userID string) js.Value {
	return c.doc(c.db, usersCollection, userID)
}
