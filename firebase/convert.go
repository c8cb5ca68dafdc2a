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
	"time"

	"github.com/lassante/cursor-chat-app/chat"
)

// jsString returns the string value of v, or def when v is not a string.
func jsString(v js.Value, def string) string {
	if v.Type() == js.TypeString {
		return v.String()
	}
	return def
}

// tsToTime converts a Firestore Timestamp to a [time.Time]. Pending server
// timestamps arrive as null until the write is acknowledged; those and
// missing fields convert to the zero time.
func tsToTime(v js.Value) time.Time {
	if v.IsUndefined() || v.IsNull() {
		return time.Time{}
	}
	ms := v.Call("toDate").Call("getTime").Float()
	return time.UnixMilli(int64(ms)).UTC()
}

// stringSlice converts a Javascript array of strings to a Go slice. Non-array
// and missing values convert to nil.
func stringSlice(v js.Value) []string {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	out := make([]string, 0, v.Length())
	for i := 0; i < v.Length(); i++ {
		out = append(out, v.Index(i).String())
	}
	return out
}

// userFromDoc converts a users collection document snapshot to a [chat.User].
// Documents written by older clients may lack fields; those get defaults so a
// partial document never breaks the roster.
func userFromDoc(doc js.Value) chat.User {
	data := doc.Call("data")
	return chat.User{
		ID:       doc.Get("id").String(),
		Name:     jsString(data.Get("name"), "Unknown"),
		Email:    jsString(data.Get("email"), ""),
		PhotoURL: jsString(data.Get("photoURL"), ""),
		IsOnline: data.Get("isOnline").Truthy(),
		LastSeen: tsToTime(data.Get("lastSeen")),
	}
}

// messageFromDoc converts a messages collection document snapshot to a
// [chat.Message].
func messageFromDoc(doc js.Value) chat.Message {
	data := doc.Call("data")
	return chat.Message{
		ID:         doc.Get("id").String(),
		Text:       jsString(data.Get("text"), ""),
		SenderID:   jsString(data.Get("senderId"), ""),
		ReceiverID: jsString(data.Get("receiverId"), ""),
		ChatID:     jsString(data.Get("chatId"), ""),
		Timestamp:  tsToTime(data.Get("timestamp")),
	}
}

// membershipFromDoc converts a user document snapshot to the membership
// fields stored on it. A document that does not exist yet converts to empty
// sets.
func membershipFromDoc(doc js.Value) chat.Membership {
	data := doc.Call("data")
	if data.IsUndefined() || data.IsNull() {
		return chat.Membership{}
	}
	return chat.Membership{
		ActiveChats: stringSlice(data.Get("activeChats")),
		PinnedChats: stringSlice(data.Get("pinnedChats")),
	}
}

// usersFromSnapshot converts a query snapshot over the users collection.
func usersFromSnapshot(snap js.Value) []chat.User {
	docs := snap.Get("docs")
	users := make([]chat.User, 0, docs.Length())
	for i := 0; i < docs.Length(); i++ {
		users = append(users, userFromDoc(docs.Index(i)))
	}
	return users
}

// messagesFromSnapshot converts a query snapshot over the messages
// collection, preserving query order.
func messagesFromSnapshot(snap js.Value) []chat.Message {
	docs := snap.Get("docs")
	msgs := make([]chat.Message, 0, docs.Length())
	for i := 0; i < docs.Length(); i++ {
		msgs = append(msgs, messageFromDoc(docs.Index(i)))
	}
	return msgs
}

// changesFromSnapshot converts the snapshot's diff entries.
func changesFromSnapshot(snap js.Value) []chat.MessageChange {
	docChanges := snap.Call("docChanges")
	changes := make([]chat.MessageChange, 0, docChanges.Length())
	for i := 0; i < docChanges.Length(); i++ {
		change := docChanges.Index(i)
		changes = append(changes, chat.MessageChange{
			Type:    changeType(change.Get("type").String()),
			Message: messageFromDoc(change.Get("doc")),
		})
	}
	return changes
}

// changeType maps the SDK's diff type string to a [chat.ChangeType].
func changeType(t string) chat.ChangeType {
	switch t {
	case "added":
		return chat.ChangeAdded
	case "modified":
		return chat.ChangeModified
	default:
		return chat.ChangeRemoved
	}
}
