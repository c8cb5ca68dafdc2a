////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package indexedDb

import (
	"encoding/json"
	"sort"
	"syscall/js"

	"github.com/hack-pad/go-indexeddb/idb"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/chat"
	"github.com/lassante/cursor-chat-app/utils"
)

// MessageCache stores conversation snapshots in IndexedDb so a reopened
// conversation can paint before the first live snapshot lands. It implements
// [chat.MessageCache].
type MessageCache struct {
	db *idb.Database
}

// Store replaces the cached copy of the conversation with the given snapshot.
// The cache is an optimization, so failures are logged and swallowed; the
// live subscription remains the source of truth.
func (c *MessageCache) Store(chatID string, msgs []chat.Message) {
	// Replace, not merge: stale entries from deleted snapshots must not
	// resurface on the next load.
	err := DeleteIndexRange(c.db, messageStoreName, messageStoreChatIndex,
		js.ValueOf(chatID))
	if err != nil {
		jww.WARN.Printf("Failed to clear cached copy of %s: %+v", chatID, err)
		return
	}

	for i := range msgs {
		data, err := json.Marshal(&msgs[i])
		if err != nil {
			jww.WARN.Printf("Failed to JSON marshal cached message %s: %+v",
				msgs[i].ID, err)
			continue
		}
		obj, err := utils.JsonToJS(data)
		if err != nil {
			jww.WARN.Printf("Failed to convert cached message %s: %+v",
				msgs[i].ID, err)
			continue
		}
		if err = Put(c.db, messageStoreName, obj); err != nil {
			jww.WARN.Printf("Failed to cache message %s: %+v",
				msgs[i].ID, err)
		}
	}
}

// Load returns the cached copy of the conversation ordered by send time
// ascending. An empty slice and nil error means nothing is cached.
func (c *MessageCache) Load(chatID string) ([]chat.Message, error) {
	values, err := GetIndexRange(c.db, messageStoreName,
		messageStoreChatIndex, js.ValueOf(chatID))
	if err != nil {
		return nil, err
	}

	msgs := make([]chat.Message, 0, len(values))
	for _, value := range values {
		var msg chat.Message
		err = json.Unmarshal([]byte(utils.JsToJson(value)), &msg)
		if err != nil {
			return nil, errors.Wrapf(err,
				"unable to unmarshal cached message in %s", chatID)
		}
		msgs = append(msgs, msg)
	}

	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})

	return msgs, nil
}
