////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package indexedDb

import (
	"context"
	"syscall/js"

	"github.com/hack-pad/go-indexeddb/idb"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/storage"
)

// currentVersion of the IndexedDb runtime. Used for migration purposes.
const currentVersion uint = 1

// databaseName is the name of the IndexedDb database holding cached
// conversations.
const databaseName = "cursorChatMessages"

// Object store and index names.
const (
	pkeyName              = "id"
	messageStoreName      = "messages"
	messageStoreChat      = "chatId"
	messageStoreChatIndex = "chat_id_index"
)

// NewMessageCache opens the message cache database, upgrading the schema if
// required, and returns a [MessageCache] backed by it.
func NewMessageCache() (*MessageCache, error) {
	ctx := context.Background()

	// Attempt to open database object
	openRequest, err := idb.Global().Open(ctx, databaseName, currentVersion,
		func(db *idb.Database, oldVersion, newVersion uint) error {
			if oldVersion == newVersion {
				jww.INFO.Printf("IndexedDb version is current: v%d",
					newVersion)
				return nil
			}

			jww.INFO.Printf("IndexedDb upgrade required: v%d -> v%d",
				oldVersion, newVersion)

			if oldVersion == 0 && newVersion == 1 {
				return v1Upgrade(db)
			}

			return errors.Errorf("Invalid version upgrade path: v%d -> v%d",
				oldVersion, newVersion)
		})
	if err != nil {
		return nil, errors.Wrap(err, "unable to open IndexedDb")
	}

	// Wait for database open to finish
	db, err := openRequest.Await(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open IndexedDb")
	}

	// Track the database name so Purge can find it later
	if err = storage.StoreIndexedDb(databaseName); err != nil {
		jww.WARN.Printf(
			"Failed to track IndexedDb database name: %+v", err)
	}

	return &MessageCache{db: db}, nil
}

// v1Upgrade performs the v0 -> v1 database upgrade. This can never be changed
// without permanently breaking backwards compatibility.
func v1Upgrade(db *idb.Database) error {
	storeOpts := idb.ObjectStoreOptions{
		KeyPath:       js.ValueOf(pkeyName),
		AutoIncrement: false,
	}
	indexOpts := idb.IndexOptions{
		Unique:     false,
		MultiEntry: false,
	}

	// Build Message ObjectStore and Indexes
	messageStore, err := db.CreateObjectStore(messageStoreName, storeOpts)
	if err != nil {
		return err
	}
	_, err = messageStore.CreateIndex(messageStoreChatIndex,
		js.ValueOf(messageStoreChat), indexOpts)
	if err != nil {
		return err
	}

	return nil
}
