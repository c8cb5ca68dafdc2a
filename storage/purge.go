////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package storage

import (
	"syscall/js"

	"github.com/hack-pad/go-indexeddb/idb"
	"github.com/pkg/errors"

	"github.com/lassante/cursor-chat-app/utils"
)

// Purge clears all local storage keys and IndexedDb databases saved by this
// WASM binary. Call it only while signed out; message caches are rebuilt from
// the backend on the next session.
//
// Returns:
//   - Throws a TypeError if a cached database cannot be listed or deleted.
func Purge(js.Value, []js.Value) interface{} {
	// Get all indexedDb database names
	databaseList, err := GetIndexedDbList()
	if err != nil {
		utils.Throw(utils.TypeError, errors.Errorf(
			"failed to get list of indexedDb database names: %+v", err))
		return nil
	}

	// Delete each database
	for dbName := range databaseList {
		_, err = idb.Global().DeleteDatabase(dbName)
		if err != nil {
			utils.Throw(utils.TypeError, errors.Errorf(
				"failed to delete indexedDb database %q: %+v", dbName, err))
			return nil
		}
	}

	// Clear all local storage saved by this WASM project, including the
	// database list and the stored preferences
	GetLocalStorage().ClearApp()

	return nil
}
