////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package storage

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

const indexedDbListKey = "indexedDbList"

// GetIndexedDbList returns the names of every IndexedDb database this binary
// has opened on this origin.
func GetIndexedDbList() (map[string]struct{}, error) {
	list := make(map[string]struct{})
	listBytes, err := GetLocalStorage().GetItem(indexedDbListKey)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else if err == nil {
		err = json.Unmarshal(listBytes, &list)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

// StoreIndexedDb saves the IndexedDb database name to storage so [Purge] can
// find and delete it later.
func StoreIndexedDb(databaseName string) error {
	list, err := GetIndexedDbList()
	if err != nil {
		return err
	}

	list[databaseName] = struct{}{}

	listBytes, err := json.Marshal(list)
	if err != nil {
		return err
	}

	GetLocalStorage().SetItem(indexedDbListKey, listBytes)

	return nil
}
