////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/lassante/cursor-chat-app/storage"
)

// GetVersion returns the current version of the chat client WASM binary.
//
// Returns:
//   - Version (string).
func GetVersion(js.Value, []js.Value) any {
	return storage.SEMVER
}

// GetOldVersion returns the version of the binary that last ran on this
// origin before being updated.
//
// Returns:
//   - Version (string). Equal to the current version unless an upgrade
//     happened on this load.
func GetOldVersion(js.Value, []js.Value) any {
	return storage.GetOldSemVersion()
}
