////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package storage

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// SEMVER is the current semantic version of the chat client WASM binary.
const SEMVER = "0.2.1"

// semverKey is the local storage key holding the version of the binary that
// last ran on this origin.
const semverKey = "chatAppSemanticVersion"

// CheckAndStoreVersion checks that the stored binary version matches the
// current version and, if not, upgrades it. On first load, the current
// version is only stored.
func CheckAndStoreVersion() error {
	return checkAndStoreVersion(SEMVER, GetLocalStorage())
}

func checkAndStoreVersion(currentVer string, ls *LocalStorage) error {
	storedVer, err := initOrLoadStoredSemver(semverKey, currentVer, ls)
	if err != nil {
		return err
	}

	// Store old version to memory
	setOldSemVersion(storedVer)

	if storedVer != currentVer {
		jww.INFO.Printf("Chat client out of date; upgrading version: v%s → v%s",
			storedVer, currentVer)
	} else {
		jww.INFO.Printf("Chat client version is current: v%s", storedVer)
	}

	// Upgrade path code goes here

	// Save the current version
	ls.SetItem(semverKey, []byte(currentVer))

	return nil
}

// initOrLoadStoredSemver returns the semantic version stored at the key in
// local storage. If no version is stored, then the current version is stored
// and returned.
func initOrLoadStoredSemver(
	key, currentVersion string, ls *LocalStorage) (string, error) {
	storedVersion, err := ls.GetItem(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Save the current version if this is the first run
			jww.INFO.Printf("Initialising %s to v%s", key, currentVersion)
			ls.SetItem(key, []byte(currentVersion))
			return currentVersion, nil
		}

		// If the item exists, but cannot be loaded, return an error
		return "", errors.Errorf(
			"could not load %s from storage: %+v", key, err)
	}

	// Return the stored version
	return string(storedVersion), nil
}

// oldVersion contains the version of the binary that was stored in storage
// before being overwritten on update.
var oldVersion struct {
	semver string
	sync.Mutex
}

// GetOldSemVersion returns the version of the binary that last ran on this
// origin before being updated.
func GetOldSemVersion() string {
	oldVersion.Lock()
	defer oldVersion.Unlock()
	return oldVersion.semver
}

// setOldSemVersion sets the old binary version. This should be called before
// it is updated.
func setOldSemVersion(v string) {
	oldVersion.Lock()
	defer oldVersion.Unlock()
	oldVersion.semver = v
}
