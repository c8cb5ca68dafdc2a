////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package storage

// lastSelectedChatKey is the local storage key holding the id of the
// conversation partner that was selected when the page last unloaded.
const lastSelectedChatKey = "lastSelectedChat"

// Prefs persists small per-device UI preferences in local storage. It
// implements [chat.Prefs].
type Prefs struct {
	ls *LocalStorage
}

// GetPrefs returns the preference store backed by local storage.
func GetPrefs() *Prefs {
	return &Prefs{ls: GetLocalStorage()}
}

// LastSelectedChat returns the conversation partner selected in the previous
// session, if one was saved.
func (p *Prefs) LastSelectedChat() (string, bool) {
	id, err := p.ls.GetItem(lastSelectedChatKey)
	if err != nil || len(id) == 0 {
		return "", false
	}
	return string(id), true
}

// SetLastSelectedChat saves the selected conversation partner. An empty id
// clears the saved selection.
func (p *Prefs) SetLastSelectedChat(id string) {
	if id == "" {
		p.ls.RemoveItem(lastSelectedChatKey)
		return
	}
	p.ls.SetItem(lastSelectedChatKey, []byte(id))
}
