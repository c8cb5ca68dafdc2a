////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package utils

import (
	"encoding/json"
	"syscall/js"
)

// JsToJson converts the Javascript value to JSON.
func JsToJson(value js.Value) string {
	if value.IsUndefined() || value.IsNull() {
		return "null"
	}
	return JSON.Call("stringify", value).String()
}

// JsonToJS converts a JSON bytes input to a [js.Value] of the object subtype.
func JsonToJS(inputJson []byte) (js.Value, error) {
	var jsObj map[string]any
	err := json.Unmarshal(inputJson, &jsObj)
	if err != nil {
		return js.ValueOf(nil), err
	}

	return js.ValueOf(jsObj), nil
}
