////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package main

import (
	"os"
	"os/signal"
	"syscall"
	"syscall/js"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/logging"
	"github.com/lassante/cursor-chat-app/storage"
	"github.com/lassante/cursor-chat-app/wasm"
)

func init() {
	// Send all logging to the Javascript console instead of stdout
	if err := logging.LogLevel(jww.LevelInfo); err != nil {
		jww.FATAL.Panicf("Failed to initialize logging: %+v", err)
	}

	// Check that the WASM binary version is correct
	if err := storage.CheckAndStoreVersion(); err != nil {
		jww.FATAL.Panicf("WASM binary version error: %+v", err)
	}
}

func main() {
	jww.INFO.Printf("Starting chat client WebAssembly bindings v%s",
		storage.SEMVER)

	// wasm/chat.go
	js.Global().Set("NewChatClient", js.FuncOf(wasm.NewChatClient))

	// logging/logLevel.go
	js.Global().Set("LogLevel", js.FuncOf(logging.LogLevelJS))

	// logging/file.go
	js.Global().Set("LogToFile", js.FuncOf(logging.LogToFileJS))

	// wasm/version.go
	js.Global().Set("GetVersion", js.FuncOf(wasm.GetVersion))
	js.Global().Set("GetOldVersion", js.FuncOf(wasm.GetOldVersion))

	// storage/purge.go
	js.Global().Set("Purge", js.FuncOf(storage.Purge))

	// Wait until the user terminates the program
	c := make(chan os.Signal)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	os.Exit(0)
}
