////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package logging

import (
	"bytes"
	"testing"

	jww "github.com/spf13/jwalterweatherman"
)

// Tests that LogFile.Listen only returns a writer for levels at or above the
// threshold.
func TestLogFile_Listen(t *testing.T) {
	lf, err := NewLogFile("test.log", jww.LevelWarn, 512)
	if err != nil {
		t.Fatalf("Failed to create log file: %+v", err)
	}

	if w := lf.Listen(jww.LevelInfo); w != nil {
		t.Error("Listen returned a writer below the threshold")
	}
	if w := lf.Listen(jww.LevelError); w == nil {
		t.Error("Listen did not return a writer at or above the threshold")
	}
}

// Tests that writes through the listener appear in the file contents and that
// the buffer caps at the max size.
func TestLogFile_GetFile(t *testing.T) {
	maxSize := 32
	lf, err := NewLogFile("test.log", jww.LevelTrace, maxSize)
	if err != nil {
		t.Fatalf("Failed to create log file: %+v", err)
	}

	entry := []byte("short entry\n")
	if _, err = lf.Listen(jww.LevelInfo).Write(entry); err != nil {
		t.Fatalf("Failed to write entry: %+v", err)
	}
	if !bytes.Contains(lf.GetFile(), entry) {
		t.Errorf("Entry not found in file.\nexpected: %q\nreceived: %q",
			entry, lf.GetFile())
	}

	for i := 0; i < 10; i++ {
		if _, err = lf.Listen(jww.LevelInfo).Write(entry); err != nil {
			t.Fatalf("Failed to write entry %d: %+v", i, err)
		}
	}
	if len(lf.GetFile()) > maxSize {
		t.Errorf("File exceeds max size.\nexpected: <= %d\nreceived: %d",
			maxSize, len(lf.GetFile()))
	}
	if lf.MaxSize() != maxSize {
		t.Errorf("Unexpected max size.\nexpected: %d\nreceived: %d",
			maxSize, lf.MaxSize())
	}
}
