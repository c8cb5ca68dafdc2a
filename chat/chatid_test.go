////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import "testing"

// Tests that ConversationID returns the same identifier regardless of
// argument order.
func TestConversationID_OrderIndependent(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"alice", "bob"},
		{"bob", "alice"},
		{"uid-1000", "uid-0999"},
		{"z", "a"},
		{"same", "same"},
	}
	for _, tt := range tests {
		ab := ConversationID(tt.a, tt.b)
		ba := ConversationID(tt.b, tt.a)
		if ab != ba {
			t.Errorf("ConversationID is order dependent for (%q, %q)"+
				"\nexpected: %q\nreceived: %q", tt.a, tt.b, ab, ba)
		}
	}
}

// Tests that the identifier is the sorted pair joined by the separator.
func TestConversationID_Form(t *testing.T) {
	expected := "alice_bob"
	if id := ConversationID("bob", "alice"); id != expected {
		t.Errorf("Unexpected conversation id."+
			"\nexpected: %q\nreceived: %q", expected, id)
	}
}
