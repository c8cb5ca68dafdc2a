////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

// conversationIDSeparator joins the two participant ids of a conversation id.
const conversationIDSeparator = "_"

// ConversationID derives the canonical identifier for the conversation
// between two identities: the lexicographically sorted pair of ids joined by
// an underscore. Both participants compute the same identifier regardless of
// argument order, which is what lets either side subscribe to the shared
// message stream without a separate create-conversation step.
func ConversationID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + conversationIDSeparator + b
}
