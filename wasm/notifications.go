////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

//go:build js && wasm

package wasm

import (
	"fmt"
	"syscall/js"

	"github.com/aquilax/truncate"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/lassante/cursor-chat-app/chat"
)

// maxToastBody is the longest message text shown in a toast before it is cut
// with an ellipsis.
const maxToastBody = 64

// toastNotifier surfaces new-message alerts through the browser Notification
// API. It implements [chat.Notifier]. Clicking a toast opens the sender's
// conversation through selectChat, which is bound once the client exists.
type toastNotifier struct {
	notification js.Value
	selectChat   func(partnerID string)
}

func newToastNotifier() *toastNotifier {
	return &toastNotifier{notification: js.Global().Get("Notification")}
}

// Notify raises a browser notification for the message. Permission is
// requested on first use; when the API is missing or denied the notification
// is dropped with a log.
func (t *toastNotifier) Notify(n chat.Notification) {
	if t.notification.IsUndefined() {
		jww.DEBUG.Print("Notification API unavailable; dropping toast")
		return
	}

	switch t.notification.Get("permission").String() {
	case "granted":
	case "denied":
		jww.DEBUG.Printf(
			"Notifications denied; dropping toast from %s", n.SenderID)
		return
	default:
		// The permission prompt resolves asynchronously; this notification
		// is dropped and the next one is shown once granted.
		t.notification.Call("requestPermission")
		return
	}

	body := truncate.Truncate(n.Text, maxToastBody, "...", truncate.PositionEnd)
	opts := js.ValueOf(map[string]interface{}{
		"body": body,
		"tag":  n.SenderID,
	})
	toast := t.notification.New(
		fmt.Sprintf("New message from %s", n.SenderName), opts)

	senderID := n.SenderID
	var onClick js.Func
	onClick = js.FuncOf(func(js.Value, []js.Value) any {
		if t.selectChat != nil {
			go t.selectChat(senderID)
		}
		toast.Call("close")
		onClick.Release()
		return nil
	})
	toast.Set("onclick", onClick)
}
