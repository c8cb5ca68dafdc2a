////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"testing"

	"github.com/pkg/errors"
)

// Tests that each recognized provider code translates to its fixed
// user-facing string and that anything else folds into the generic message.
func TestClient_SignInWithEmail_ErrorTranslation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"user not found", &AuthError{Code: CodeUserNotFound},
			msgInvalidCredentials},
		{"wrong password", &AuthError{Code: CodeWrongPassword},
			msgInvalidCredentials},
		{"invalid credential", &AuthError{Code: CodeInvalidCredential},
			msgInvalidCredentials},
		{"unknown code", &AuthError{Code: "auth/too-many-requests"},
			msgSignInFailed},
		{"unrecognized shape", errors.New("network down"), msgSignInFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, auth, _, _ := newTestClient(t)
			auth.signInErr = tt.err
			if err := c.SignInWithEmail("a@b.c", "hunter2"); err == nil {
				t.Fatal("SignInWithEmail did not report the failure")
			}
			if got := c.State().Error; got != tt.expected {
				t.Errorf("Unexpected error string."+
					"\nexpected: %q\nreceived: %q", tt.expected, got)
			}
		})
	}
}

// Tests sign-up error translation for the registered and weak-password
// codes.
func TestClient_SignUpWithEmail_ErrorTranslation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"email exists", &AuthError{Code: CodeEmailExists}, msgEmailInUse},
		{"weak password", &AuthError{Code: CodeWeakPassword},
			msgWeakPassword},
		{"unknown", &AuthError{Code: "auth/internal-error"}, msgSignUpFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, auth, _, _ := newTestClient(t)
			auth.signUpErr = tt.err
			if err := c.SignUpWithEmail("a@b.c", "pw"); err == nil {
				t.Fatal("SignUpWithEmail did not report the failure")
			}
			if got := c.State().Error; got != tt.expected {
				t.Errorf("Unexpected error string."+
					"\nexpected: %q\nreceived: %q", tt.expected, got)
			}
		})
	}
}

// Tests that a failed attempt replaces the previous error rather than
// accumulating, and that a successful attempt clears it.
func TestClient_SignIn_ErrorReplaced(t *testing.T) {
	c, auth, _, _ := newTestClient(t)

	auth.signInErr = &AuthError{Code: CodeWrongPassword}
	_ = c.SignInWithEmail("a@b.c", "bad")
	auth.signInErr = &AuthError{Code: "auth/too-many-requests"}
	_ = c.SignInWithEmail("a@b.c", "bad")

	if got := c.State().Error; got != msgSignInFailed {
		t.Errorf("Prior error not replaced.\nexpected: %q\nreceived: %q",
			msgSignInFailed, got)
	}

	auth.signInErr = nil
	if err := c.SignInWithEmail("a@b.c", "good"); err != nil {
		t.Fatalf("SignInWithEmail failed: %+v", err)
	}
	if got := c.State().Error; got != "" {
		t.Errorf("Error not cleared on success: %q", got)
	}
}

// Tests that a blocked popup falls back to the redirect flow and that other
// popup failures do not.
func TestClient_SignInWithGoogle_RedirectFallback(t *testing.T) {
	c, auth, _, _ := newTestClient(t)

	auth.popupErr = &AuthError{Code: CodePopupBlocked}
	if err := c.SignInWithGoogle(); err != nil {
		t.Fatalf("Fallback sign-in failed: %+v", err)
	}
	if auth.redirectCalls != 1 {
		t.Errorf("Redirect fallback not attempted."+
			"\nexpected: %d\nreceived: %d", 1, auth.redirectCalls)
	}

	auth.popupErr = &AuthError{Code: "auth/cancelled-popup-request"}
	if err := c.SignInWithGoogle(); err == nil {
		t.Fatal("Non-blocked popup failure did not surface")
	}
	if auth.redirectCalls != 1 {
		t.Errorf("Redirect attempted for a non-blocked failure: %d calls",
			auth.redirectCalls)
	}
	if got := c.State().Error; got != msgSignInFailed {
		t.Errorf("Unexpected error string.\nexpected: %q\nreceived: %q",
			msgSignInFailed, got)
	}
}

// Tests that a blocked popup followed by a failed redirect surfaces the
// popup-blocker message.
func TestClient_SignInWithGoogle_RedirectFailure(t *testing.T) {
	c, auth, _, _ := newTestClient(t)

	auth.popupErr = &AuthError{Code: CodePopupBlocked}
	auth.redirectErr = errors.New("redirect refused")
	if err := c.SignInWithGoogle(); err == nil {
		t.Fatal("Failed redirect did not surface")
	}
	if got := c.State().Error; got != msgPopupBlocked {
		t.Errorf("Unexpected error string.\nexpected: %q\nreceived: %q",
			msgPopupBlocked, got)
	}
}

// Tests that sign-in marks presence online and that sign-out clears it
// before terminating the session.
func TestClient_SessionPresence(t *testing.T) {
	c, auth, db, _ := newTestClient(t)
	signIn(c, auth, alice)

	if !db.presence["alice"] {
		t.Error("Presence not marked online on session start")
	}

	if err := c.SignOut(); err != nil {
		t.Fatalf("SignOut failed: %+v", err)
	}
	if db.presence["alice"] {
		t.Error("Presence not cleared on sign-out")
	}
	if auth.signOutCalls != 1 {
		t.Errorf("Unexpected sign-out calls."+
			"\nexpected: %d\nreceived: %d", 1, auth.signOutCalls)
	}
}

// Tests that a failed presence write never blocks session termination.
func TestClient_SignOut_PresenceBestEffort(t *testing.T) {
	c, auth, db, _ := newTestClient(t)
	signIn(c, auth, alice)

	db.presenceErr = errors.New("backend unavailable")
	if err := c.SignOut(); err != nil {
		t.Fatalf("SignOut blocked by failed presence write: %+v", err)
	}
	if auth.signOutCalls != 1 {
		t.Errorf("Session not terminated.\nexpected: %d\nreceived: %d",
			1, auth.signOutCalls)
	}
}

// Tests that the loading flag clears on the first session callback and that
// roster state freezes, rather than clears, after sign-out.
func TestClient_SessionLifecycle(t *testing.T) {
	c, auth, db, _ := newTestClient(t)

	if !c.State().Loading {
		t.Error("Client not loading before the first session callback")
	}

	signIn(c, auth, alice)
	if c.State().Loading {
		t.Error("Loading flag still set after session callback")
	}

	db.pushRoster([]User{{ID: "bob", Name: "Bob", IsOnline: true}})
	auth.setSession(nil)

	s := c.State()
	if s.User != nil {
		t.Errorf("Identity not cleared after sign-out: %+v", s.User)
	}
	if len(s.Users) != 1 {
		t.Errorf("Roster cleared instead of frozen: %v", s.Users)
	}
}

// Tests that the disposer returned by Initialize is safe to invoke more than
// once.
func TestClient_Initialize_DisposerReentrant(t *testing.T) {
	c, auth, _, _ := newTestClient(t)
	stop := c.Initialize()
	auth.setSession(&alice)

	stop()
	stop() // must be a no-op
}

// Tests that Once suppresses every invocation after the first.
func TestOnce(t *testing.T) {
	calls := 0
	u := Once(func() { calls++ })
	u()
	u()
	u()
	if calls != 1 {
		t.Errorf("Unexpected invocation count.\nexpected: %d\nreceived: %d",
			1, calls)
	}
}
