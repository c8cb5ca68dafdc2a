////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package chat

import (
	"fmt"

	jww "github.com/spf13/jwalterweatherman"
)

// Provider error codes recognized by the client. Any other code folds into
// the generic retry message for the failed operation.
const (
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeEmailExists       = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodePopupBlocked      = "auth/popup-blocked"
)

// User-facing error strings. Exactly one of these is surfaced per failed
// attempt, replacing any prior error.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailInUse         = "Email already in use"
	msgWeakPassword       = "Password should be at least 6 characters"
	msgSignInFailed       = "Failed to sign in. Please try again."
	msgSignUpFailed       = "Failed to create account. Please try again."
	msgPopupBlocked       = "Failed to sign in. Please check your popup " +
		"blocker settings."
)

// AuthError is a failure reported by the identity provider, carrying the
// provider's error code.
type AuthError struct {
	Code   string
	Detail string
}

// Error adheres to the error interface.
func (e *AuthError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// authCode extracts the provider error code from err, or "" when err carries
// none. Unrecognized error shapes are logged so they can be added to the
// translation table later.
func authCode(err error) string {
	if ae, ok := err.(*AuthError); ok {
		return ae.Code
	}
	jww.WARN.Printf("Unrecognized auth error shape: %+v", err)
	return ""
}

// signInErrorMessage translates a failed sign-in into its fixed user-facing
// string.
func signInErrorMessage(err error) string {
	switch authCode(err) {
	case CodeUserNotFound, CodeWrongPassword, CodeInvalidCredential:
		return msgInvalidCredentials
	default:
		return msgSignInFailed
	}
}

// signUpErrorMessage translates a failed sign-up into its fixed user-facing
// string.
func signUpErrorMessage(err error) string {
	switch authCode(err) {
	case CodeEmailExists:
		return msgEmailInUse
	case CodeWeakPassword:
		return msgWeakPassword
	default:
		return msgSignUpFailed
	}
}
