////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// documentsURL is the Firestore REST endpoint documents are created under.
// The first %s is the project id, the second the collection.
const documentsURL = "https://firestore.googleapis.com/v1/projects/%s/" +
	"databases/(default)/documents/%s"

// usersCollection is the collection the chat client reads its roster from.
const usersCollection = "users"

// SeedUser is one entry of the users file. ID is optional; a random id is
// assigned when it is empty.
type SeedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

// parseUsers decodes the users file and fills in missing ids. A user without
// a name or email is rejected because the client cannot render it.
func parseUsers(data []byte) ([]SeedUser, error) {
	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, errors.Wrap(err, "malformed users file")
	}

	for i, u := range users {
		if u.Name == "" || u.Email == "" {
			return nil, errors.Errorf(
				"user %d is missing a name or email", i)
		}
		if u.ID == "" {
			users[i].ID = uuid.NewString()
		}
	}

	return users, nil
}

// firestoreDocument encodes the user as a Firestore REST document body. Every
// value carries its type as the field name, per the Firestore Value schema.
func (u SeedUser) firestoreDocument() map[string]interface{} {
	fields := map[string]interface{}{
		"name":     map[string]interface{}{"stringValue": u.Name},
		"email":    map[string]interface{}{"stringValue": u.Email},
		"isOnline": map[string]interface{}{"booleanValue": false},
		"activeChats": map[string]interface{}{
			"arrayValue": map[string]interface{}{},
		},
		"pinnedChats": map[string]interface{}{
			"arrayValue": map[string]interface{}{},
		},
	}
	if u.PhotoURL != "" {
		fields["photoURL"] =
			map[string]interface{}{"stringValue": u.PhotoURL}
	}
	return map[string]interface{}{"fields": fields}
}

// seedUsers creates one users-collection document per user and returns how
// many were created. A user whose document already exists is skipped; any
// other failure aborts the run.
func seedUsers(
	client *http.Client, projectID string, users []SeedUser) (int, error) {
	base := fmt.Sprintf(documentsURL, projectID, usersCollection)

	created := 0
	for _, u := range users {
		body, err := json.Marshal(u.firestoreDocument())
		if err != nil {
			return created, errors.Wrapf(err, "failed to encode user %s", u.ID)
		}

		// documentId makes the write a create, so re-running the tool does
		// not clobber live membership fields.
		reqURL := base + "?documentId=" + url.QueryEscape(u.ID)
		resp, err := client.Post(
			reqURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return created, errors.Wrapf(err, "failed to create user %s", u.ID)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			jww.DEBUG.Printf("Created user %s (%s)", u.ID, u.Email)
			created++
		case http.StatusConflict:
			jww.INFO.Printf("User %s already exists; skipping", u.ID)
		default:
			_ = resp.Body.Close()
			return created, errors.Errorf(
				"bad status creating user %s: %s", u.ID, resp.Status)
		}
		if err = resp.Body.Close(); err != nil {
			return created, errors.Wrapf(
				err, "failed to close response for user %s", u.ID)
		}
	}

	return created, nil
}
