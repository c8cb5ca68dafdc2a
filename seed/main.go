////////////////////////////////////////////////////////////////////////////////
// Copyright © 2024 the cursor-chat-app authors                               //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// package main is its own utility that is compiled separate from the WASM
// module. It provisions demo identities in the users collection through the
// Firestore REST API so a fresh project has a roster to chat with.

package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
)

// Flag variables.
var (
	projectID, usersFile, logFile string
	logLevel                      int
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Reads a JSON list of users and creates one document per user in the
// project's users collection. Existing documents with the same id are left
// alone. Refer to the flags for details.
var cmd = &cobra.Command{
	Use: "seedUsers",
	Short: "Reads a JSON list of users and creates one document per user in " +
		"the project's users collection. Existing documents with the same " +
		"id are left alone. Refer to the flags for details.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {

		// Initialize the logging
		initLog(jww.Threshold(logLevel), logFile)

		jww.INFO.Printf("Reading users from %s", usersFile)
		data, err := os.ReadFile(usersFile)
		if err != nil {
			jww.FATAL.Panicf("Failed to read users file: %+v", err)
		}

		users, err := parseUsers(data)
		if err != nil {
			jww.FATAL.Panicf("Failed to parse users file: %+v", err)
		}

		jww.DEBUG.Printf("Parsed %d users from file", len(users))

		client := &http.Client{Timeout: 30 * time.Second}
		created, err := seedUsers(client, projectID, users)
		if err != nil {
			jww.FATAL.Panicf("Failed to seed users: %+v", err)
		}

		jww.INFO.Printf("Created %d of %d users in project %s",
			created, len(users), projectID)
	},
}

// init is the initialization function for Cobra which defines flags.
func init() {
	cmd.Flags().StringVarP(&projectID, "project", "p", "",
		"Firebase project id to seed.")
	cmd.Flags().StringVarP(&usersFile, "users", "u", "users.json",
		"Path to the JSON file listing the users to create.")
	cmd.Flags().StringVarP(&logFile, "log", "l", "-",
		"Log output path. By default, logs are printed to stdout. "+
			"To disable logging, set this to empty (\"\").")
	cmd.Flags().IntVarP(&logLevel, "logLevel", "v", 4,
		"Verbosity level of logging. 0 = TRACE, 1 = DEBUG, 2 = INFO, "+
			"3 = WARN, 4 = ERROR, 5 = CRITICAL, 6 = FATAL")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		panic(err)
	}
}

// initLog will enable JWW logging to the given log path with the given
// threshold. If log path is empty, then logging is not enabled. Panics if the
// log file cannot be opened or if the threshold is invalid.
func initLog(threshold jww.Threshold, logPath string) {
	if logPath == "" {
		// Do not enable logging if no log file is set
		return
	} else if logPath != "-" {
		// Set the log file if stdout is not selected

		// Disable stdout output
		jww.SetStdoutOutput(io.Discard)

		// Use log file
		logOutput, err :=
			os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}
		jww.SetLogOutput(logOutput)
	}

	if threshold < jww.LevelTrace || threshold > jww.LevelFatal {
		panic("Invalid log threshold: " + strconv.Itoa(int(threshold)))
	}

	// Display microseconds if the threshold is set to TRACE or DEBUG
	if threshold == jww.LevelTrace || threshold == jww.LevelDebug {
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}

	// Enable logging
	jww.SetStdoutThreshold(threshold)
	jww.SetLogThreshold(threshold)
	jww.INFO.Printf("Log level set to: %s", threshold)
}
