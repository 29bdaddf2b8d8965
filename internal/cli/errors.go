// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "fmt"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 3
	ExitNetworkError = 5
)

// exitError ends the process with Code. Its message has already been shown
// to the user, so Execute does not print it again.
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *exitError) Unwrap() error {
	return e.Err
}

// configError marks a failure to load or validate the configuration.
type configError struct {
	Err error
}

func (e *configError) Error() string {
	return e.Err.Error()
}

func (e *configError) Unwrap() error {
	return e.Err
}
