// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidLevel is matched by a *LevelError.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrUnknownOption is matched by an *OptionError for an unknown key.
	ErrUnknownOption = errors.New("unknown option")

	// ErrFinalized is returned when a menu is modified after it has been
	// rendered.
	ErrFinalized = errors.New("menus: menu already rendered")

	// ErrMissingPrivilegeContext is returned when a node requires a privilege
	// but no Privileges collaborator has been configured.
	ErrMissingPrivilegeContext = errors.New("menus: privilege required but no privilege context")

	// ErrMissingStorageContext is returned when a node requires tables but no
	// Tables collaborator has been configured.
	ErrMissingStorageContext = errors.New("menus: tables required but no storage context")

	// ErrMissingPathContext is returned when a node path must be checked but
	// no Paths collaborator has been configured.
	ErrMissingPathContext = errors.New("menus: path check required but no path context")

	// ErrMissingApplicationContext is returned when a node path is an
	// application root but no Applications collaborator has been configured.
	ErrMissingApplicationContext = errors.New("menus: application root but no application context")
)

// LevelError represents an invalid level passed to the Add method.
type LevelError struct {
	Level    int // requested level
	Previous int // level of the previous node, 0 if there is no previous node
}

// Error returns a string representation of the error.
func (err *LevelError) Error() string {
	if err.Level < 1 {
		return "menus: invalid level " + strconv.Itoa(err.Level) + ", must be at least 1"
	}
	return "menus: invalid level " + strconv.Itoa(err.Level) + " after level " +
		strconv.Itoa(err.Previous) + ", levels can increase only by one"
}

// Is reports whether target is ErrInvalidLevel.
func (err *LevelError) Is(target error) bool {
	return target == ErrInvalidLevel
}

// OptionError represents an error setting an option.
type OptionError struct {
	Key   string
	Value string
	Err   error
}

// Error returns a string representation of the error.
func (err *OptionError) Error() string {
	if err.Err == ErrUnknownOption {
		return "menus: unknown option " + strconv.Quote(err.Key)
	}
	return "menus: invalid value " + strconv.Quote(err.Value) + " for option " +
		strconv.Quote(err.Key) + ": " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *OptionError) Unwrap() error {
	return err.Err
}
