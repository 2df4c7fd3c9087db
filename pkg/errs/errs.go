// ModBridge
// Copyright (c) 2026 The ModBridge Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of ModBridge.
//
// ModBridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModBridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModBridge.  If not, see <http://www.gnu.org/licenses/>.

// Package errs defines the failure taxonomy shared by every component.
//
// Each failure names the resource involved and, where one exists, what the
// user can do about it. Callers branch on Kind rather than on message text.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure by how callers are expected to react to it.
type Kind int

const (
	// KindNotFound covers an absent Steam root, Proton runtime, prefix or
	// tool. Always recoverable: callers prompt or skip.
	KindNotFound Kind = iota + 1
	// KindParseFailure means third-party output matched no known grammar.
	KindParseFailure
	// KindExternalTool is a subprocess that exited non-zero or timed out.
	KindExternalTool
	// KindPersistence is an unreadable or unwritable per-user file.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindParseFailure:
		return "parse failure"
	case KindExternalTool:
		return "external tool failure"
	case KindPersistence:
		return "persistence failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrNotFound     = errors.New("not found")
	ErrParseFailure = errors.New("parse failure")
	ErrExternalTool = errors.New("external tool failure")
	ErrPersistence  = errors.New("persistence failure")
)

// maxRawLen caps how much offending output is rendered in messages; the
// full text stays available in Raw.
const maxRawLen = 512

type Error struct {
	Err      error
	Resource string
	Remedy   string
	Raw      string
	Tool     string
	Kind     Kind
	ExitCode int
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Resource)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString(": ")
		sb.WriteString(e.Kind.String())
	}
	if e.Kind == KindExternalTool && e.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code %d)", e.ExitCode)
	}
	if e.Remedy != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Remedy)
		sb.WriteString(")")
	}
	if e.Raw != "" {
		raw := strings.TrimSpace(e.Raw)
		if len(raw) > maxRawLen {
			raw = raw[:maxRawLen] + "…"
		}
		sb.WriteString("\n")
		sb.WriteString(raw)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrParseFailure:
		return e.Kind == KindParseFailure
	case ErrExternalTool:
		return e.Kind == KindExternalTool
	case ErrPersistence:
		return e.Kind == KindPersistence
	default:
		return false
	}
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

func NotFound(resource, remedy string, err error) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Remedy: remedy, Err: err}
}

// ParseFailure keeps the offending text so it is never silently dropped.
func ParseFailure(resource, raw string, err error) *Error {
	return &Error{Kind: KindParseFailure, Resource: resource, Raw: raw, Err: err}
}

func ExternalTool(tool string, exitCode int, output string, err error) *Error {
	return &Error{
		Kind:     KindExternalTool,
		Resource: tool,
		Tool:     tool,
		ExitCode: exitCode,
		Raw:      output,
		Err:      err,
	}
}

func Persistence(resource string, err error) *Error {
	return &Error{Kind: KindPersistence, Resource: resource, Err: err}
}
