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

package vdfbinary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var ErrInvalidString = errors.New("vdf keys and strings cannot contain NUL bytes")

// Marshal encodes m as the root map of a binary VDF document, terminated
// the way Steam terminates it.
func Marshal(w io.Writer, m *Map) error {
	bw := bufio.NewWriter(w)
	if err := writeMap(bw, m, 0); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush error: %w", err)
	}
	return nil
}

// MarshalBytes is Marshal into a fresh buffer.
func MarshalBytes(m *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := Marshal(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMap(w *bufio.Writer, m *Map, depth int) error {
	if depth > maxDepth {
		return ErrTooDeep
	}

	for _, f := range m.fields {
		if err := writeField(w, f, depth); err != nil {
			return fmt.Errorf("field %q: %w", f.Key, err)
		}
	}
	return w.WriteByte(markerEnd)
}

func writeField(w *bufio.Writer, f Field, depth int) error {
	var marker byte
	switch f.Value.kind {
	case KindMap:
		marker = markerMap
	case KindString:
		marker = markerString
	case KindInt32:
		marker = markerInt32
	case KindFloat32:
		marker = markerFloat32
	case KindUint64:
		marker = markerUint64
	default:
		return fmt.Errorf("unknown value kind %d", f.Value.kind)
	}

	if err := w.WriteByte(marker); err != nil {
		return err
	}
	if err := writeString(w, f.Key); err != nil {
		return err
	}

	v := f.Value
	switch v.kind {
	case KindMap:
		return writeMap(w, v.m, depth+1)
	case KindString:
		return writeString(w, v.str)
	case KindInt32:
		var bf [4]byte
		binary.LittleEndian.PutUint32(bf[:], uint32(v.num))
		_, err := w.Write(bf[:])
		return err
	case KindFloat32:
		var bf [4]byte
		binary.LittleEndian.PutUint32(bf[:], math.Float32bits(v.f))
		_, err := w.Write(bf[:])
		return err
	default:
		var bf [8]byte
		binary.LittleEndian.PutUint64(bf[:], v.num)
		_, err := w.Write(bf[:])
		return err
	}
}

func writeString(w *bufio.Writer, s string) error {
	if strings.IndexByte(s, markerEndOfString) >= 0 {
		return ErrInvalidString
	}
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	return w.WriteByte(markerEndOfString)
}
