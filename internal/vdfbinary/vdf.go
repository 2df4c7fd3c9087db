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

// Package vdfbinary reads and writes Valve's binary VDF format, the
// encoding Steam uses for userdata/<id>/config/shortcuts.vdf.
//
// Decoding keeps keys in file order and with their original case so that a
// decode/encode cycle reproduces the file byte for byte. Lookups are
// case-insensitive, matching how Steam itself treats keys.
package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	markerMap     byte = 0x00
	markerString  byte = 0x01
	markerInt32   byte = 0x02
	markerFloat32 byte = 0x03
	markerUint64  byte = 0x07
	markerEnd     byte = 0x08

	markerEndOfString byte = 0x00

	// maxDepth bounds recursion on hostile or corrupted input.
	maxDepth = 32
)

var (
	ErrEmptyVDF     = errors.New("the vdf you are trying to parse appears empty")
	ErrNotBinaryVDF = errors.New("the vdf appears not to be binary, are you sure it is not a text vdf?")
	ErrCorruptedVDF = errors.New("reached the end of the file earlier than expected, your file might be corrupted")
	ErrTooDeep      = errors.New("the vdf nests maps deeper than supported, your file might be corrupted")
)

// Parse decodes a binary VDF document into its root map.
func Parse(r io.Reader) (*Map, error) {
	buf := bufio.NewReader(r)

	byteArr, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyVDF
	}
	if err != nil {
		return nil, fmt.Errorf("peek error: %w", err)
	}

	switch byteArr[0] {
	case markerMap, markerString, markerInt32, markerFloat32, markerUint64, markerEnd:
	default:
		return nil, ErrNotBinaryVDF
	}

	m, err := parseMap(buf, 0)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrCorruptedVDF
	}
	return m, err
}

func parseMap(buf *bufio.Reader, depth int) (*Map, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	m := NewMap()
	for {
		b, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read byte error: %w", err)
		}

		if b == markerEnd {
			break
		}

		key, err := parseString(buf)
		if err != nil {
			return nil, err
		}

		var value Value
		switch b {
		case markerMap:
			var child *Map
			child, err = parseMap(buf, depth+1)
			value = MapValue(child)
		case markerString:
			var s string
			s, err = parseString(buf)
			value = String(s)
		case markerInt32:
			var n uint32
			n, err = parseUint32(buf)
			value = Int32(n)
		case markerFloat32:
			var n uint32
			n, err = parseUint32(buf)
			value = Float32(math.Float32frombits(n))
		case markerUint64:
			var n uint64
			n, err = parseUint64(buf)
			value = Uint64(n)
		default:
			err = fmt.Errorf("unexpected byte: 0x%02x, your file might be corrupted", b)
		}
		if err != nil {
			return nil, err
		}

		m.fields = append(m.fields, Field{Key: key, Value: value})
	}

	return m, nil
}

func parseUint32(buf *bufio.Reader) (uint32, error) {
	var bf [4]byte
	if _, err := io.ReadFull(buf, bf[:]); err != nil {
		return 0, fmt.Errorf("read number error: %w", err)
	}
	return binary.LittleEndian.Uint32(bf[:]), nil
}

func parseUint64(buf *bufio.Reader) (uint64, error) {
	var bf [8]byte
	if _, err := io.ReadFull(buf, bf[:]); err != nil {
		return 0, fmt.Errorf("read number error: %w", err)
	}
	return binary.LittleEndian.Uint64(bf[:]), nil
}

func parseString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(markerEndOfString)
	if err == nil {
		return s[:len(s)-1], nil
	}
	return "", fmt.Errorf("read string error: %w", err)
}
