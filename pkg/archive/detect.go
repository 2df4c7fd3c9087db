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

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Format names an archive container understood by the extractor.
type Format string

const (
	FormatZip    Format = "zip"
	Format7z     Format = "7z"
	FormatRar    Format = "rar"
	FormatTar    Format = "tar"
	FormatTarGz  Format = "tar.gz"
	FormatTarXz  Format = "tar.xz"
	FormatTarZst Format = "tar.zst"
	FormatTarLz4 Format = "tar.lz4"
)

// ErrUnsupportedFormat is returned for files the extractor cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// headerSize covers the tar magic at offset 257.
const headerSize = 262

var (
	lz4Magic = []byte{0x04, 0x22, 0x4D, 0x18}
	lz4Type  = filetype.NewType("lz4", "application/x-lz4")
)

func init() {
	filetype.AddMatcher(lz4Type, func(buf []byte) bool {
		return bytes.HasPrefix(buf, lz4Magic)
	})
}

// External reports whether the format is handed to the external
// extractor rather than decoded in process.
func (f Format) External() bool {
	return f == Format7z || f == FormatRar
}

// DetectFormat identifies an archive by its magic bytes, falling back to
// the file extension when the content is not recognised.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read archive header: %w", err)
	}
	head = head[:n]

	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		if format, ok := formatFromMagic(kind.Extension); ok {
			return format, nil
		}
	}

	if format, ok := formatFromName(path); ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

func formatFromMagic(ext string) (Format, bool) {
	switch ext {
	case "zip":
		return FormatZip, true
	case "7z":
		return Format7z, true
	case "rar":
		return FormatRar, true
	case "tar":
		return FormatTar, true
	case "gz":
		return FormatTarGz, true
	case "xz":
		return FormatTarXz, true
	case "zst":
		return FormatTarZst, true
	case "lz4":
		return FormatTarLz4, true
	default:
		return "", false
	}
}

var nameSuffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".tzst", FormatTarZst},
	{".tar.lz4", FormatTarLz4},
	{".tar", FormatTar},
	{".zip", FormatZip},
	{".7z", Format7z},
	{".rar", FormatRar},
}

func formatFromName(path string) (Format, bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, s := range nameSuffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.format, true
		}
	}
	return "", false
}
