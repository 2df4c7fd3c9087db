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
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog/log"
	"github.com/ulikunitz/xz"
)

// decompressor wraps the raw stream for the tar reader. The returned
// closer releases decoder resources.
func decompressor(r io.Reader, format Format) (io.Reader, func(), error) {
	noop := func() {}
	switch format {
	case FormatTar:
		return r, noop, nil
	case FormatTarGz:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case FormatTarXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open xz stream: %w", err)
		}
		return xr, noop, nil
	case FormatTarZst:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return dec, dec.Close, nil
	case FormatTarLz4:
		return lz4.NewReader(r), noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func extractTar(ctx context.Context, archivePath, dest string, format Format) error {
	f, err := os.Open(archivePath) //nolint:gosec // path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	stream, release, err := decompressor(f, format)
	if err != nil {
		return err
	}
	defer release()

	tr := tar.NewReader(stream)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("extraction cancelled: %w", err)
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", format, err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		default:
			log.Warn().
				Str("entry", hdr.Name).
				Str("type", string(hdr.Typeflag)).
				Msg("skipping unsupported tar entry")
		}
	}
}
