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

package steam

import "hash/fnv"

// GenerateShortcutAppID derives the 32-bit AppID of a non-Steam shortcut
// from its name and executable. The high bit is always set, as Steam does
// for shortcut IDs.
func GenerateShortcutAppID(name, exe string) uint32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(exe))
	sum := h.Sum64()
	return uint32(sum^(sum>>32)) | 0x80000000
}

// ShortcutGameID is the 64-bit ID Steam uses to launch a shortcut, as in
// steam://rungameid/<id>.
func ShortcutGameID(appID uint32) uint64 {
	return (uint64(appID) << 32) | 0x02000000
}
