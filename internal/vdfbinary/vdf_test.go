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

package vdfbinary_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/modbridge/modbridge/internal/vdfbinary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMarshal_SteamLayout(t *testing.T) {
	t.Parallel()

	entry := vdfbinary.NewMap()
	entry.Set("appid", vdfbinary.Int32(0x04030201))
	entry.Set("AppName", vdfbinary.String("A"))

	shortcuts := vdfbinary.NewMap()
	shortcuts.Set("0", vdfbinary.MapValue(entry))

	root := vdfbinary.NewMap()
	root.Set("shortcuts", vdfbinary.MapValue(shortcuts))

	got, err := vdfbinary.MarshalBytes(root)
	require.NoError(t, err)

	var want bytes.Buffer
	want.WriteString("\x00shortcuts\x00")
	want.WriteString("\x000\x00")
	want.WriteString("\x02appid\x00\x01\x02\x03\x04")
	want.WriteString("\x01AppName\x00A\x00")
	want.WriteString("\x08\x08\x08")

	assert.Equal(t, want.Bytes(), got)
}

func TestParse_PreservesOrderAndCase(t *testing.T) {
	t.Parallel()

	raw := []byte("\x01Zeta\x00z\x00\x01alpha\x00a\x00\x02MiXeD\x00\x05\x00\x00\x00\x08")

	root, err := vdfbinary.Parse(bytes.NewReader(raw))
	require.NoError(t, err)

	fields := root.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "Zeta", fields[0].Key)
	assert.Equal(t, "alpha", fields[1].Key)
	assert.Equal(t, "MiXeD", fields[2].Key)

	n, ok := root.GetUint("mixed")
	require.True(t, ok)
	assert.Equal(t, uint32(5), n)

	out, err := vdfbinary.MarshalBytes(root)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestParse_FloatAndUint64(t *testing.T) {
	t.Parallel()

	root := vdfbinary.NewMap()
	root.Set("ratio", vdfbinary.Float32(1.5))
	root.Set("big", vdfbinary.Uint64(1<<40))

	data, err := vdfbinary.MarshalBytes(root)
	require.NoError(t, err)

	parsed, err := vdfbinary.Parse(bytes.NewReader(data))
	require.NoError(t, err)

	ratio, ok := parsed.Get("ratio")
	require.True(t, ok)
	f, ok := ratio.AsFloat32()
	require.True(t, ok)
	assert.InDelta(t, 1.5, f, 0)

	big, ok := parsed.Get("big")
	require.True(t, ok)
	u, ok := big.AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(1<<40), u)
}

func TestMap_SetReplacesInPlace(t *testing.T) {
	t.Parallel()

	m := vdfbinary.NewMap()
	m.Set("AppName", vdfbinary.String("old"))
	m.Set("Exe", vdfbinary.String("x"))
	m.Set("appname", vdfbinary.String("new"))

	fields := m.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "AppName", fields[0].Key)
	s, _ := fields[0].Value.AsString()
	assert.Equal(t, "new", s)
}

func TestMarshal_RejectsNUL(t *testing.T) {
	t.Parallel()

	m := vdfbinary.NewMap()
	m.Set("AppName", vdfbinary.String("bad\x00name"))

	_, err := vdfbinary.MarshalBytes(m)
	assert.ErrorIs(t, err, vdfbinary.ErrInvalidString)
}

func TestParse_UnknownMarker(t *testing.T) {
	t.Parallel()

	_, err := vdfbinary.Parse(bytes.NewReader([]byte("\x01a\x00b\x00\x05c\x00\x08")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x05")
}

func TestParse_TooDeep(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	for range 40 {
		buf.WriteString("\x00k\x00")
	}
	for range 41 {
		buf.WriteByte(0x08)
	}

	_, err := vdfbinary.Parse(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, vdfbinary.ErrTooDeep)
}

// TestPropertyShortcutsRoundTrip verifies decode(encode(x)) == x for
// arbitrary shortcut lists, embedded quotes included.
func TestPropertyShortcutsRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 _\-./"()%]{0,40}`)
		n := rapid.IntRange(0, 5).Draw(t, "n")

		root := vdfbinary.NewShortcutsDocument()
		want := make([]vdfbinary.Shortcut, 0, n)
		for i := range n {
			var tags []string
			for j := range rapid.IntRange(0, 3).Draw(t, "tags"+strconv.Itoa(i)) {
				tags = append(tags, text.Draw(t, "tag"+strconv.Itoa(i)+"_"+strconv.Itoa(j)))
			}
			s := vdfbinary.Shortcut{
				AppID:              rapid.Uint32().Draw(t, "appid"),
				AppName:            text.Draw(t, "name"),
				Exe:                `"` + text.Draw(t, "exe") + `"`,
				StartDir:           `"` + text.Draw(t, "dir") + `"`,
				Icon:               text.Draw(t, "icon"),
				ShortcutPath:       text.Draw(t, "shortcutPath"),
				LaunchOptions:      text.Draw(t, "opts"),
				IsHidden:           rapid.Bool().Draw(t, "hidden"),
				AllowDesktopConfig: rapid.Bool().Draw(t, "desktop"),
				AllowOverlay:       rapid.Bool().Draw(t, "overlay"),
				OpenVR:             rapid.Bool().Draw(t, "vr"),
				LastPlayTime:       rapid.Uint32().Draw(t, "lastPlay"),
				Tags:               tags,
			}
			vdfbinary.AppendShortcut(root, &s)
			want = append(want, s)
		}

		data, err := vdfbinary.MarshalBytes(root)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := vdfbinary.ParseShortcuts(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("got %d shortcuts, want %d", len(got), len(want))
		}
		for i := range want {
			if !assert.ObjectsAreEqual(want[i], got[i]) {
				t.Fatalf("shortcut %d mismatch:\nwant %#v\ngot  %#v", i, want[i], got[i])
			}
		}

		again, err := vdfbinary.Parse(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("reparse: %v", err)
		}
		reencoded, err := vdfbinary.MarshalBytes(again)
		if err != nil {
			t.Fatalf("re-marshal: %v", err)
		}
		if !bytes.Equal(data, reencoded) {
			t.Fatalf("encoding is not stable across a decode cycle")
		}
	})
}
