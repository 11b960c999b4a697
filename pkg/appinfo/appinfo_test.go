// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package appinfo

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHeader assembles a valid v29 header.
func buildHeader(universe uint32, stringTableOffset uint64) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:], appinfoMagic)
	binary.LittleEndian.PutUint32(buf[4:], universe)
	binary.LittleEndian.PutUint64(buf[8:], stringTableOffset)
	return buf
}

// buildRecord assembles one record with zeroed metadata fields and the
// given blob, with the declared size computed from the blob length.
func buildRecord(appID uint32, blob []byte) []byte {
	buf := make([]byte, 8+recordMetaSize, 8+recordMetaSize+len(blob))
	binary.LittleEndian.PutUint32(buf[0:], appID)
	binary.LittleEndian.PutUint32(buf[4:], uint32(recordMetaSize+len(blob)))
	return append(buf, blob...)
}

var sentinel = []byte{0x00, 0x00, 0x00, 0x00}

func nameBlob(name string) []byte {
	blob := append([]byte{}, nameMarker...)
	blob = append(blob, name...)
	return append(blob, 0x00)
}

func typeBlob(appType string) []byte {
	blob := append([]byte{}, typeMarker...)
	blob = append(blob, appType...)
	return append(blob, 0x00)
}

func iconBlob(checksum string) []byte {
	blob := append([]byte{}, iconMarker...)
	return append(blob, checksum...)
}

func concat(parts ...[]byte) []byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf
}

func TestReader_ReadUint32(t *testing.T) {
	t.Parallel()

	t.Run("reads_little_endian_uint32", func(t *testing.T) {
		t.Parallel()

		r := newReader([]byte{0x78, 0x56, 0x34, 0x12})
		v, err := r.readUint32()

		require.NoError(t, err)
		assert.Equal(t, uint32(0x12345678), v)
		assert.Equal(t, 4, r.pos)
	})

	t.Run("returns_error_when_not_enough_bytes", func(t *testing.T) {
		t.Parallel()

		r := newReader([]byte{0x01, 0x02, 0x03})
		_, err := r.readUint32()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
		assert.Equal(t, 0, r.pos)
	})
}

func TestReader_ReadUint64(t *testing.T) {
	t.Parallel()

	t.Run("reads_little_endian_uint64", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 8)
		binary.LittleEndian.PutUint64(data, 0x123456789ABCDEF0)
		r := newReader(data)
		v, err := r.readUint64()

		require.NoError(t, err)
		assert.Equal(t, uint64(0x123456789ABCDEF0), v)
		assert.Equal(t, 8, r.pos)
	})

	t.Run("returns_error_when_not_enough_bytes", func(t *testing.T) {
		t.Parallel()

		r := newReader(make([]byte, 7))
		_, err := r.readUint64()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestReader_ReadBytes(t *testing.T) {
	t.Parallel()

	t.Run("reads_requested_bytes", func(t *testing.T) {
		t.Parallel()

		r := newReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
		v, err := r.readBytes(3)

		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, v)
		assert.Equal(t, 3, r.pos)
	})

	t.Run("returns_error_when_not_enough_bytes", func(t *testing.T) {
		t.Parallel()

		r := newReader([]byte{0x01, 0x02})
		_, err := r.readBytes(5)

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestReader_Seek(t *testing.T) {
	t.Parallel()

	t.Run("seeks_within_buffer", func(t *testing.T) {
		t.Parallel()

		r := newReader(make([]byte, 10))
		require.NoError(t, r.seek(7))

		assert.Equal(t, 7, r.pos)
		assert.Equal(t, 3, r.remaining())
	})

	t.Run("allows_seek_to_buffer_end", func(t *testing.T) {
		t.Parallel()

		r := newReader(make([]byte, 10))
		require.NoError(t, r.seek(10))

		assert.Equal(t, 0, r.remaining())
	})

	t.Run("rejects_negative_offset", func(t *testing.T) {
		t.Parallel()

		r := newReader(make([]byte, 10))
		assert.ErrorIs(t, r.seek(-1), ErrInvalidOffset)
	})

	t.Run("rejects_offset_past_end", func(t *testing.T) {
		t.Parallel()

		r := newReader(make([]byte, 10))
		assert.ErrorIs(t, r.seek(11), ErrInvalidOffset)
	})
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	t.Run("parses_valid_header", func(t *testing.T) {
		t.Parallel()

		r := newReader(buildHeader(1, 0x1234))
		hdr, err := parseHeader(r)

		require.NoError(t, err)
		assert.Equal(t, uint32(1), hdr.Universe)
		assert.Equal(t, uint64(0x1234), hdr.StringTableOffset)
		// Offset is relative to the position after the offset field.
		assert.Equal(t, 16+0x1234, hdr.StringTablePos)
	})

	t.Run("rejects_wrong_magic", func(t *testing.T) {
		t.Parallel()

		buf := buildHeader(1, 0)
		binary.LittleEndian.PutUint32(buf, 0x07564428) // v28
		_, err := parseHeader(newReader(buf))

		assert.ErrorIs(t, err, ErrFormatMismatch)
	})

	t.Run("rejects_short_header", func(t *testing.T) {
		t.Parallel()

		_, err := parseHeader(newReader(buildHeader(1, 0)[:10]))

		assert.ErrorIs(t, err, ErrFormatMismatch)
	})
}

func TestExtractFields(t *testing.T) {
	t.Parallel()

	t.Run("extracts_all_three_fields", func(t *testing.T) {
		t.Parallel()

		checksum := strings.Repeat("a1", 20)
		blob := concat(nameBlob("Half-Life"), typeBlob("Game"), iconBlob(checksum))

		name, appType, icon := extractFields(blob)

		assert.Equal(t, "Half-Life", name)
		assert.Equal(t, AppTypeGame, appType)
		assert.Equal(t, checksum, icon)
	})

	t.Run("fields_are_independent", func(t *testing.T) {
		t.Parallel()

		name, appType, icon := extractFields(nameBlob("Portal"))

		assert.Equal(t, "Portal", name)
		assert.Empty(t, appType)
		assert.Empty(t, icon)
	})

	t.Run("rejects_type_outside_closed_set", func(t *testing.T) {
		t.Parallel()

		name, appType, icon := extractFields(typeBlob("Unknown"))

		assert.Empty(t, name)
		assert.Empty(t, appType)
		assert.Empty(t, icon)
	})

	t.Run("accepts_every_closed_set_tag", func(t *testing.T) {
		t.Parallel()

		for tag, want := range validAppTypes {
			_, appType, _ := extractFields(typeBlob(tag))
			assert.Equal(t, want, appType, "tag %q", tag)
		}
	})

	t.Run("missing_terminator_leaves_field_absent", func(t *testing.T) {
		t.Parallel()

		blob := concat(nameMarker, []byte("no terminator"))
		name, _, _ := extractFields(blob)

		assert.Empty(t, name)
	})

	t.Run("short_icon_checksum_leaves_field_absent", func(t *testing.T) {
		t.Parallel()

		blob := concat(iconMarker, []byte("too short"))
		_, _, icon := extractFields(blob)

		assert.Empty(t, icon)
	})

	t.Run("first_marker_occurrence_wins", func(t *testing.T) {
		t.Parallel()

		blob := concat(nameBlob("First"), nameBlob("Second"))
		name, _, _ := extractFields(blob)

		assert.Equal(t, "First", name)
	})

	t.Run("empty_blob_yields_nothing", func(t *testing.T) {
		t.Parallel()

		name, appType, icon := extractFields(nil)

		assert.Empty(t, name)
		assert.Empty(t, appType)
		assert.Empty(t, icon)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("decodes_team_fortress_2", func(t *testing.T) {
		t.Parallel()

		buf := concat(
			buildHeader(1, 0),
			buildRecord(440, nameBlob("Team Fortress 2")),
			sentinel,
		)

		store, err := Decode(buf)

		require.NoError(t, err)
		require.Len(t, store, 1)
		assert.Equal(t, App{AppID: 440, Name: "Team Fortress 2"}, store[440])
	})

	t.Run("key_set_matches_records_before_sentinel", func(t *testing.T) {
		t.Parallel()

		buf := concat(
			buildHeader(1, 0),
			buildRecord(10, nameBlob("Counter-Strike")),
			buildRecord(220, nameBlob("Half-Life 2")),
			buildRecord(400, nameBlob("Portal")),
			sentinel,
			buildRecord(620, nameBlob("Portal 2")), // past the sentinel, ignored
		)

		store, err := Decode(buf)

		require.NoError(t, err)
		assert.Len(t, store, 3)
		assert.Contains(t, store, uint32(10))
		assert.Contains(t, store, uint32(220))
		assert.Contains(t, store, uint32(400))
		assert.NotContains(t, store, uint32(620))
	})

	t.Run("resynchronizes_past_markerless_blob", func(t *testing.T) {
		t.Parallel()

		garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF}
		buf := concat(
			buildHeader(1, 0),
			buildRecord(570, garbage),
			buildRecord(730, nameBlob("Counter-Strike 2")),
			sentinel,
		)

		store, err := Decode(buf)

		require.NoError(t, err)
		require.Len(t, store, 2)
		assert.Equal(t, App{AppID: 570}, store[570])
		assert.Equal(t, "Counter-Strike 2", store[730].Name)
	})

	t.Run("duplicate_app_id_is_last_write_wins", func(t *testing.T) {
		t.Parallel()

		buf := concat(
			buildHeader(1, 0),
			buildRecord(440, nameBlob("Old Name")),
			buildRecord(440, nameBlob("New Name")),
			sentinel,
		)

		store, err := Decode(buf)

		require.NoError(t, err)
		require.Len(t, store, 1)
		assert.Equal(t, "New Name", store[440].Name)
	})

	t.Run("decode_is_idempotent", func(t *testing.T) {
		t.Parallel()

		buf := concat(
			buildHeader(1, 0),
			buildRecord(440, concat(nameBlob("Team Fortress 2"), typeBlob("Game"))),
			sentinel,
		)

		first, err := Decode(buf)
		require.NoError(t, err)
		second, err := Decode(buf)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("empty_record_stream_yields_empty_store", func(t *testing.T) {
		t.Parallel()

		store, err := Decode(concat(buildHeader(1, 0), sentinel))

		require.NoError(t, err)
		assert.Empty(t, store)
	})

	t.Run("rejects_wrong_magic", func(t *testing.T) {
		t.Parallel()

		buf := concat(buildHeader(1, 0), sentinel)
		copy(buf, []byte{'B', 'A', 'D', '!'})

		store, err := Decode(buf)

		assert.ErrorIs(t, err, ErrFormatMismatch)
		assert.Nil(t, store)
	})

	t.Run("rejects_record_declaring_size_past_buffer", func(t *testing.T) {
		t.Parallel()

		rec := buildRecord(440, nameBlob("Team Fortress 2"))
		binary.LittleEndian.PutUint32(rec[4:], 0xFFFF) // way past the end

		store, err := Decode(concat(buildHeader(1, 0), rec, sentinel))

		assert.ErrorIs(t, err, ErrTruncatedRecord)
		assert.Nil(t, store)
	})

	t.Run("rejects_record_size_below_fixed_fields", func(t *testing.T) {
		t.Parallel()

		rec := buildRecord(440, nil)
		binary.LittleEndian.PutUint32(rec[4:], 10) // less than the fixed 64 bytes

		store, err := Decode(concat(buildHeader(1, 0), rec, sentinel))

		assert.ErrorIs(t, err, ErrTruncatedRecord)
		assert.Nil(t, store)
	})

	t.Run("rejects_stream_missing_sentinel", func(t *testing.T) {
		t.Parallel()

		buf := concat(buildHeader(1, 0), buildRecord(440, nameBlob("Team Fortress 2")))

		store, err := Decode(buf)

		assert.ErrorIs(t, err, ErrTruncatedRecord)
		assert.Nil(t, store)
	})

	t.Run("rejects_truncated_fixed_fields", func(t *testing.T) {
		t.Parallel()

		rec := buildRecord(440, nil)
		buf := concat(buildHeader(1, 0), rec[:20]) // cut inside the metadata

		store, err := Decode(buf)

		assert.ErrorIs(t, err, ErrTruncatedRecord)
		assert.Nil(t, store)
	})
}
