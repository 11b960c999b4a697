// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package appinfo decodes Steam's binary appinfo.vdf cache file.
//
// The file holds one self-delimiting record per app known to the Steam
// client. Each record carries a fixed metadata preamble followed by an
// opaque binary VDF blob. This decoder does not parse the blob's nested
// key/value grammar; it recovers only the three fields shortcut
// generation needs (name, app type, icon checksum) by scanning the blob
// for their fixed byte markers. The declared record size gives a safe
// resynchronization point, so a blob the scan cannot make sense of only
// costs that record its optional fields, never the rest of the file.
//
// Format reference: https://github.com/SteamDatabase/SteamAppInfo
package appinfo

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// appinfoMagic is the v29 format signature, ")DV\x07" read little-endian.
// Older revisions (v27/v28) lack the string table and are not recognized.
const appinfoMagic uint32 = 0x07564429

// Marker byte sequences that precede each field of interest inside a
// record's binary VDF blob. The leading 0x01 is the string type tag, the
// next four bytes are the little-endian string table index of the key
// ("name", "type", "clienticon").
var (
	nameMarker = []byte{0x01, 0x04, 0x00, 0x00, 0x00}
	typeMarker = []byte{0x01, 0x05, 0x00, 0x00, 0x00}
	iconMarker = []byte{0x01, 0x58, 0x01, 0x00, 0x00}
)

// iconChecksumLen is the length of the hex SHA-1 icon checksum.
const iconChecksumLen = 40

// recordMetaSize is the byte size of the fixed metadata fields between a
// record's declared size and its binary VDF blob.
const recordMetaSize = 4 + 4 + 8 + 20 + 4 + 20

// AppType is an app's item type as stored in appinfo.vdf. Only values
// from the closed set below are recognized; anything else decodes as
// absent. The stored strings are matched byte-exact, which is why
// AppTypeOwnersOnly is lowercase.
type AppType string

const (
	AppTypeGame        AppType = "Game"
	AppTypeDLC         AppType = "DLC"
	AppTypeDemo        AppType = "Demo"
	AppTypeConfig      AppType = "Config"
	AppTypeBeta        AppType = "Beta"
	AppTypeTool        AppType = "Tool"
	AppTypeOwnersOnly  AppType = "ownersonly"
	AppTypeApplication AppType = "Application"
)

var validAppTypes = map[string]AppType{
	"Game":        AppTypeGame,
	"DLC":         AppTypeDLC,
	"Demo":        AppTypeDemo,
	"Config":      AppTypeConfig,
	"Beta":        AppTypeBeta,
	"Tool":        AppTypeTool,
	"ownersonly":  AppTypeOwnersOnly,
	"Application": AppTypeApplication,
}

// Header is the fixed-size preamble at the start of appinfo.vdf.
type Header struct {
	// Universe is the Steam universe the cache belongs to. Informational.
	Universe uint32

	// StringTableOffset is the raw offset field: the distance in bytes
	// from the position immediately after the field to the string table.
	StringTableOffset uint64

	// StringTablePos is the absolute byte position of the string table.
	// The decoder computes it but never dereferences it; records whose
	// fields live only in the string table decode with those fields
	// absent.
	StringTablePos int
}

// App is the decoded output for a single record. Name, Type and
// IconChecksum are best-effort: a zero value means the field's marker
// was missing or its value malformed.
type App struct {
	Name         string
	IconChecksum string
	Type         AppType
	AppID        uint32
}

// Store maps app IDs to their decoded records. Built once per Decode
// call and safe for concurrent readers afterward.
type Store map[uint32]App

// rawRecord is one self-delimiting record as framed by the iterator.
// The blob is handed to the field extractor and then discarded.
type rawRecord struct {
	blob         []byte
	token        uint64
	appID        uint32
	infoState    uint32
	lastUpdated  uint32
	changeNumber uint32
}

// Decode decodes a complete appinfo.vdf buffer into a Store.
//
// The decode either runs to completion or fails fatally: a bad magic
// yields ErrFormatMismatch, a record extending past the buffer yields
// ErrTruncatedRecord, and in both cases no partial store is returned.
// Duplicate app IDs are last-write-wins.
func Decode(data []byte) (Store, error) {
	r := newReader(data)

	if _, err := parseHeader(r); err != nil {
		return nil, err
	}

	store := make(Store)
	for {
		rec, err := nextRecord(r)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// Sentinel app ID 0, end of the record stream.
			break
		}

		name, appType, icon := extractFields(rec.blob)
		store[rec.appID] = App{
			AppID:        rec.appID,
			Name:         name,
			Type:         appType,
			IconChecksum: icon,
		}
	}

	return store, nil
}

// parseHeader validates the magic and reads the fixed preamble. Any
// failure here is fatal: an unrecognized or short header means the rest
// of the file cannot be framed.
func parseHeader(r *reader) (Header, error) {
	magic, err := r.readUint32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: file too short for header", ErrFormatMismatch)
	}
	if magic != appinfoMagic {
		return Header{}, fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrFormatMismatch, magic, appinfoMagic)
	}

	universe, err := r.readUint32()
	if err != nil {
		return Header{}, fmt.Errorf("%w: file too short for universe", ErrFormatMismatch)
	}

	stringTableOffset, err := r.readUint64()
	if err != nil {
		return Header{}, fmt.Errorf("%w: file too short for string table offset", ErrFormatMismatch)
	}

	return Header{
		Universe:          universe,
		StringTableOffset: stringTableOffset,
		// Offset is relative to the position right after the field.
		StringTablePos: r.pos + int(stringTableOffset), //nolint:gosec // bounded by file size in practice
	}, nil
}

// nextRecord reads one record at the cursor, or returns (nil, nil) at
// the sentinel app ID 0. The cursor always ends up at the next record
// boundary regardless of the blob's content.
func nextRecord(r *reader) (*rawRecord, error) {
	appID, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: missing app id", ErrTruncatedRecord)
	}
	if appID == 0 {
		return nil, nil //nolint:nilnil // sentinel, not an error
	}

	size, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: app %d missing size", ErrTruncatedRecord, appID)
	}
	end := r.pos + int(size)
	if int(size) < recordMetaSize || end > len(r.data) {
		return nil, fmt.Errorf("%w: app %d declares %d bytes, %d remain", ErrTruncatedRecord, appID, size, r.remaining())
	}

	rec := rawRecord{appID: appID}
	rec.infoState, _ = r.readUint32()
	rec.lastUpdated, _ = r.readUint32()
	rec.token, _ = r.readUint64()
	_, _ = r.readBytes(20) // text VDF SHA-1, not validated
	rec.changeNumber, _ = r.readUint32()
	_, _ = r.readBytes(20) // binary VDF SHA-1, not validated

	// The blob is whatever the declared size leaves after the fixed
	// fields. Seeking to the declared end resynchronizes the cursor no
	// matter what the blob contains.
	rec.blob = r.data[r.pos:end]
	if err := r.seek(end); err != nil {
		return nil, fmt.Errorf("%w: app %d: %w", ErrTruncatedRecord, appID, err)
	}

	return &rec, nil
}

// extractFields scans a record's blob for the three marker-prefixed
// fields. Each search is independent and best-effort: a missing marker,
// a missing terminator or a short checksum leaves that field absent and
// never fails the decode. The first occurrence of a marker wins.
func extractFields(blob []byte) (name string, appType AppType, icon string) {
	name = scanZeroTerminated(blob, nameMarker)

	if s := scanZeroTerminated(blob, typeMarker); s != "" {
		// Closed set: an unrecognized tag decodes as absent.
		appType = validAppTypes[s]
	}

	if idx := bytes.Index(blob, iconMarker); idx >= 0 {
		start := idx + len(iconMarker)
		if start+iconChecksumLen <= len(blob) {
			icon = string(blob[start : start+iconChecksumLen])
		}
	}

	return name, appType, icon
}

// scanZeroTerminated returns the zero-terminated string following the
// first occurrence of marker in blob, or "" if the marker is absent or
// no terminator follows before the blob ends.
func scanZeroTerminated(blob, marker []byte) string {
	idx := bytes.Index(blob, marker)
	if idx < 0 {
		return ""
	}
	start := idx + len(marker)
	term := bytes.IndexByte(blob[start:], 0x00)
	if term < 0 {
		return ""
	}
	return string(blob[start : start+term])
}

// reader wraps a byte slice for sequential little-endian reading.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) readUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

func (r *reader) seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidOffset, pos, len(r.data))
	}
	r.pos = pos
	return nil
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}
