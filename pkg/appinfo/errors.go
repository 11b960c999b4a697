// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package appinfo

import "errors"

var (
	// ErrFormatMismatch means the file's magic is not the recognized
	// appinfo.vdf signature. Fatal; no store is produced.
	ErrFormatMismatch = errors.New("invalid appinfo.vdf magic header")

	// ErrTruncatedRecord means a record's declared boundaries run past
	// the end of the buffer. Fatal: later record boundaries cannot be
	// trusted once one frame is broken.
	ErrTruncatedRecord = errors.New("truncated appinfo.vdf record")

	// ErrUnexpectedEOF is returned by cursor reads that would pass the
	// buffer end. Callers surface it as one of the two fatal errors
	// above.
	ErrUnexpectedEOF = errors.New("unexpected end of appinfo.vdf data")

	// ErrInvalidOffset is returned by cursor seeks outside the buffer.
	ErrInvalidOffset = errors.New("seek offset outside appinfo.vdf data")
)
