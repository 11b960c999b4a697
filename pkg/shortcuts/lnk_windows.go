//go:build windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package shortcuts

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/rs/zerolog/log"
)

// WriteLnk creates a Windows shell link through the WScript.Shell COM
// object. There is no documented file format API for .lnk, so COM is
// the supported way to write one.
func WriteLnk(path string, s LnkShortcut) error {
	if err := ole.CoInitialize(0); err != nil {
		// Code 1 is S_FALSE: COM was already initialized on this thread.
		oleErr, ok := err.(*ole.OleError)
		if !ok || oleErr.Code() != 1 {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("create WScript.Shell: %w", err)
	}
	defer unknown.Release()

	wshell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("query WScript.Shell dispatch: %w", err)
	}
	defer wshell.Release()

	created, err := oleutil.CallMethod(wshell, "CreateShortcut", path)
	if err != nil {
		return fmt.Errorf("create shortcut %s: %w", path, err)
	}
	link := created.ToIDispatch()
	defer link.Release()

	props := [][2]string{
		{"TargetPath", s.Target},
		{"Arguments", s.Args},
		{"WorkingDirectory", s.WorkingDir},
	}
	if s.IconFile != "" {
		props = append(props, [2]string{"IconLocation", s.IconFile + ",0"})
	}
	for _, p := range props {
		if _, err := oleutil.PutProperty(link, p[0], p[1]); err != nil {
			return fmt.Errorf("set shortcut %s: %w", p[0], err)
		}
	}

	if _, err := oleutil.CallMethod(link, "Save"); err != nil {
		return fmt.Errorf("save shortcut %s: %w", path, err)
	}

	log.Debug().Msgf("wrote shell link: %s", path)
	return nil
}
