// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package steam

import "strings"

// normalizeVDFKeys recursively lowercases all keys in a map[string]any
// tree. Valve's VDF format is case-insensitive, but Go maps use exact
// string matching, so keys are normalized at parse time and all lookups
// use lowercase.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}
