// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package database

import (
	"database/sql"

	"github.com/goccy/go-json"

	"github.com/JennePenne123/vibematch/internal/logging"
)

// marshalJSON encodes v for storage in a TEXT column. Encoding failures are
// logged and stored as empty; the column types involved (string slices and
// maps) cannot realistically fail to encode.
func marshalJSON(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to marshal column value")
		return ""
	}
	return string(data)
}

// unmarshalStrings decodes a JSON array column into a string slice.
// Empty or malformed values decode to nil.
func unmarshalStrings(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		logging.Warn().Err(err).Msg("failed to unmarshal string array column")
		return nil
	}
	return out
}

// unmarshalStringMap decodes a JSON object column into a string map.
func unmarshalStringMap(raw sql.NullString) map[string]string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		logging.Warn().Err(err).Msg("failed to unmarshal map column")
		return nil
	}
	return out
}

// nullableString converts an empty string to NULL for storage.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
