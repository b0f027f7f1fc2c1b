// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Open-status values attached to each recommendation.
const (
	StatusOpen    = "open"
	StatusClosed  = "closed"
	StatusUnknown = "unknown"
)

// timeRangePattern extracts the first "HH:MM-HH:MM" span from an hours
// string. Provider hour formats vary ("11:00-23:00", "Mo-Su 12:00-23:00",
// "Open 11:00-23:00"); the first time range found is taken as today's span.
var timeRangePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`)

// openStatus infers whether a venue is currently open from its hours string.
// Unparseable or missing hours yield StatusUnknown rather than guessing.
func openStatus(hours string, now time.Time) string {
	if strings.TrimSpace(hours) == "" {
		return StatusUnknown
	}

	m := timeRangePattern.FindStringSubmatch(hours)
	if m == nil {
		return StatusUnknown
	}

	openH, _ := strconv.Atoi(m[1])
	openM, _ := strconv.Atoi(m[2])
	closeH, _ := strconv.Atoi(m[3])
	closeM, _ := strconv.Atoi(m[4])
	if openH > 23 || closeH > 24 || openM > 59 || closeM > 59 {
		return StatusUnknown
	}

	cur := now.Hour()*60 + now.Minute()
	opens := openH*60 + openM
	closes := closeH*60 + closeM

	if closes <= opens {
		// Spans midnight, e.g. 18:00-02:00.
		if cur >= opens || cur < closes {
			return StatusOpen
		}
		return StatusClosed
	}

	if cur >= opens && cur < closes {
		return StatusOpen
	}
	return StatusClosed
}

// neighborhood extracts a neighborhood from a formatted address. Addresses
// of the form "street, neighborhood, city[, ...]" yield the second segment;
// shorter addresses yield nothing rather than a wrong guess.
func neighborhood(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 3 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
