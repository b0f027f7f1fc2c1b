// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package middleware provides HTTP middleware shared by the API router:
// request-ID propagation into the logging context, Prometheus request
// instrumentation, and gzip response compression.
package middleware
