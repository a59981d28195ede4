// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package proxy provides the inbound HTTP surface of the mod-search proxy.
// It exposes search, mod detail and mod file listing routes backed by the
// CurseForge API, keeps the private API key on the server side, and answers
// search calls in the canonical {hits, total_hits} schema so clients built
// for another mod repository can consume both. Detail and file routes pass
// the upstream data through untouched. Every failure reaches the caller as a
// JSON {"error": ...} body.
package proxy
