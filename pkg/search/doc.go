// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package search translates canonical mod-search queries into the upstream
// filter vocabulary and normalizes upstream search pages into the canonical
// {hits, total_hits} schema, tagging every hit with a namespaced project id
// so callers can merge results from several mod repositories.
package search
