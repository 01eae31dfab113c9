// Package search finds every regular file under a set of roots whose text
// contains a literal term.
//
// Each root is walked by its own bounded traversal pool. Every non-directory
// entry is handed to one shared content pool that classifies, loads and
// filters it. The two pools never share capacity: a traversal goroutine
// releases its slot before it sends a candidate downstream.
//
// Results carry no ordering guarantee and are never deduplicated.
package search
