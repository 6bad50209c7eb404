// Package resolve locates executables by name using platform lookup rules.
//
// Resolution is a strict first-match scan over an ordered directory list and
// an ordered candidate-filename list; existence checks prefer the platform's
// native locate-command helper and degrade to the scan when the helper is
// unavailable. All operations are read-only and safe for concurrent use.
package resolve
