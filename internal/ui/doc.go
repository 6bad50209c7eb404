// Package ui renders process lifecycle events as human-readable messages.
package ui
