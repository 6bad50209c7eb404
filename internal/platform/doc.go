// Package platform models operating system capabilities as an immutable
// value constructed once and passed explicitly to the components that
// need to branch on platform behavior.
package platform
