// Package utils hosts cross-cutting helpers shared by the command-line
// application: configuration loading, logger construction, and context
// plumbing.
package utils
