// Package application holds the process-wide runtime context: the resolved
// settings and the logger, built once at startup and passed to consumers.
package application
