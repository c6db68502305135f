// Package logging provides the logging interface used by the table generator
// and the rank query tools. It abstracts the underlying implementation, a
// zerolog JSON logger by default or the standard log package, behind Logger.
package logging
