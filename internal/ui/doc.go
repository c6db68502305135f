// Package ui provides the color themes of the command line output. It holds
// the ANSI escape codes used by the CLI presenters and honours NO_COLOR.
package ui
