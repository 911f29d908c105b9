package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	inputBufferSize = 64
	// closeTimeout bounds how long Close waits for the program to restore the terminal.
	closeTimeout = 2 * time.Second

	// ANSI palette indices for the two tones.
	primaryColor   = "2"  // green
	secondaryColor = "15" // bright white
)
