/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"strings"
)

// LogLimit is the most lines kept before the oldest are dropped.
const LogLimit = 1000

// Logger is the scrollable text shown in the log pane. Each entry is a
// single line; pos is the line just past the bottom of the view.
type Logger struct {
	buf []string
	pos int
}

// NewLog creates a new, empty Logger.
func NewLog() *Logger {
	return &Logger{
		buf: make([]string, 0, 100),
	}
}

// Log appends text to the log, one entry per line of text. The view
// follows new text only if it was already at the end.
func (log *Logger) Log(s ...string) {
	scroll := log.pos == len(log.buf)

	for _, line := range strings.Split(strings.Join(s, " "), "\n") {
		log.buf = append(log.buf, strings.TrimRight(line, "\r"))
	}

	// drop the oldest lines
	if over := len(log.buf) - LogLimit; over > 0 {
		log.buf = append(log.buf[:0], log.buf[over:]...)

		if log.pos -= over; log.pos < 0 {
			log.pos = 0
		}
	}

	if scroll {
		log.End()
	}
}

// Logln logs text with an empty line before it.
func (log *Logger) Logln(s ...string) {
	log.Log("")
	log.Log(s...)
}

// Len is the number of lines in the log.
func (log *Logger) Len() int {
	return len(log.buf)
}

// Window returns up to n lines ending at the current position.
func (log *Logger) Window(n int) []string {
	start := log.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	end := start + n
	if end > len(log.buf) {
		end = len(log.buf)
	}

	return log.buf[start:end]
}

// Home scrolls the log to the beginning.
func (log *Logger) Home() {
	log.pos = 0
}

// End scrolls the log to the end.
func (log *Logger) End() {
	log.pos = len(log.buf)
}

// ScrollUp scrolls the log back one line, keeping a full window visible.
func (log *Logger) ScrollUp(windowSize int) {
	log.pos--

	if log.pos < windowSize {
		log.pos = windowSize
	}

	// the whole log fits in the window
	if log.pos > len(log.buf) {
		log.End()
	}
}

// ScrollDown scrolls the log forward one line.
func (log *Logger) ScrollDown(windowSize int) {
	log.pos++

	// if less than the window size, drop to it
	if log.pos < windowSize {
		log.pos = windowSize
	}

	// clamp to end
	if log.pos > len(log.buf) {
		log.End()
	}
}
