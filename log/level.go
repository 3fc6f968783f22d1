/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package log

import "strings"

// Level specifies the log level.
type Level int

const (
	// InfoLevel indicates Info log level.
	InfoLevel Level = iota
	// WarningLevel indicates Warning log level.
	WarningLevel
	// ErrorLevel indicates Error log level.
	ErrorLevel
	// DebugLevel indicates Debug log level.
	DebugLevel
	// InvalidLevel is returned for levels the logger cannot map.
	InvalidLevel

	numLogLevels = 5
)

// levels is internally used to render a Level.
var levels = [numLogLevels]string{
	InfoLevel:    "INFO",
	WarningLevel: "WARNING",
	ErrorLevel:   "ERROR",
	DebugLevel:   "DEBUG",
	InvalidLevel: "INVALID",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if l < 0 || int(l) >= numLogLevels {
		return levels[InvalidLevel]
	}
	return levels[l]
}

// ParseLevel maps a case-insensitive level name to a Level.
// Unknown names map to InfoLevel and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarningLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}
