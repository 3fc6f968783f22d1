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

// Logger is the diagnostics sink used across enumx.
//
// Implementations must be safe for concurrent use. Structured context is
// attached with With, which returns a derived Logger and leaves the
// receiver untouched.
type Logger interface {
	// Debug starts a new message with debug level.
	Debug(...any)
	// Debugf starts a new message with debug level.
	Debugf(string, ...any)
	// Info starts a new message with info level.
	Info(...any)
	// Infof starts a new message with info level.
	Infof(string, ...any)
	// Warn starts a new message with warn level.
	Warn(...any)
	// Warnf starts a new message with warn level.
	Warnf(string, ...any)
	// Error starts a new message with error level.
	Error(...any)
	// Errorf starts a new message with error level.
	Errorf(string, ...any)
	// With returns a Logger that adds the key-value pairs to every entry.
	With(keyValues ...any) Logger
	// Enabled reports whether the given level would be written.
	Enabled(level Level) bool
	// LogLevel returns the log level being used.
	LogLevel() Level
	// Flush writes any buffered entries.
	Flush() error
}

// OrDiscard returns l, or DiscardLogger when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return DiscardLogger
	}
	return l
}
