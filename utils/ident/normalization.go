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

package ident

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLength bounds namespaces and names, in runes.
const MaxLength = 255

var (
	// ErrEmpty is returned when an identifier is empty after trimming.
	ErrEmpty = errors.New("ident: empty identifier")
	// ErrTooLong is returned when an identifier exceeds MaxLength runes.
	ErrTooLong = errors.New("ident: identifier too long")
	// ErrInvalidRune is returned for control characters, invalid UTF-8, or
	// whitespace inside a namespace.
	ErrInvalidRune = errors.New("ident: invalid character in identifier")
)

// Namespace trims s and validates it as an extension namespace.
//
// Namespaces are identity strings such as "mod.alice" or a plugin GUID:
// they may not contain whitespace or control characters.
func Namespace(s string) (string, error) {
	s, err := normalize(s)
	if err != nil {
		return "", err
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", ErrInvalidRune
	}
	return s, nil
}

// Name trims s and validates it as a symbolic content name.
// Inner spaces are allowed ("Lucky Coin"); control characters are not.
func Name(s string) (string, error) {
	return normalize(s)
}

// normalize applies the rules shared by Namespace and Name.
func normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidRune
	}
	if utf8.RuneCountInString(s) > MaxLength {
		return "", ErrTooLong
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", ErrInvalidRune
	}
	return s, nil
}
