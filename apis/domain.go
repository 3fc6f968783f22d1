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

package apis

import (
	"math"
	"strconv"
)

// Value is a single member of a closed host enumeration.
// It is wide enough to carry every supported backing Width.
type Value int64

// String returns the decimal form of v.
func (v Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// Width describes the fixed-width integer the host uses to store a Domain.
type Width uint8

const (
	// Int32 is the default backing (the host's plain enum type).
	Int32 Width = iota
	// Int8 is a signed 8-bit backing.
	Int8
	// Uint8 is an unsigned 8-bit backing.
	Uint8
	// Int16 is a signed 16-bit backing.
	Int16
	// Uint16 is an unsigned 16-bit backing.
	Uint16
	// Uint32 is an unsigned 32-bit backing.
	Uint32
	// Int64 is a signed 64-bit backing.
	Int64
)

// Max returns the highest Value representable by w.
func (w Width) Max() Value {
	switch w {
	case Int8:
		return math.MaxInt8
	case Uint8:
		return math.MaxUint8
	case Int16:
		return math.MaxInt16
	case Uint16:
		return math.MaxUint16
	case Uint32:
		return math.MaxUint32
	case Int64:
		return math.MaxInt64
	default:
		return math.MaxInt32
	}
}

// Min returns the lowest Value representable by w.
func (w Width) Min() Value {
	switch w {
	case Int8:
		return math.MinInt8
	case Uint8, Uint16, Uint32:
		return 0
	case Int16:
		return math.MinInt16
	case Int64:
		return math.MinInt64
	default:
		return math.MinInt32
	}
}

// String returns the Go spelling of the backing type.
func (w Width) String() string {
	switch w {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	default:
		return "int32"
	}
}

// ParseWidth maps a Go integer type name to a Width.
func ParseWidth(s string) (Width, bool) {
	switch s {
	case "int8":
		return Int8, true
	case "uint8", "byte":
		return Uint8, true
	case "int16":
		return Int16, true
	case "uint16":
		return Uint16, true
	case "int32", "int", "":
		return Int32, true
	case "uint32":
		return Uint32, true
	case "int64":
		return Int64, true
	default:
		return Int32, false
	}
}

// Domain is one closed enumerated value space owned by the host.
//
// BaseMax is the highest value the host ships with. Values above it are
// minted for extensions, starting at BaseMax+1, and must stay within Width.
type Domain struct {
	// Name is the type tag, e.g. "boon" or "opponent".
	Name string
	// BaseMax is the highest value compiled into the host.
	BaseMax Value
	// Width is the host's backing integer type.
	Width Width
}

// FirstFree returns the first value available to extensions.
func (d Domain) FirstFree() Value {
	return d.BaseMax + 1
}

// Capacity returns how many extension values fit in the domain, saturating
// at math.MaxInt64.
func (d Domain) Capacity() int64 {
	if d.BaseMax >= d.Width.Max() {
		return 0
	}
	n := uint64(d.Width.Max()) - uint64(d.BaseMax)
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

// Key identifies one allocation request.
type Key struct {
	// Domain is the Domain name.
	Domain string
	// Namespace is the registering extension's identity string.
	Namespace string
	// Name is the extension-chosen symbolic label.
	Name string
}

// String renders k as "domain:namespace/name".
func (k Key) String() string {
	return k.Domain + ":" + k.Namespace + "/" + k.Name
}

// Allocation is a durable (Key, Value) association.
type Allocation struct {
	Key   Key
	Value Value
}
