// Copyright the s2ibis authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package model

import "github.com/simon9721/s2ibis-go/internal/consts"

// Scalar is a single optionally-unset value of type T. The zero value is
// unset, matching the "distinguished sentinel" spec.md §3 requires rather
// than overloading T's own zero value (0.0 is a legitimate voltage).
type Scalar[T any] struct {
	value T
	set   bool
}

// Unset constructs an unset Scalar.
func Unset[T any]() Scalar[T] {
	return Scalar[T]{}
}

// Of constructs a set Scalar holding v.
func Of[T any](v T) Scalar[T] {
	return Scalar[T]{value: v, set: true}
}

// IsSet reports whether this Scalar carries a value.
func (s Scalar[T]) IsSet() bool {
	return s.set
}

// Get returns the underlying value and whether it was set.
func (s Scalar[T]) Get() (T, bool) {
	return s.value, s.set
}

// MustGet returns the underlying value, panicking if unset. Callers must
// check IsSet (or use GetOr) first; this exists for code paths that have
// already established the value is present.
func (s Scalar[T]) MustGet() T {
	if !s.set {
		panic("model: Scalar.MustGet on an unset scalar")
	}

	return s.value
}

// GetOr returns the underlying value, or a default if unset.
func (s Scalar[T]) GetOr(fallback T) T {
	if s.set {
		return s.value
	}

	return fallback
}

// Corner3 is the corner-valued scalar triple of spec.md §3: {typ, min, max},
// each independently optional. This is used for every electrical quantity:
// voltages, resistances, capacitances, inductances, temperatures, simulation
// time, rise/fall targets.
//
// Invariant: Min <= Typ <= Max when all three are set, EXCEPT the
// temperature-range field, where min/max denote slowest/fastest process
// corner and may be numerically reversed by design (spec.md §3, §9). This
// type does not enforce the invariant, and nothing in this package checks
// it.
type Corner3[T any] struct {
	Typ Scalar[T]
	Min Scalar[T]
	Max Scalar[T]
}

// At returns the Scalar for a given corner.
func (c Corner3[T]) At(corner consts.Corner) Scalar[T] {
	switch corner {
	case consts.Min:
		return c.Min
	case consts.Max:
		return c.Max
	default:
		return c.Typ
	}
}

// WithAt returns a copy of c with the given corner set to v.
func (c Corner3[T]) WithAt(corner consts.Corner, v Scalar[T]) Corner3[T] {
	switch corner {
	case consts.Min:
		c.Min = v
	case consts.Max:
		c.Max = v
	default:
		c.Typ = v
	}

	return c
}

// AnySet reports whether at least one corner carries a value.
func (c Corner3[T]) AnySet() bool {
	return c.Typ.IsSet() || c.Min.IsSet() || c.Max.IsSet()
}

// AllSet reports whether every corner carries a value.
func (c Corner3[T]) AllSet() bool {
	return c.Typ.IsSet() && c.Min.IsSet() && c.Max.IsSet()
}

// Corner3Of constructs a fully-set Corner3 triple.
func Corner3Of[T any](typ, min, max T) Corner3[T] {
	return Corner3[T]{Of(typ), Of(min), Of(max)}
}
