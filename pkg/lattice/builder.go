// Copyright Stratagem Contributors
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
package lattice

import (
	"runtime"
	"unsafe"
	"weak"

	"github.com/stratagem-mc/stratagem/pkg/term"
	"github.com/stratagem-mc/stratagem/pkg/util/collection/hash"
)

// Builder canonicalises every Element it produces, and memoises the three
// lattice operations with weakly-referenced cache entries: an entry points
// weakly at its result and is dropped once that result is collected, so the
// op-cache never pins memory on its own. The canonical table, however,
// holds every Element the Builder has produced, so Elements live as long as
// their Builder.
//
// A Builder is not safe for concurrent use, matching the rest of the core's
// single-threaded cooperative concurrency model.
type Builder struct {
	canon  *hash.Map[Element, Element]
	bottom Element
	cache  map[opCacheKey]weak.Pointer[termSet]
}

// NewBuilder constructs an empty lattice builder.
func NewBuilder() *Builder {
	b := &Builder{
		canon: hash.NewMap[Element, Element](64),
		cache: make(map[opCacheKey]weak.Pointer[termSet]),
	}
	b.bottom = b.canonicalize(newTermSet(nil))

	return b
}

// Bottom returns the canonical empty element.
func (b *Builder) Bottom() Element {
	return b.bottom
}

// Singleton returns the canonical element containing exactly t.
func (b *Builder) Singleton(t term.Term) Element {
	return b.canonicalize(newTermSet([]term.Term{t}))
}

// FromTerms returns the canonical element containing exactly the given
// (possibly duplicated) terms.
func (b *Builder) FromTerms(terms []term.Term) Element {
	return b.canonicalize(newTermSet(terms))
}

func (b *Builder) canonicalize(s *termSet) Element {
	if existing, ok := b.canon.Get(s); ok {
		return existing
	}

	b.canon.Insert(s, s)

	return s
}

type opKind uint8

const (
	opUnion opKind = iota
	opIntersect
	opDiff
)

type opCacheKey struct {
	kind opKind
	a, b uintptr
}

// Union returns the canonical union of a and c.
func (b *Builder) Union(a, c Element) Element {
	return b.memo(opUnion, a, c, func(ta, tc *termSet) *termSet {
		merged := append(append([]term.Term{}, ta.terms...), tc.terms...)
		return newTermSet(merged)
	})
}

// Intersect returns the canonical intersection of a and c.
func (b *Builder) Intersect(a, c Element) Element {
	return b.memo(opIntersect, a, c, func(ta, tc *termSet) *termSet {
		var out []term.Term

		for _, t := range ta.terms {
			if tc.contains(t) {
				out = append(out, t)
			}
		}

		return newTermSet(out)
	})
}

// Diff returns the canonical set-difference a \ c.
func (b *Builder) Diff(a, c Element) Element {
	return b.memo(opDiff, a, c, func(ta, tc *termSet) *termSet {
		var out []term.Term

		for _, t := range ta.terms {
			if !tc.contains(t) {
				out = append(out, t)
			}
		}

		return newTermSet(out)
	})
}

func (b *Builder) memo(kind opKind, a, c Element, compute func(ta, tc *termSet) *termSet) Element {
	ta, aok := a.(*termSet)
	tc, cok := c.(*termSet)

	if !aok || !cok {
		panic("lattice: Element value not produced by this package's Builder")
	}

	pa, pc := uintptr(unsafe.Pointer(ta)), uintptr(unsafe.Pointer(tc))

	if kind != opDiff && pa > pc {
		// Diff is not commutative; Union and Intersect are, so canonicalise
		// their operand order to maximise cache hits.
		pa, pc = pc, pa
		ta, tc = tc, ta
	}

	key := opCacheKey{kind: kind, a: pa, b: pc}

	if wp, ok := b.cache[key]; ok {
		if cached := wp.Value(); cached != nil {
			return cached
		}
	}

	result := b.canonicalize(compute(ta, tc))
	rs, _ := result.(*termSet)

	wp := weak.Make(rs)
	b.cache[key] = wp

	runtime.AddCleanup(rs, func(k opCacheKey) {
		delete(b.cache, k)
	}, key)

	return result
}
