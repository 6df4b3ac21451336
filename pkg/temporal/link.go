// pkg/temporal/link.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package temporal

import "github.com/google/uuid"

// Link is a lazy reference to an Object: a UUID plus an optional cached
// pointer. Equality is by UUID alone — the identity of whatever happens
// to be cached is irrelevant, so two Links naming the same object are
// equal even if only one of them has resolved its cache.
type Link struct {
	id     uuid.UUID
	cached *Object
}

// NewLink builds an unresolved Link to id.
func NewLink(id uuid.UUID) Link {
	return Link{id: id}
}

// NilLink is the zero-value, never-resolves Link.
var NilLink = Link{}

func (l Link) UUID() uuid.UUID { return l.id }

func (l Link) IsNil() bool { return l.id == uuid.Nil }

// Equal compares Links by UUID only, per the spec's invariant that
// identity of the cached pointer never participates in equality.
func (l Link) Equal(other Link) bool { return l.id == other.id }

// Cache attaches a resolved Object to the Link.
func (l *Link) Cache(o *Object) { l.cached = o }

// Cached returns the previously-resolved Object, if any.
func (l Link) Cached() (*Object, bool) {
	return l.cached, l.cached != nil
}

// LinkLoader is the "object database" collaborator (out of scope per the
// spec): given a set of unresolved Links, it populates their caches,
// following any Links reached transitively up to depth levels deep
// (breadth-first). Implementations live outside this module; adrcore
// only consumes this interface.
type LinkLoader interface {
	Resolve(links []*Link, depth int) error
}
