// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events implements the listener registry used for model
// notifications. Listeners are registered per notification kind on
// specific documents and are called synchronously in registration
// order after the triggering command commits.
package events

import "reflect"

// Registry registers a list of listeners of one notification kind.
// Registration enforces no-duplicate semantics and removal of an
// unregistered listener is a harmless no-op, so callers can treat
// both as best-effort. The zero value is ready to use.
//
// Listeners are identified by pointer identity for pointer listeners
// and by value for comparable value listeners. A listener of an
// uncomparable value type is never considered identical to another,
// so it cannot be deduplicated or removed; use a pointer listener
// when removal matters.
type Registry[L any] struct {
	listeners []L
}

// identical reports whether two listeners are the same listener,
// without panicking on uncomparable listener types.
func identical(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if ta.Kind() == reflect.Pointer {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// Add registers the given listener, returning false without
// re-registering it if it is already registered. A listener that is
// registered once receives exactly one call per notification.
func (r *Registry[L]) Add(l L) bool {
	for _, e := range r.listeners {
		if identical(e, l) {
			return false
		}
	}
	r.listeners = append(r.listeners, l)
	return true
}

// Remove unregisters the given listener, returning whether it was
// registered.
func (r *Registry[L]) Remove(l L) bool {
	for i, e := range r.listeners {
		if identical(e, l) {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Notify calls the given function for each registered listener,
// synchronously, in registration order. Listeners must not mutate
// the firing document from within their callback.
func (r *Registry[L]) Notify(fn func(l L)) {
	for _, l := range r.listeners {
		fn(l)
	}
}

// Len returns the number of registered listeners.
func (r *Registry[L]) Len() int {
	return len(r.listeners)
}

// Clear unregisters all listeners. Used on document dispose, after
// which no further notifications follow.
func (r *Registry[L]) Clear() {
	r.listeners = nil
}
