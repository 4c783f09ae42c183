// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import "bytes"

// pack builds the entry for value. Byte slices are always copied so that
// callers cannot change a cached value through a slice they still hold.
func (c *Cache[V]) pack(key string, value V) *entry[V] {
	e := &entry[V]{key: key, value: value}

	var raw []byte

	switch v := any(value).(type) {
	case []byte:
		if len(v) == 0 {
			return e
		}

		raw = v
		e.value = any(bytes.Clone(v)).(V)
	case string:
		raw = []byte(v)
	default:
		return e
	}

	if c.enc == nil || len(raw) == 0 {
		return e
	}

	if frame := c.enc.EncodeAll(raw, nil); len(frame) < len(raw) {
		var zero V

		e.value = zero
		e.packed = frame
	}

	return e
}

// unpack returns the value of e, decoding it when it was compressed. A frame
// that fails to decode is reported missing.
func (c *Cache[V]) unpack(e *entry[V]) (V, bool) {
	var zero V

	if e.packed == nil {
		if b, ok := any(e.value).([]byte); ok && b != nil {
			return any(bytes.Clone(b)).(V), true
		}

		return e.value, true
	}

	if c.dec == nil {
		return zero, false
	}

	raw, err := c.dec.DecodeAll(e.packed, nil)
	if err != nil {
		return zero, false
	}

	switch any(zero).(type) {
	case string:
		return any(string(raw)).(V), true
	case []byte:
		return any(raw).(V), true
	}

	return zero, false
}
