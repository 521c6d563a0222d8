// Package valobj is the runtime support of generated value classes.
//
// Generated constructors and builders call CheckNotNil for their not-null
// properties, Equal methods compare fields with reflect.DeepEqual, and Hash
// methods fold their fields with Hash.
package valobj

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"
	"math"
	"reflect"
	"slices"
)

// IsNil reports whether v is nil or a nil pointer, map, slice, channel,
// function or interface. Values of other kinds are never nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// CheckNotNil returns a NilArgumentError if v is nil.
func CheckNotNil(typ, param string, v any) error {
	if IsNil(v) {
		return NewNilArgumentError(typ, param)
	}
	return nil
}

// Hash returns the FNV-1a hash of the given fields, consistent with
// reflect.DeepEqual: fields that are deeply equal hash the same. Pointers are
// followed, map entries are folded independently of iteration order and
// +0 and -0 hash alike. The hash of no fields is the FNV offset basis.
func Hash(fields ...any) uint64 {
	h := hasher{Hash64: fnv.New64a(), visiting: make(map[visit]bool)}
	for _, f := range fields {
		h.value(reflect.ValueOf(f))
		h.writeByte(';')
	}
	return h.Sum64()
}

// visit identifies a pointer, slice or map on the current walk path.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

type hasher struct {
	hash.Hash64
	buf      [8]byte
	visiting map[visit]bool
}

func (h *hasher) writeByte(b byte) {
	h.buf[0] = b
	_, _ = h.Write(h.buf[:1])
}

func (h *hasher) writeUint(u uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], u)
	_, _ = h.Write(h.buf[:])
}

func (h *hasher) writeString(s string) {
	h.writeUint(uint64(len(s)))
	_, _ = io.WriteString(h, s)
}

func (h *hasher) writeFloat(f float64) {
	if f == 0 {
		f = 0 // -0
	}
	h.writeUint(math.Float64bits(f))
}

// enter reports whether v is not on the walk path yet and marks it.
func (h *hasher) enter(v reflect.Value) bool {
	k := visit{ptr: v.Pointer(), typ: v.Type()}
	if h.visiting[k] {
		return false
	}
	h.visiting[k] = true
	return true
}

func (h *hasher) leave(v reflect.Value) {
	delete(h.visiting, visit{ptr: v.Pointer(), typ: v.Type()})
}

// value hashes v the way reflect.DeepEqual compares it.
func (h *hasher) value(v reflect.Value) {
	if !v.IsValid() {
		h.writeByte('n')
		return
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			h.writeByte('n')
			return
		}
		if !h.enter(v) {
			h.writeByte('c')
			return
		}
		h.value(v.Elem())
		h.leave(v)
	case reflect.Interface:
		if v.IsNil() {
			h.writeByte('n')
			return
		}
		h.writeString(v.Elem().Type().String())
		h.value(v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			h.writeByte('n')
			return
		}
		if !h.enter(v) {
			h.writeByte('c')
			return
		}
		h.writeByte('s')
		h.elems(v)
		h.leave(v)
	case reflect.Array:
		h.elems(v)
	case reflect.Map:
		if v.IsNil() {
			h.writeByte('n')
			return
		}
		if !h.enter(v) {
			h.writeByte('c')
			return
		}
		h.writeByte('m')
		h.writeUint(uint64(v.Len()))
		h.writeUint(h.entries(v))
		h.leave(v)
	case reflect.Struct:
		for i := range v.NumField() {
			h.value(v.Field(i))
		}
	case reflect.String:
		h.writeString(v.String())
	case reflect.Bool:
		if v.Bool() {
			h.writeByte(1)
		} else {
			h.writeByte(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		h.writeUint(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		h.writeUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		h.writeFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		h.writeFloat(real(c))
		h.writeFloat(imag(c))
	case reflect.Func:
		// Non-nil functions are never deeply equal.
		h.writeByte('f')
		if v.IsNil() {
			h.writeByte('n')
		}
	case reflect.Chan, reflect.UnsafePointer:
		h.writeUint(uint64(v.Pointer()))
	}
}

func (h *hasher) elems(v reflect.Value) {
	h.writeUint(uint64(v.Len()))
	for i := range v.Len() {
		h.value(v.Index(i))
	}
}

// entries folds the entries of a map. Every entry is hashed on its own and
// the digests are combined in sorted order, so iteration order is irrelevant.
func (h *hasher) entries(v reflect.Value) uint64 {
	sums := make([]uint64, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		e := hasher{Hash64: fnv.New64a(), visiting: h.visiting}
		e.value(iter.Key())
		e.value(iter.Value())
		sums = append(sums, e.Sum64())
	}
	slices.Sort(sums)
	sum := fnv.New64a()
	var b [8]byte
	for _, s := range sums {
		binary.LittleEndian.PutUint64(b[:], s)
		_, _ = sum.Write(b[:])
	}
	return sum.Sum64()
}
