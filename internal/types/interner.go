package types

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the basic and poison types, seeded once at
// interner construction.
type Builtins struct {
	Int   TypeID
	Byte  TypeID
	Bool  TypeID
	Void  TypeID
	Error TypeID
}

type arrayKey struct {
	Elem   TypeID
	Length uint32
}

// Interner is the flyweight type universe: Basic, Array, and Fn constructors
// all return a stable TypeID, with exactly one instance per distinct
// (kind, parameters) tuple. Type equality is TypeID equality.
type Interner struct {
	types      []Type
	basicIndex map[BasicKind]TypeID
	arrayIndex map[arrayKey]TypeID
	fnIndex    map[string]TypeID
	builtins   Builtins
}

// NewInterner constructs an interner seeded with the four basic types and
// the singleton Error type.
func NewInterner() *Interner {
	in := &Interner{
		types:      make([]Type, 1, 64), // index 0 reserved for NoTypeID
		basicIndex: make(map[BasicKind]TypeID, 4),
		arrayIndex: make(map[arrayKey]TypeID, 16),
		fnIndex:    make(map[string]TypeID, 16),
	}
	in.builtins.Int = in.Basic(Int)
	in.builtins.Byte = in.Basic(Byte)
	in.builtins.Bool = in.Basic(Bool)
	in.builtins.Void = in.Basic(Void)
	in.builtins.Error = in.internRaw(Type{Kind: KindError})
	return in
}

// Builtins returns the TypeIDs for the basic and error types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	return id
}

// Basic interns a scalar type and returns its TypeID.
func (in *Interner) Basic(kind BasicKind) TypeID {
	if id, ok := in.basicIndex[kind]; ok {
		return id
	}
	id := in.internRaw(Type{Kind: KindBasic, Basic: kind})
	in.basicIndex[kind] = id
	return id
}

// Array interns a fixed-length array of a Basic element type. elem must
// refer to a Basic, non-Void type; violating this is an internal invariant
// failure, not a user error (the type checker never offers Void or a
// non-Basic element here).
func (in *Interner) Array(elem TypeID, length uint32) TypeID {
	et, ok := in.Lookup(elem)
	if !ok || !et.IsBasic() {
		panic("types: array element must be a Basic type")
	}
	if et.IsVoid() {
		panic("types: array element must not be Void")
	}

	key := arrayKey{Elem: elem, Length: length}
	if id, ok := in.arrayIndex[key]; ok {
		return id
	}
	id := in.internRaw(Type{Kind: KindArray, Elem: elem, Length: length})
	in.arrayIndex[key] = id
	return id
}

// Fn interns a function type from its ordered formal types and return type.
func (in *Interner) Fn(formals []TypeID, ret TypeID) TypeID {
	key := fnKey(formals, ret)
	if id, ok := in.fnIndex[key]; ok {
		return id
	}
	id := in.internRaw(Type{Kind: KindFn, Formals: slices.Clone(formals), Ret: ret})
	in.fnIndex[key] = id
	return id
}

// Error returns the singleton poisoned type.
func (in *Interner) Error() TypeID {
	return in.builtins.Error
}

func fnKey(formals []TypeID, ret TypeID) string {
	var b strings.Builder
	for _, f := range formals {
		fmt.Fprintf(&b, "%d,", f)
	}
	fmt.Fprintf(&b, "->%d", ret)
	return b.String()
}

// Lookup returns the descriptor for id, or false if id is invalid.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id does not refer to an interned type. A violation
// indicates an internal invariant failure upstream (e.g. a node that was
// never assigned a type).
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Size returns the storage size of id in bytes: 1 for Byte/Bool, 8 for Int,
// 8 for Void (a non-storage convention spec.md §3 calls for when a width is
// required in a non-storage context), length*elemSize for Array, and 0 for
// Fn/Error (neither is ever materialized in storage).
func (in *Interner) Size(id TypeID) uint32 {
	t := in.MustLookup(id)
	switch t.Kind {
	case KindBasic:
		switch t.Basic {
		case Byte, Bool:
			return 1
		case Int, Void:
			return 8
		}
	case KindArray:
		return t.Length * in.Size(t.Elem)
	}
	return 0
}

// Name renders a human-readable type name, following the source project's
// textual conventions: "int array [8]", "int,byte->bool", "ERROR".
func (in *Interner) Name(id TypeID) string {
	t := in.MustLookup(id)
	switch t.Kind {
	case KindBasic:
		return t.Basic.String()
	case KindArray:
		return fmt.Sprintf("%s array [%d]", in.Name(t.Elem), t.Length)
	case KindFn:
		var b strings.Builder
		for i, f := range t.Formals {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(in.Name(f))
		}
		b.WriteString("->")
		b.WriteString(in.Name(t.Ret))
		return b.String()
	case KindError:
		return "ERROR"
	default:
		return "?"
	}
}
