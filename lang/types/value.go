// Package types defines the runtime representation of the values manipulated
// by the interpreter, along with the operator dispatch over them. The
// interpreter proper should read like a tree walk; everything about what
// operators accept and produce lives here.
package types

// Value is the interface implemented by any value manipulated by the
// interpreter.
type Value interface {
	// String returns the string representation of the value, as produced by
	// the print statement.
	String() string

	// Type returns a short string describing the value's type.
	Type() string

	// Truth returns the truth value of the value. Only Nil and False are
	// false, everything else is true.
	Truth() Bool
}

// An Ordered type is a type whose values are ordered: if x and y are of the
// same Ordered type, then x must be less than y, greater than y, or equal to
// y.
type Ordered interface {
	Value

	// Cmp compares two values x and y of the same ordered type. It returns
	// negative if x < y, positive if x > y, and zero if the values are equal.
	// Client code should not call this method. Instead, use the standalone
	// Compare function, which is defined for all pairs of operands.
	Cmp(y Value) (int, error)
}

// A HasEqual type is a type which defines a custom equality logic for its
// values. An Ordered type should not implement HasEqual, but if values of a
// type are not ordered but should not use identity equality, then it should
// implement HasEqual.
type HasEqual interface {
	Value

	// Equals returns true if the receiver value is considered equal to y.
	// Client code should not call this method. Instead, use the standalone
	// Equal function, which is defined for all pairs of operands.
	Equals(y Value) (bool, error)
}

// A HasAttrs value has fields or methods that may be read by a dot
// expression (y = x.f). For implementation convenience, a result of
// (nil, nil) from Attr is interpreted as a "no such field or method" error.
// Implementations are free to return a more precise error.
type HasAttrs interface {
	Value

	// Attr returns the field or method value corresponding to the attribute
	// name. A return value of (nil, nil) is interpreted as a "no such field
	// or method" error.
	Attr(name string) (Value, error)

	// AttrNames returns a sorted slice of strings of valid attribute names.
	// The caller must not modify the result.
	AttrNames() []string
}

// A HasSetField value has fields that may be written by a dot expression
// (x.f = y).
type HasSetField interface {
	HasAttrs
	SetField(name string, v Value) error
}

// A NoSuchAttrError may be returned by an implementation of HasAttrs.Attr to
// indicate that no such field or method exists.
type NoSuchAttrError string

func (e NoSuchAttrError) Error() string { return string(e) }
