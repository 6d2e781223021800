package types

// String is the type of a string value. Strings are immutable sequences of
// bytes holding UTF-8 encoded text.
type String string

var _ Value = String("")

// String returns the string content itself, without quoting; it is what the
// print statement emits.
func (s String) String() string { return string(s) }

func (s String) Type() string { return "string" }
func (s String) Truth() Bool  { return True }
