package interp

import (
	"sort"

	"github.com/dolthub/swiss"
	"github.com/mna/nelumbo/lang/types"
)

// A Class is a named collection of methods. It is callable and acts as the
// zero-arity constructor of its instances; constructors with parameters are
// tied to initializer methods, which are not supported yet.
type Class struct {
	name    string
	methods *swiss.Map[string, *Function]
}

var (
	_ Callable       = (*Class)(nil)
	_ types.HasEqual = (*Class)(nil)
)

func (c *Class) String() string    { return c.name }
func (c *Class) Type() string      { return "class" }
func (c *Class) Truth() types.Bool { return types.True }
func (c *Class) Name() string      { return c.name }
func (c *Class) Arity() int        { return 0 }

func (c *Class) Equals(y types.Value) (bool, error) {
	return callableEqual(c, y), nil
}

// CallInternal constructs a new empty instance of the class.
func (c *Class) CallInternal(i *Interp, args []types.Value) (types.Value, error) {
	return NewInstance(c), nil
}

// FindMethod returns the method declared under name, unbound.
func (c *Class) FindMethod(name string) (*Function, bool) {
	return c.methods.Get(name)
}

// An Instance holds a pointer to its class and its own mutable field table.
// Instances are shared handles: a property write through any reference is
// immediately visible through all others, and equality between instances is
// reference identity.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, types.Value]
}

var (
	_ types.HasAttrs    = (*Instance)(nil)
	_ types.HasSetField = (*Instance)(nil)
)

// NewInstance returns a new instance of class with no fields.
func NewInstance(class *Class) *Instance {
	return &Instance{
		class:  class,
		fields: swiss.NewMap[string, types.Value](8),
	}
}

func (inst *Instance) String() string    { return inst.class.name + " instance" }
func (inst *Instance) Type() string      { return "instance" }
func (inst *Instance) Truth() types.Bool { return types.True }

// Class returns the class of the instance.
func (inst *Instance) Class() *Class { return inst.class }

// Attr returns the field named name if the instance has one, and otherwise
// the class method of that name bound to this instance. Fields shadow
// methods.
func (inst *Instance) Attr(name string) (types.Value, error) {
	if v, ok := inst.fields.Get(name); ok {
		return v, nil
	}
	if m, ok := inst.class.FindMethod(name); ok {
		return m.Bind(inst), nil
	}
	return nil, nil
}

// SetField unconditionally writes the field, creating it on first write.
func (inst *Instance) SetField(name string, v types.Value) error {
	inst.fields.Put(name, v)
	return nil
}

// AttrNames returns the sorted field and method names of the instance.
func (inst *Instance) AttrNames() []string {
	names := make([]string, 0, inst.fields.Count()+inst.class.methods.Count())
	inst.fields.Iter(func(k string, _ types.Value) bool {
		names = append(names, k)
		return false
	})
	inst.class.methods.Iter(func(k string, _ *Function) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	return names
}
