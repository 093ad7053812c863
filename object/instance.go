package object

import (
	"fmt"

	"clou/util"
	"clou/value"
)

// Instance is a class instance (§3). Fields are created lazily on first
// assignment and are kept in insertion order for anything that prints or
// enumerates them.
type Instance struct {
	Class  *Class
	Fields *util.OrderedMap[value.Value]
}

func (*Instance) ClouValueMarkerFunc() {}

func (i *Instance) String() string { return fmt.Sprintf("<%v instance>", i.Class.Name) }

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: util.NewOrderedMap[value.Value]()}
}

// Get implements §4.3's Get-on-Instance rule: fields take precedence
// over methods; a found method is returned bound to this instance.
func (i *Instance) Get(name string) (value.Value, bool) {
	if v, ok := i.Fields.Get(name); ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

func (i *Instance) Set(name string, v value.Value) {
	i.Fields.Set(name, v)
}
