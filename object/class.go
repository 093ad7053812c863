package object

import (
	"fmt"

	"clou/util"
)

// Class is a Clou class value (§3): an ordered method table and an
// optional superclass link. The "init" entry, if present, is the
// constructor.
type Class struct {
	Name       string
	Methods    *util.OrderedMap[*Function]
	Superclass *Class
}

func (*Class) ClouValueMarkerFunc() {}

func (c *Class) String() string { return fmt.Sprintf("<class %v>", c.Name) }

func NewClass(name string, superclass *Class) *Class {
	return &Class{Name: name, Methods: util.NewOrderedMap[*Function](), Superclass: superclass}
}

// FindMethod looks up name in this class's method table, then walks the
// superclass chain (§4.3 Get on Instance: "find a method anywhere in the
// class chain").
func (c *Class) FindMethod(name string) (*Function, bool) {
	for cls := c; cls != nil; cls = cls.Superclass {
		if m, ok := cls.Methods.Get(name); ok {
			return m, true
		}
	}
	return nil, false
}
