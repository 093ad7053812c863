package object

import "clou/value"

// ExtractArg type-asserts arg to T, panicking with a NativeError carrying
// message if it isn't, so a wrong argument type reports a domain error
// instead of a Go panic leaking the wrong message. The built-ins and
// virtual methods in package interpreter do their own type assertions
// and do not call it.
func ExtractArg[T value.Value](arg value.Value, message string) T {
	if v, ok := arg.(T); ok {
		return v
	}
	panic(NativeError{message})
}
