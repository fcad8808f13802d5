package clamp

import "reflect"

// Value is the type-erased contract over every Typed instance. Which
// concrete type is active is fixed at declaration time and never changes;
// the interface only dispatches to it. Typed[T] is the sole implementation.
type Value interface {
	Name() string
	Description() string
	Kind() string
	Behavior() SetBehavior
	IsSet() bool
	IsMaxed() bool
	Count() int
	MaxArgs() int
	HasDefault() bool

	// Set parses, validates, and stores one token per the value's behavior.
	Set(token string) error

	// bind attaches runtime storage; only Command.Init calls it.
	bind(cfg *Config) error
	// defaultLabel renders the default for usage output.
	defaultLabel() string
}

// Get returns the first parsed instance of a type-erased value. It fails
// with a kind mismatch when T does not match the value's concrete type.
func Get[T any](v Value) (T, error) {
	tv, ok := v.(*Typed[T])
	if !ok {
		var zero T
		return zero, kindMismatch[T](v)
	}
	return tv.Get()
}

// GetAll returns every parsed instance of a type-erased value.
func GetAll[T any](v Value) ([]T, error) {
	tv, ok := v.(*Typed[T])
	if !ok {
		return nil, kindMismatch[T](v)
	}
	return tv.GetAll()
}

func kindMismatch[T any](v Value) *ParseError {
	want := reflect.TypeFor[T]().String()
	return &ParseError{
		Type:    ErrorTypeKindMismatch,
		Message: "value " + v.Name() + " holds " + v.Kind() + ", not " + want,
		Arg:     v.Name(),
	}
}
