package clamp

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/dzonerzy/go-clamp/internal/slots"
)

// SetBehavior controls how repeated assignments to a Value are resolved.
type SetBehavior int

const (
	// BehaviorDefault defers to Config.GlobalSetBehavior at Init time.
	BehaviorDefault SetBehavior = iota
	// BehaviorFirst keeps the first successfully parsed instance.
	BehaviorFirst
	// BehaviorLast keeps the most recent successfully parsed instance.
	BehaviorLast
	// BehaviorMulti accumulates instances up to the arity cap.
	BehaviorMulti
)

// String returns the behavior name as used in declarative schemas.
func (b SetBehavior) String() string {
	switch b {
	case BehaviorFirst:
		return "first"
	case BehaviorLast:
		return "last"
	case BehaviorMulti:
		return "multi"
	default:
		return "default"
	}
}

// Typed is a positional, typed, arity-bounded argument value. It owns the
// storage for parsed instances of T plus the parse and validation logic that
// guards it. A Typed is declared as schema data and only allocates its slot
// storage when the owning Command is initialized.
type Typed[T any] struct {
	name        string
	description string

	behavior    SetBehavior
	delims      string
	delimsSet   bool
	maxArgs     int
	defaultVal  *T
	defaultText string
	parseFn     func(string) (T, error)
	validFn     func(T) error

	store *slots.Arena[T]
	set   bool
	maxed bool
}

// NewValue declares a value of concrete type T. The concrete type is fixed
// for the lifetime of the instance.
func NewValue[T any](name, description string) *Typed[T] {
	return &Typed[T]{name: name, description: description}
}

// Shorthand constructors for the common kinds.

func BoolValue(name, description string) *Typed[bool]       { return NewValue[bool](name, description) }
func StringValue(name, description string) *Typed[string]   { return NewValue[string](name, description) }
func IntValue(name, description string) *Typed[int]         { return NewValue[int](name, description) }
func Int64Value(name, description string) *Typed[int64]     { return NewValue[int64](name, description) }
func UintValue(name, description string) *Typed[uint]       { return NewValue[uint](name, description) }
func Uint64Value(name, description string) *Typed[uint64]   { return NewValue[uint64](name, description) }
func Float64Value(name, description string) *Typed[float64] { return NewValue[float64](name, description) }

// Schema-time configuration. These mutate declaration data only; storage is
// untouched until Init binds the value.

// Default sets the value returned by Get when nothing was parsed.
func (v *Typed[T]) Default(d T) *Typed[T] {
	v.defaultVal = &d
	return v
}

// DefaultText sets the default from its textual form. The text is run
// through the value's parse chain at Init time, so overrides and registered
// kinds apply. Used by declarative schema loaders.
func (v *Typed[T]) DefaultText(text string) *Typed[T] {
	v.defaultText = text
	return v
}

// Using sets the behavior for repeated assignment.
func (v *Typed[T]) Using(b SetBehavior) *Typed[T] {
	v.behavior = b
	return v
}

// Delims sets the characters that split one token into multiple
// sub-arguments under BehaviorMulti. An empty string disables splitting for
// this value.
func (v *Typed[T]) Delims(delims string) *Typed[T] {
	v.delims = delims
	v.delimsSet = true
	return v
}

// Max sets the arity cap for this value (1..Config.MaxChildren).
func (v *Typed[T]) Max(n int) *Typed[T] {
	v.maxArgs = n
	return v
}

// Parser overrides the parse function for this instance. Errors from the
// override are normalized to a single cannot-parse failure.
func (v *Typed[T]) Parser(fn func(string) (T, error)) *Typed[T] {
	v.parseFn = fn
	return v
}

// Validator rejects parsed instances before they reach storage.
func (v *Typed[T]) Validator(fn func(T) error) *Typed[T] {
	v.validFn = fn
	return v
}

// Type-erased accessors (the Value contract).

func (v *Typed[T]) Name() string          { return v.name }
func (v *Typed[T]) Description() string   { return v.description }
func (v *Typed[T]) Behavior() SetBehavior { return v.behavior }
func (v *Typed[T]) IsSet() bool           { return v.set }
func (v *Typed[T]) IsMaxed() bool         { return v.maxed }
func (v *Typed[T]) HasDefault() bool      { return v.defaultVal != nil }

// Kind returns the concrete type name, e.g. "bool", "uint16", "float64", or
// the fully qualified name of a registered custom kind.
func (v *Typed[T]) Kind() string {
	return reflect.TypeFor[T]().String()
}

// Count returns the number of filled slots.
func (v *Typed[T]) Count() int {
	if v.store == nil {
		return 0
	}
	return v.store.Len()
}

// MaxArgs returns the arity cap resolved at Init time (0 before Init).
func (v *Typed[T]) MaxArgs() int { return v.maxArgs }

// bind attaches runtime storage and resolves configuration defaults. Called
// once per value by Command.Init.
func (v *Typed[T]) bind(cfg *Config) error {
	if v.store != nil {
		return newSchemaError("value %q is already bound to a command", v.name)
	}
	if v.behavior == BehaviorDefault {
		v.behavior = cfg.GlobalSetBehavior
	}
	if !v.delimsSet {
		v.delims = cfg.GlobalArgDelims
	}
	if v.maxArgs == 0 {
		if v.behavior == BehaviorMulti {
			v.maxArgs = cfg.MaxChildren
		} else {
			v.maxArgs = 1
		}
	}
	if v.maxArgs < 1 || v.maxArgs > cfg.MaxChildren {
		return newSchemaError("value %q: arity cap %d outside 1..%d", v.name, v.maxArgs, cfg.MaxChildren)
	}
	if v.defaultText != "" && v.defaultVal == nil {
		d, err := v.parse(v.defaultText)
		if err != nil {
			return newSchemaError("value %q: cannot parse default %q: %v", v.name, v.defaultText, err)
		}
		v.defaultVal = &d
	}
	v.store = slots.New[T](v.maxArgs)
	return nil
}

// Set parses, validates, and stores one token. Under BehaviorMulti a token
// containing a configured delimiter is split and each piece is set in turn,
// so a single CLI token can fill several slots. A set attempted while the
// value is already maxed is a silent no-op so that delimiter splitting may
// overshoot the cap without failing the parse.
func (v *Typed[T]) Set(token string) error {
	if v.store == nil {
		return newSchemaError("value %q used before its command was initialized", v.name)
	}

	if v.behavior == BehaviorMulti && v.Kind() != "string" {
		for _, d := range v.delims {
			if strings.ContainsRune(token, d) {
				for _, piece := range strings.Split(token, string(d)) {
					if err := v.Set(piece); err != nil {
						return err
					}
				}
				return nil
			}
		}
	}

	parsed, err := v.parse(token)
	if err != nil {
		return err
	}
	if v.validFn != nil {
		if verr := v.validFn(parsed); verr != nil {
			return &ParseError{
				Type:    ErrorTypeInvalidValue,
				Message: "invalid value for " + v.name + ": " + verr.Error(),
				Token:   token,
				Arg:     v.name,
				Cause:   verr,
			}
		}
	}

	switch v.behavior {
	case BehaviorFirst:
		if v.store.Len() == 0 {
			v.store.Put(parsed)
		}
	case BehaviorLast:
		if v.store.Len() == 0 {
			v.store.Put(parsed)
		} else {
			v.store.Overwrite(0, parsed)
		}
	case BehaviorMulti, BehaviorDefault:
		v.store.Put(parsed) // Put refuses when full; overshoot is a no-op
	}

	v.set = true
	v.maxed = v.store.Len() >= v.maxArgs
	return nil
}

// Get returns the first parsed instance, falling back to the declared
// default. Unset bool values read as false; any other unset kind without a
// default is a value-not-set failure. Get never mutates storage.
func (v *Typed[T]) Get() (T, error) {
	if v.set && v.store != nil && v.store.Len() > 0 {
		return v.store.At(0), nil
	}
	if v.defaultVal != nil {
		return *v.defaultVal, nil
	}
	var zero T
	if _, isBool := any(zero).(bool); isBool {
		return zero, nil
	}
	return zero, &ParseError{
		Type:    ErrorTypeValueNotSet,
		Message: "value not set: " + v.name,
		Arg:     v.name,
	}
}

// GetAll returns every filled slot, or the single default when nothing was
// parsed.
func (v *Typed[T]) GetAll() ([]T, error) {
	if v.set && v.store != nil && v.store.Len() > 0 {
		out := make([]T, v.store.Len())
		copy(out, v.store.All())
		return out, nil
	}
	if v.defaultVal != nil {
		return []T{*v.defaultVal}, nil
	}
	return nil, &ParseError{
		Type:    ErrorTypeValueNotSet,
		Message: "value not set: " + v.name,
		Arg:     v.name,
	}
}

// defaultLabel renders the default for usage output, "" when absent.
func (v *Typed[T]) defaultLabel() string {
	if v.defaultVal == nil {
		return ""
	}
	return fmt.Sprintf("%v", *v.defaultVal)
}

// parse applies, in priority order, the instance override, a registered
// kind-level override, then built-in coercion.
func (v *Typed[T]) parse(token string) (T, error) {
	if v.parseFn != nil {
		out, err := v.parseFn(token)
		if err != nil {
			return out, v.cannotParse(token, err)
		}
		return out, nil
	}
	if fn := registeredParser[T](); fn != nil {
		out, err := fn(token)
		if err != nil {
			return out, v.cannotParse(token, err)
		}
		return out, nil
	}
	out, err := parseBuiltin[T](token)
	if err != nil {
		return out, &ParseError{
			Type:    ErrorTypeCannotParse,
			Message: "cannot parse " + strconv.Quote(token) + " as " + v.Kind() + " for " + v.name + ": " + err.Error(),
			Token:   token,
			Arg:     v.name,
			Cause:   err,
		}
	}
	return out, nil
}

func (v *Typed[T]) cannotParse(token string, cause error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeCannotParse,
		Message: "cannot parse " + strconv.Quote(token) + " for " + v.name,
		Token:   token,
		Arg:     v.name,
		Cause:   cause,
	}
}

// Kind registry. RegisterKind extends the closed set of built-in kinds with
// project-specific concrete types, resolved at schema-declaration time.

var kindParsers sync.Map // reflect.Type -> func(string) (T, error)

// RegisterKind registers a parse function for a custom concrete type. Every
// Typed[T] without an instance-level override picks it up.
func RegisterKind[T any](parse func(string) (T, error)) {
	kindParsers.Store(reflect.TypeFor[T](), parse)
}

func registeredParser[T any]() func(string) (T, error) {
	fn, ok := kindParsers.Load(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	return fn.(func(string) (T, error))
}

// boolWords is the fixed word set accepted as true; anything else is false.
var boolWords = []string{"true", "t", "yes", "y", "1"}

func parseBoolToken(token string) bool {
	for _, w := range boolWords {
		if strings.EqualFold(token, w) {
			return true
		}
	}
	return false
}

// parseBuiltin coerces a token into one of the built-in kinds. Integers
// accept base prefixes (0x, 0o, 0b); numeric failures surface the underlying
// strconv error.
func parseBuiltin[T any](token string) (T, error) {
	var zero T
	var out any
	var err error

	switch any(zero).(type) {
	case bool:
		out = parseBoolToken(token)
	case string:
		out = token
	case int:
		var i int64
		i, err = strconv.ParseInt(token, 0, strconv.IntSize)
		out = int(i)
	case int8:
		var i int64
		i, err = strconv.ParseInt(token, 0, 8)
		out = int8(i)
	case int16:
		var i int64
		i, err = strconv.ParseInt(token, 0, 16)
		out = int16(i)
	case int32:
		var i int64
		i, err = strconv.ParseInt(token, 0, 32)
		out = int32(i)
	case int64:
		out, err = strconv.ParseInt(token, 0, 64)
	case uint:
		var u uint64
		u, err = strconv.ParseUint(token, 0, strconv.IntSize)
		out = uint(u)
	case uint8:
		var u uint64
		u, err = strconv.ParseUint(token, 0, 8)
		out = uint8(u)
	case uint16:
		var u uint64
		u, err = strconv.ParseUint(token, 0, 16)
		out = uint16(u)
	case uint32:
		var u uint64
		u, err = strconv.ParseUint(token, 0, 32)
		out = uint32(u)
	case uint64:
		out, err = strconv.ParseUint(token, 0, 64)
	case float32:
		var f float64
		f, err = strconv.ParseFloat(token, 32)
		out = float32(f)
	case float64:
		out, err = strconv.ParseFloat(token, 64)
	default:
		return zero, &ParseError{
			Type:    ErrorTypeCannotParse,
			Message: "no parser registered for kind " + reflect.TypeFor[T]().String(),
		}
	}

	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
