package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dzonerzy/go-clamp/clamp"
)

// Struct tags understood by FromStruct:
//
//	flag:"name,positional"  long name and placement; "-" skips the field
//	short:"t"               single-character short name
//	desc:"..."              description
//	default:"..."           textual default, parsed by the value
//	behavior:"multi"        set behavior (first, last, multi)
//	delims:";"              splitting characters for multi values
//	max:"4"                 slot capacity
//	group:"..."             option group label
//
// Slice fields get multi behavior automatically.

type fieldSpec struct {
	index      int
	long       string
	short      rune
	desc       string
	defText    string
	behavior   string
	delims     string
	max        int
	group      string
	positional bool
	elem       reflect.Kind
	isSlice    bool
}

// FromStruct derives a command from the exported fields of target, which
// must be a pointer to a struct. Each field becomes an option, or a
// positional value when the flag tag says so. The returned command is not
// yet initialized, so callers can still attach sub-commands before Init.
func FromStruct(name, description string, target any) (*clamp.Command, error) {
	fields, err := structFields(target)
	if err != nil {
		return nil, err
	}

	cmd := clamp.NewCommand(name, description)
	for _, f := range fields {
		val, err := buildFieldValue(f)
		if err != nil {
			return nil, err
		}
		if f.positional {
			cmd.AddValue(val)
			continue
		}
		opt := clamp.NewOption(f.long, f.desc, val).WithLong(f.long)
		if f.short != 0 {
			opt.WithShort(f.short)
		}
		if f.group != "" {
			opt.WithGroup(f.group)
		}
		cmd.AddOption(opt)
	}
	return cmd, nil
}

// Extract writes the parsed state of cmd back into target, which must be
// the same struct shape FromStruct derived the command from. Unset fields
// without defaults are left untouched.
func Extract(cmd *clamp.Command, target any) error {
	fields, err := structFields(target)
	if err != nil {
		return err
	}

	sv := reflect.ValueOf(target).Elem()
	for _, f := range fields {
		var val clamp.Value
		if f.positional {
			v, err := cmd.Val(f.long)
			if err != nil {
				return err
			}
			val = v
		} else {
			o, err := cmd.Opt(f.long)
			if err != nil {
				return err
			}
			val = o.Val
		}
		if !val.IsSet() && !val.HasDefault() {
			continue
		}
		if err := assignField(sv.Field(f.index), f, val); err != nil {
			return err
		}
	}
	return nil
}

func structFields(target any) ([]fieldSpec, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: target must be a pointer to a struct, got %T", target)
	}
	rt := rv.Elem().Type()

	var fields []fieldSpec
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, skip, err := parseField(sf, i)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseField(sf reflect.StructField, index int) (fieldSpec, bool, error) {
	f := fieldSpec{index: index, long: strings.ToLower(sf.Name)}

	if tag, ok := sf.Tag.Lookup("flag"); ok {
		name, opts := splitTag(tag)
		if name == "-" {
			return f, true, nil
		}
		if name != "" {
			f.long = name
		}
		f.positional = opts["positional"]
	}
	if s := sf.Tag.Get("short"); s != "" {
		runes := []rune(s)
		if len(runes) != 1 {
			return f, false, fmt.Errorf("schema: field %s: short must be a single character, got %q", sf.Name, s)
		}
		f.short = runes[0]
	}
	f.desc = sf.Tag.Get("desc")
	f.defText = sf.Tag.Get("default")
	f.behavior = sf.Tag.Get("behavior")
	f.delims = sf.Tag.Get("delims")
	f.group = sf.Tag.Get("group")
	if m := sf.Tag.Get("max"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			return f, false, fmt.Errorf("schema: field %s: invalid max %q", sf.Name, m)
		}
		f.max = n
	}

	ft := sf.Type
	if ft.Kind() == reflect.Slice {
		f.isSlice = true
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.Bool, reflect.String, reflect.Int, reflect.Int64,
		reflect.Uint, reflect.Uint64, reflect.Float64:
		f.elem = ft.Kind()
	default:
		return f, false, fmt.Errorf("schema: field %s has unsupported type %s", sf.Name, sf.Type)
	}
	return f, false, nil
}

func splitTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	opts := make(map[string]bool, len(parts))
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			opts[p] = true
		}
	}
	return strings.TrimSpace(parts[0]), opts
}

func buildFieldValue(f fieldSpec) (clamp.Value, error) {
	spec := &ValueSpec{
		Name:        f.long,
		Description: f.desc,
		Kind:        kindName(f.elem),
		Behavior:    f.behavior,
		Delims:      f.delims,
		Max:         f.max,
		Default:     f.defText,
	}
	if f.isSlice && spec.Behavior == "" {
		spec.Behavior = "multi"
	}
	return buildValue(spec)
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "bool"
	case reflect.Int:
		return "int"
	case reflect.Int64:
		return "int64"
	case reflect.Uint:
		return "uint"
	case reflect.Uint64:
		return "uint64"
	case reflect.Float64:
		return "float64"
	default:
		return "string"
	}
}

// assignField copies the parsed value into one struct field, going through
// the kind-specific accessors so stored and requested kinds always agree.
func assignField(fv reflect.Value, f fieldSpec, val clamp.Value) error {
	if f.isSlice {
		return assignSlice(fv, f, val)
	}
	switch f.elem {
	case reflect.Bool:
		b, err := clamp.Get[bool](val)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.String:
		s, err := clamp.Get[string](val)
		if err != nil {
			return err
		}
		fv.SetString(s)
	case reflect.Int:
		n, err := clamp.Get[int](val)
		if err != nil {
			return err
		}
		fv.SetInt(int64(n))
	case reflect.Int64:
		n, err := clamp.Get[int64](val)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint:
		n, err := clamp.Get[uint](val)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(n))
	case reflect.Uint64:
		n, err := clamp.Get[uint64](val)
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float64:
		x, err := clamp.Get[float64](val)
		if err != nil {
			return err
		}
		fv.SetFloat(x)
	}
	return nil
}

func assignSlice(fv reflect.Value, f fieldSpec, val clamp.Value) error {
	switch f.elem {
	case reflect.String:
		xs, err := clamp.GetAll[string](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Bool:
		xs, err := clamp.GetAll[bool](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Int:
		xs, err := clamp.GetAll[int](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Int64:
		xs, err := clamp.GetAll[int64](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Uint:
		xs, err := clamp.GetAll[uint](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Uint64:
		xs, err := clamp.GetAll[uint64](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	case reflect.Float64:
		xs, err := clamp.GetAll[float64](val)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(xs))
	}
	return nil
}
