package epa

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Module names a registered model and carries its free-form parameters.
// It decodes from YAML as a mapping holding a "name" key next to the parameters:
//
//	flux:
//	  name: grid
//	  path: flux.grid
//	  modelling: {name: "gmgm:lp"}
type Module struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

// NewModule returns a module with the given name and no parameters.
func NewModule(name string) Module {
	return Module{Name: name, Params: map[string]any{}}
}

// Empty reports whether the module carries neither a name nor parameters.
func (m Module) Empty() bool {
	return m.Name == "" && len(m.Params) == 0
}

// Clone returns a copy of m whose parameter map can be modified independently.
// Nested maps are shared.
func (m Module) Clone() Module {
	out := Module{Name: m.Name, Params: make(map[string]any, len(m.Params))}
	maps.Copy(out.Params, m.Params)
	return out
}

// Set returns a copy of m with key set to value.
func (m Module) Set(key string, value any) Module {
	out := m.Clone()
	out.Params[key] = value
	return out
}

// Has reports whether key is set.
func (m Module) Has(key string) bool {
	_, ok := m.Params[key]
	return ok
}

// Inherit returns a copy of m completed with every parameter of parent that m
// does not set itself. The parent's name and its "modelling" sub-module are not
// inherited.
func (m Module) Inherit(parent Module) Module {
	out := m.Clone()
	for k, v := range parent.Params {
		if k == "modelling" {
			continue
		}
		if _, ok := out.Params[k]; !ok {
			out.Params[k] = v
		}
	}
	return out
}

// Keys returns the sorted parameter names.
func (m Module) Keys() []string {
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Module) String() string {
	var sb strings.Builder
	sb.WriteString("Module{name:")
	sb.WriteString(m.Name)
	for _, k := range m.Keys() {
		fmt.Fprintf(&sb, ", %s:%v", k, m.Params[k])
	}
	sb.WriteString("}")
	return sb.String()
}

func (m Module) typeError(key, want string, v any) error {
	return fmt.Errorf("%w: parameter %q of module %q: expected %s, got %T", ErrConfiguration, key, m.Name, want, v)
}

// Float returns the numeric parameter key, or def when unset.
func (m Module) Float(key string, def float64) (float64, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return def, m.typeError(key, "a number", v)
	}
	return f, nil
}

// Int returns the integer parameter key, or def when unset.
func (m Module) Int(key string, def int) (int, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return def, m.typeError(key, "an integer", v)
}

// Bool returns the boolean parameter key, or def when unset.
func (m Module) Bool(key string, def bool) (bool, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, m.typeError(key, "a boolean", v)
	}
	return b, nil
}

// Str returns the string parameter key, or def when unset.
func (m Module) Str(key string, def string) (string, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, m.typeError(key, "a string", v)
	}
	return s, nil
}

// Range returns the two-element numeric parameter key, or def when unset.
func (m Module) Range(key string, def Range) (Range, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	var lims []float64
	switch l := v.(type) {
	case Range:
		return l, nil
	case []float64:
		lims = l
	case []any:
		for _, e := range l {
			f, ok := toFloat(e)
			if !ok {
				return def, m.typeError(key, "a pair of numbers", v)
			}
			lims = append(lims, f)
		}
	default:
		return def, m.typeError(key, "a pair of numbers", v)
	}
	if len(lims) != 2 {
		return def, fmt.Errorf("%w: parameter %q of module %q: expected 2 limits, got %d", ErrConfiguration, key, m.Name, len(lims))
	}
	return Range{Lo: lims[0], Hi: lims[1]}, nil
}

// Ints returns the integer list parameter key, or def when unset.
func (m Module) Ints(key string, def []int) ([]int, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return def, nil
	}
	switch l := v.(type) {
	case []int:
		return l, nil
	case []any:
		out := make([]int, 0, len(l))
		for _, e := range l {
			n, err := Module{Name: m.Name, Params: map[string]any{key: e}}.Int(key, 0)
			if err != nil {
				return def, m.typeError(key, "a list of integers", v)
			}
			out = append(out, n)
		}
		return out, nil
	}
	return def, m.typeError(key, "a list of integers", v)
}

// Sub returns the nested module stored under key. An unset key yields an empty module.
func (m Module) Sub(key string) (Module, error) {
	v, ok := m.Params[key]
	if !ok || v == nil {
		return Module{}, nil
	}
	var raw map[string]any
	switch s := v.(type) {
	case Module:
		return s.Clone(), nil
	case map[string]any:
		raw = s
	default:
		return Module{}, m.typeError(key, "a module", v)
	}
	out := Module{Params: make(map[string]any, len(raw))}
	for k, e := range raw {
		if k == "name" {
			name, ok := e.(string)
			if !ok {
				return Module{}, m.typeError(key+".name", "a string", e)
			}
			out.Name = name
			continue
		}
		out.Params[k] = e
	}
	return out, nil
}

// Reader returns a ParamReader over m.
func (m Module) Reader() *ParamReader {
	return &ParamReader{m: m}
}

// ParamReader reads several parameters of a module and keeps the first error,
// so constructors can read all their settings before checking once with Err.
type ParamReader struct {
	m   Module
	err error
}

func (r *ParamReader) keep(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *ParamReader) Float(key string, def float64) float64 {
	v, err := r.m.Float(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Int(key string, def int) int {
	v, err := r.m.Int(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Bool(key string, def bool) bool {
	v, err := r.m.Bool(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Str(key string, def string) string {
	v, err := r.m.Str(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Range(key string, def Range) Range {
	v, err := r.m.Range(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Ints(key string, def []int) []int {
	v, err := r.m.Ints(key, def)
	r.keep(err)
	return v
}

func (r *ParamReader) Sub(key string) Module {
	v, err := r.m.Sub(key)
	r.keep(err)
	return v
}

// Err returns the first error met while reading.
func (r *ParamReader) Err() error { return r.err }

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Range is a closed interval [Lo, Hi].
type Range struct {
	Lo, Hi float64
}

// Valid reports whether the range is non-empty and ordered.
func (r Range) Valid() bool { return r.Lo < r.Hi }

// Contains reports whether x lies inside the range, bounds included.
func (r Range) Contains(x float64) bool { return x >= r.Lo && x <= r.Hi }

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Lo, r.Hi) }
