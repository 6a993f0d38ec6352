package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/eleven-am/latentfmt/internal/domain"
)

var (
	ErrUnknownNode  = errors.New("unknown node class")
	ErrInvalidInput = errors.New("invalid node input")
)

type Handler func(in domain.Inputs) (domain.NodeOutput, error)

type Registry struct {
	order    []string
	defs     map[string]domain.NodeDefinition
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]domain.NodeDefinition),
		handlers: make(map[string]Handler),
	}
}

// Register adds or replaces a class. Registration order is kept for listings.
func (r *Registry) Register(def domain.NodeDefinition, h Handler) {
	if _, exists := r.defs[def.Class]; !exists {
		r.order = append(r.order, def.Class)
	}
	r.defs[def.Class] = def
	r.handlers[def.Class] = h
}

func (r *Registry) Definition(class string) (domain.NodeDefinition, bool) {
	def, ok := r.defs[class]
	return def, ok
}

func (r *Registry) Definitions() []domain.NodeDefinition {
	out := make([]domain.NodeDefinition, 0, len(r.order))
	for _, class := range r.order {
		out = append(out, r.defs[class])
	}
	return out
}

func (r *Registry) DisplayNames() map[string]string {
	out := make(map[string]string, len(r.defs))
	for class, def := range r.defs {
		out[class] = def.DisplayName
	}
	return out
}

func (r *Registry) Execute(class string, inputs domain.Inputs) (domain.NodeOutput, error) {
	def, ok := r.Definition(class)
	if !ok {
		return domain.NodeOutput{}, fmt.Errorf("%w: %q", ErrUnknownNode, class)
	}
	bound, err := Bind(def, inputs)
	if err != nil {
		return domain.NodeOutput{}, fmt.Errorf("%s: %w", class, err)
	}
	return r.handlers[class](bound)
}

// Bind fills missing inputs from their defaults and coerces host values to
// int or string. Bounds are left to the host widgets; unknown combo values
// pass through so the handler can apply its fallback.
func Bind(def domain.NodeDefinition, inputs domain.Inputs) (domain.Inputs, error) {
	out := make(domain.Inputs, len(def.Inputs))
	for _, spec := range def.Inputs {
		raw, ok := inputs[spec.Name]
		if !ok || raw == nil {
			raw = spec.Default
		}
		switch spec.Type {
		case domain.InputInt:
			n, err := toInt(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, spec.Name, err)
			}
			out[spec.Name] = n
		default:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected string, got %T", ErrInvalidInput, spec.Name, raw)
			}
			out[spec.Name] = s
		}
	}
	return out, nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		if n >= float64(math.MaxInt) || n < float64(math.MinInt) {
			return 0, fmt.Errorf("%v is out of range", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n.String())
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

// Int and String read values produced by Bind.
func Int(in domain.Inputs, name string) int {
	n, _ := in[name].(int)
	return n
}

func String(in domain.Inputs, name string) string {
	s, _ := in[name].(string)
	return s
}
