package node

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/eleven-am/latentfmt/internal/domain"
)

// Output record field names expected by latent consumers in the host.
const (
	FieldSamples = "samples"
	FieldFrames  = "frames"
)

type inputGroups struct {
	Required map[string][]interface{} `json:"required"`
}

type objectInfo struct {
	Input        inputGroups         `json:"input"`
	InputOrder   map[string][]string `json:"input_order"`
	Output       []domain.OutputType `json:"output"`
	OutputIsList []bool              `json:"output_is_list"`
	OutputName   []string            `json:"output_name"`
	Name         string              `json:"name"`
	DisplayName  string              `json:"display_name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	OutputNode   bool                `json:"output_node"`
}

func describeInput(spec domain.InputSpec) []interface{} {
	opts := map[string]interface{}{"default": spec.Default}
	switch spec.Type {
	case domain.InputInt:
		opts["min"] = spec.Min
		opts["max"] = spec.Max
		opts["step"] = spec.Step
		if spec.Display != "" {
			opts["display"] = spec.Display
		}
		return []interface{}{string(domain.InputInt), opts}
	case domain.InputCombo:
		options := make([]string, len(spec.Options))
		copy(options, spec.Options)
		return []interface{}{options, opts}
	default:
		return []interface{}{string(spec.Type), opts}
	}
}

func describe(def domain.NodeDefinition) objectInfo {
	required := make(map[string][]interface{}, len(def.Inputs))
	order := make([]string, 0, len(def.Inputs))
	for _, spec := range def.Inputs {
		required[spec.Name] = describeInput(spec)
		order = append(order, spec.Name)
	}
	return objectInfo{
		Input:        inputGroups{Required: required},
		InputOrder:   map[string][]string{"required": order},
		Output:       def.Outputs,
		OutputIsList: make([]bool, len(def.Outputs)),
		OutputName:   def.OutputNames,
		Name:         def.Class,
		DisplayName:  def.DisplayName,
		Description:  def.Description,
		Category:     def.Category,
	}
}

// ObjectInfo renders every registered class in the host's object-info shape.
// Map keys are sorted; widget order travels in input_order.
func (r *Registry) ObjectInfo() ([]byte, error) {
	all := make(map[string]objectInfo, len(r.defs))
	for class, def := range r.defs {
		all[class] = describe(def)
	}
	b, err := sonic.ConfigStd.MarshalIndent(all, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("node: marshal object info: %w", err)
	}
	return b, nil
}

type samplesSummary struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
}

type latentSummary struct {
	ID      string         `json:"id,omitempty"`
	Samples samplesSummary `json:"samples"`
	Frames  int            `json:"frames"`
}

// EncodeOutput summarizes a latent output as JSON. The buffer itself is
// described by shape and dtype, not serialized.
func EncodeOutput(l *domain.Latent) ([]byte, error) {
	if l == nil || l.Samples == nil {
		return nil, fmt.Errorf("%w: empty latent", ErrInvalidInput)
	}
	b, err := sonic.ConfigStd.Marshal(latentSummary{
		ID:      l.ID,
		Samples: samplesSummary{Shape: l.Samples.Shape, DType: "float32"},
		Frames:  l.Frames,
	})
	if err != nil {
		return nil, fmt.Errorf("node: marshal output: %w", err)
	}
	return b, nil
}

// Record returns the output in the host's record shape.
func Record(l *domain.Latent) map[string]interface{} {
	return map[string]interface{}{
		FieldSamples: l.Samples,
		FieldFrames:  l.Frames,
	}
}
