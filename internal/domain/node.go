package domain

type InputType string

const (
	InputInt    InputType = "INT"
	InputCombo  InputType = "COMBO"
	InputString InputType = "STRING"
)

type OutputType string

const (
	OutputLatent OutputType = "LATENT"
	OutputString OutputType = "STRING"
)

type InputSpec struct {
	Name    string
	Type    InputType
	Default interface{}
	Min     int
	Max     int
	Step    int
	Display string
	Options []string
}

type NodeDefinition struct {
	Class       string
	DisplayName string
	Category    string
	Description string
	Inputs      []InputSpec
	Outputs     []OutputType
	OutputNames []string
}

type Inputs map[string]interface{}

type NodeOutput struct {
	Latent *Latent
	Text   string
}
