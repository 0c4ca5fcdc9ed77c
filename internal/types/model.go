package types

// FieldDef declares one field of a model in configuration
type FieldDef struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`         // Input type (text, number, checkbox, ...; default: text)
	Required bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"` // NOT NULL column on the server
}

// ModelDef declares a model served by the CRUD server and edited by the panel
type ModelDef struct {
	Name   string     `json:"name" yaml:"name" mapstructure:"name"`
	Fields []FieldDef `json:"fields" yaml:"fields" mapstructure:"fields"`
}

// InputType returns the declared input type, defaulting to text
func (f FieldDef) InputType() string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

// FormInputs returns the model's fields as form inputs in declaration order
func (m ModelDef) FormInputs() []Field {
	inputs := make([]Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		inputs = append(inputs, Field{Name: f.Name, InputType: f.InputType()})
	}
	return inputs
}

// HasField reports whether the model declares a field with the given name
func (m ModelDef) HasField(name string) bool {
	for _, f := range m.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
