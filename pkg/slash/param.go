package slash

// DefaultValue carries default-value metadata for a parameter. At most one
// field is set, matching the parameter's type. A parameter with a default is
// never marked required on the wire.
type DefaultValue struct {
	Int    *int64
	Number *float64
	Bool   *bool
	String *string
	Enum   *string // constant name; empty string selects the first declared constant
}

// IntDefault returns default metadata for an integer parameter.
func IntDefault(v int64) *DefaultValue { return &DefaultValue{Int: &v} }

// NumberDefault returns default metadata for a number parameter.
func NumberDefault(v float64) *DefaultValue { return &DefaultValue{Number: &v} }

// BoolDefault returns default metadata for a boolean parameter.
func BoolDefault(v bool) *DefaultValue { return &DefaultValue{Bool: &v} }

// StringDefault returns default metadata for a string parameter.
func StringDefault(v string) *DefaultValue { return &DefaultValue{String: &v} }

// EnumDefault returns default metadata for an enum parameter. An empty name
// selects the first declared constant.
func EnumDefault(name string) *DefaultValue { return &DefaultValue{Enum: &name} }

// AutocompleteFunc produces live suggestions for a focused option. The
// handler is expected to respond to the interaction itself (usually with
// ctx.RespondChoices).
type AutocompleteFunc func(*Context) error

// Param describes one declared command parameter. Params are owned by their
// command and immutable once the command is registered.
type Param struct {
	Name        string
	Description string
	Type        TypeInfo

	// Default is optional; when set the wire option is not required and the
	// value is substituted for absent raw input.
	Default *DefaultValue

	// MinCount/MaxCount fan a slice parameter out into MaxCount numbered
	// wire options (name1..nameN), the first MinCount of them required.
	// Ignored for non-slice types. MaxCount zero keeps a single option.
	MinCount int
	MaxCount int

	// Autocomplete marks the option as autocompletable and handles focused
	// suggestion requests.
	Autocomplete AutocompleteFunc
}

// required reports whether the wire option should be marked required:
// optional-wrapped types and defaulted parameters are not.
func (p *Param) required() bool {
	return p.Type.Kind != KindOptional && p.Default == nil
}
