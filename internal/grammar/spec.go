package grammar

// Spec is the structured grammar input the builder consumes — a plain,
// serializable description, never grammar source text (that remains an
// external, pluggable concern per the parse-runtime's Lexer contract).
type Spec struct {
	Name  string `json:"name"`
	Start string `json:"start"`

	// Productions lists every alternative under its LHS. An alternative
	// is a sequence of terminal/non-terminal names; the reserved name
	// "error" designates the error symbol.
	Productions []ProductionSpec `json:"productions"`

	// Precedence lists operator groups from lowest to highest priority.
	Precedence []PrecedenceGroupSpec `json:"precedence"`
}

type ProductionSpec struct {
	LHS          string     `json:"lhs"`
	Alternatives [][]string `json:"alternatives"`

	// Prec overrides precedence inheritance for each alternative by
	// index; a missing or empty entry means "inherit from the
	// right-most terminal".
	Prec []string `json:"prec,omitempty"`
}

type PrecedenceGroupSpec struct {
	Assoc   string   `json:"assoc"` // "left", "right", "nonassoc"
	Symbols []string `json:"symbols"`
}

const errorSymbolName = "error"
