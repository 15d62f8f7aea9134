package gates

import "strings"

// Info describes a gate kind for spawn buttons and node rendering.
type Info struct {
	Kind     Kind
	Name     string // Canonical name (save files, lookups)
	Legacy   string // Older save-file name, accepted on load
	Title    string // Display title on the node body
	Symbol   string // IEC symbol drawn inside the gate
	Image    string // Asset file for the gate body, empty for plain boxes
	Category string // Grouping for spawn menus
}

// Registry holds display metadata for every gate kind.
// It is populated statically so spawn menus and the solution loader share one
// name table.
type Registry struct {
	infos  []Info
	byName map[string]Info
}

// NewRegistry creates a registry with all catalog kinds.
func NewRegistry() *Registry {
	reg := &Registry{
		byName: make(map[string]Info),
	}
	reg.registerDefaults()
	return reg
}

func (r *Registry) registerDefaults() {
	// Terminals
	r.Register(Info{Kind: Input, Name: "Input", Legacy: "InputNode", Title: "Input", Category: "terminal"})
	r.Register(Info{Kind: Output, Name: "Output", Legacy: "OutputNode", Title: "LED", Category: "terminal"})

	// Basic gates
	r.Register(Info{Kind: And, Name: "And", Legacy: "AndNode", Title: "AND", Symbol: "&", Image: "IEC_2in_1out_neg0.svg", Category: "basic"})
	r.Register(Info{Kind: Or, Name: "Or", Legacy: "OrNode", Title: "OR", Symbol: "≥1", Image: "IEC_2in_1out_neg0.svg", Category: "basic"})
	r.Register(Info{Kind: Not, Name: "Not", Legacy: "NotNode", Title: "NOT", Symbol: "1", Image: "IEC_1in_1out_neg1.svg", Category: "basic"})

	// Negated gates
	r.Register(Info{Kind: Nand, Name: "Nand", Legacy: "NandNode", Title: "NAND", Symbol: "&", Image: "IEC_2in_1out_neg1.svg", Category: "negated"})
	r.Register(Info{Kind: Nor, Name: "Nor", Legacy: "NorNode", Title: "NOR", Symbol: "≥1", Image: "IEC_2in_1out_neg1.svg", Category: "negated"})

	// Exclusive gates
	r.Register(Info{Kind: Xor, Name: "Xor", Legacy: "XorNode", Title: "XOR", Symbol: "=1", Image: "IEC_2in_1out_neg0.svg", Category: "exclusive"})
	r.Register(Info{Kind: Xnor, Name: "Xnor", Legacy: "XnorNode", Title: "XNOR", Symbol: "=1", Image: "IEC_2in_1out_neg1.svg", Category: "exclusive"})
}

// Register adds a kind to the registry under its canonical and legacy names.
func (r *Registry) Register(info Info) {
	r.infos = append(r.infos, info)
	r.byName[strings.ToLower(info.Name)] = info
	if info.Legacy != "" {
		r.byName[strings.ToLower(info.Legacy)] = info
	}
}

// Lookup returns the kind registered under name. Names are matched
// case-insensitively against both canonical and legacy names.
func (r *Registry) Lookup(name string) (Info, bool) {
	info, ok := r.byName[strings.ToLower(name)]
	return info, ok
}

// Info returns metadata for a kind.
func (r *Registry) Info(k Kind) (Info, bool) {
	for _, info := range r.infos {
		if info.Kind == k {
			return info, true
		}
	}
	return Info{}, false
}

// All returns registered kinds in registration order.
func (r *Registry) All() []Info {
	return r.infos
}

// SpawnLabel returns the spawn-button text for a kind, e.g. "Add NAND".
func (r *Registry) SpawnLabel(k Kind) string {
	if info, ok := r.Info(k); ok {
		return "Add " + info.Title
	}
	return "Add " + k.String()
}

var defaultRegistry = NewRegistry()

// Default returns the shared built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// ParseKind resolves a kind name using the built-in registry.
// Unknown names report false; loaders skip them.
func ParseKind(name string) (Kind, bool) {
	info, ok := defaultRegistry.Lookup(name)
	if !ok {
		return 0, false
	}
	return info.Kind, true
}
