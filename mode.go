package envskema

// DefaultModeVar is the variable that selects the execution mode unless
// WithModeVar says otherwise.
const DefaultModeVar = "APP_ENV"

// ModeClass is the classification of a Mode.
type ModeClass int

const (
	Unclassified ModeClass = iota
	Production
	Development
	Test
)

func (c ModeClass) String() string {
	switch c {
	case Production:
		return "production"
	case Development:
		return "development"
	case Test:
		return "test"
	}
	return "unclassified"
}

// Mode is the execution mode of one parse call.
type Mode struct {
	name   string
	class  ModeClass
	strict bool
}

// DetectMode reads the mode variable from raw. An empty value counts as
// unset. With strict set, an unset or unrecognized mode no longer counts as
// development.
func DetectMode(raw map[string]string, modeVar string, strict bool) Mode {
	name := raw[modeVar]
	m := Mode{name: name, strict: strict}
	switch name {
	case "production":
		m.class = Production
	case "development":
		m.class = Development
	case "test":
		m.class = Test
	}
	return m
}

// Name is the raw mode value ("" when unset).
func (m Mode) Name() string { return m.name }

// Class is the classification of the mode.
func (m Mode) Class() ModeClass { return m.class }

func (m Mode) IsProduction() bool { return m.class == Production }

func (m Mode) IsTest() bool { return m.class == Test }

// IsDevelopment reports a development mode. Unclassified modes count unless
// strict classification was requested.
func (m Mode) IsDevelopment() bool {
	return m.class == Development || (m.class == Unclassified && !m.strict)
}

func (m Mode) String() string {
	if m.name == "" {
		return m.class.String()
	}
	return m.name
}
