package config

// Values bound to the cli flags.
var (
	ConfigFile string
	Verbose    bool
	Network    string
	OutputFile string

	Candidates     []string
	DefaultNetwork string
	JSONOutput     bool
)
