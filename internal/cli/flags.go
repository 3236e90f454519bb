package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Words      []string
	WordsFile  string
	Workers    int
	DryRun     bool
	NoProgress bool
	ListModels bool
	Verbose    bool

	// Dictionary flags
	DictPath string
	DictURL  string

	// Translation flags
	TargetLang string
	Provider   string
	Model      string
	SkipFailed bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		TargetLang: "zh-CN",
		Provider:   "openai",
	}
}
