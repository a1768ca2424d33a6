package cli

// Default values for CLI flags and formatted output.
const (
	// MaxSummaryLength is the maximum length of a mod summary in tables.
	MaxSummaryLength = 50
	// MaxNameLength is the maximum length of a mod name in tables.
	MaxNameLength = 32
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)
