package logger

// Output controls what categories of information the CLI prints at each
// verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - rendered source, errors with hints, final status
//	1 (-v)      - + files written, watch events
//	2 (-vv)     - + import resolution, timing, config loaded
//	3 (-vvv)    - + fragment dumps of every declaration

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Rendered source
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress    // Files written
	OutputWatchEvents // Watcher re-renders

	// Level 2 (-vv) - Detailed
	OutputImports // Import resolution and collisions
	OutputTiming  // Render timing
	OutputConfig  // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputDeclarations // Per-declaration rendering
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:    VerbosityInfo,
	OutputWatchEvents: VerbosityInfo,

	OutputImports: VerbosityDebug,
	OutputTiming:  VerbosityDebug,
	OutputConfig:  VerbosityDebug,

	OutputDeclarations: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:      "results",
	OutputErrors:       "errors",
	OutputUserStatus:   "status",
	OutputProgress:     "progress",
	OutputWatchEvents:  "watch",
	OutputImports:      "imports",
	OutputTiming:       "timing",
	OutputConfig:       "config",
	OutputDeclarations: "declarations",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
