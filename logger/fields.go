package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldPackage   = "package"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"

	// Files
	FieldFile   = "file"
	FieldModule = "module"

	// Emitter-specific
	FieldSymbol  = "symbol"  // Short name of a referenced symbol
	FieldImports = "imports" // Number of import statements in a file
	FieldKept    = "kept"    // Module whose import won a name collision
	FieldDropped = "dropped" // Module whose import lost a name collision
)

// Context keys for propagating logging context
type contextKey string

const (
	fileKey      contextKey = "logger_file"
	componentKey contextKey = "logger_component"
)

// WithFile adds the file being generated to the context for logging
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileKey, file)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if file, ok := ctx.Value(fileKey).(string); ok && file != "" {
		fields = append(fields, FieldFile, file)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("poet.file")
//	log.Debugw("rendered file", logger.FieldFile, name)
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
