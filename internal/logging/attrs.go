package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCatalog is the standardized structured logging key for catalog identities (e.g. en-all).
	FieldCatalog = "catalog"
	// FieldURL is the standardized structured logging key for remote URLs.
	FieldURL = "url"
	// FieldPath is the standardized structured logging key for local file paths.
	FieldPath = "path"
)

// NewComponentLogger creates a logger with a standardized component
// attribute. If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
