package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldFile is the structured log field key for an ingested file path.
	FieldFile = "file"
	// FieldCollection is the structured log field key naming which collection
	// a file holds (jobseekers or jobs).
	FieldCollection = "collection"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CollectionFields returns standard zap fields that describe an ingested
// collection and the file it came from. Empty values are ignored to keep log
// entries compact when information is missing.
func CollectionFields(file, collection string) []zap.Field {
	return StringFields(
		StringField{Key: FieldFile, Value: file},
		StringField{Key: FieldCollection, Value: collection},
	)
}

// WithCollectionFields attaches the collection fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithCollectionFields(logger *zap.Logger, file, collection string) *zap.Logger {
	fields := CollectionFields(file, collection)
	return WithFields(logger, fields...)
}
