//go:build unit || e2e

package testutil

// Field sets a wire field on a DtoMap payload; a nil value removes the
// field entirely, for testing required-field validation.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
