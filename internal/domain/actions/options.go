// Package actions resolves marketing action recommendations for RFV scores.
package actions

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithOverrides merges entries over the built-in catalog. Empty actions
// remove the score from the catalog so it falls back to the default.
func WithOverrides(entries map[string]string) Option {
	return func(c *Catalog) {
		for score, action := range entries {
			if action == "" {
				delete(c.entries, score)
				continue
			}
			c.entries[score] = action
		}
	}
}

// WithDefault replaces the fallback action for unmapped scores.
func WithDefault(action string) Option {
	return func(c *Catalog) {
		if action != "" {
			c.fallback = action
		}
	}
}
