package config

// Sanitized returns a copy of the configuration safe to expose over the
// API: the provider key is masked, never echoed back.
func (c *Config) Sanitized() Config {
	out := *c
	if out.Assistant.Completion.APIKey != "" {
		out.Assistant.Completion.APIKey = "***"
	}
	return out
}

// CredentialConfigured reports whether a provider key is present in the
// environment or config file.
func (c *Config) CredentialConfigured() bool {
	return c.Assistant.Completion.APIKey != ""
}
