package models

// ComposeConfig contains configuration for a repository compose run
type ComposeConfig struct {
	// Input/Output
	InputDir  string
	OutputDir string

	// Arches are the architecture trees to compose. Source packages go
	// into an SRPMS tree regardless.
	Arches []string

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
