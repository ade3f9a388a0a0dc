package signer

// Signer signs repository metadata. Composed repositories ship a detached
// armored signature next to repomd.xml so consumers can verify the index.
type Signer interface {
	// SignDetached creates a detached armored signature (repomd.xml.asc)
	SignDetached(data []byte) ([]byte, error)

	// PublicKey returns the armored public key for distribution
	PublicKey() ([]byte, error)
}
