package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns a SHA-256 hash of the configuration as WriteConfig would
// serialize it. Two configurations with the same settings and routers in the
// same order hash equally, regardless of formatting or comments in the file.
func (c *Config) Hash() (string, error) {
	data, err := c.SerializeConfig()
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	sum := sha256.Sum256(data.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
