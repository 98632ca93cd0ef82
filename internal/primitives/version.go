// Package primitives provides versioning utilities for ProfileConfig.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a version for a profile.
// Priority: user-provided config.Version, else SHA256(config JSON)[:8] + timestamp.
func ComputeVersion(config *ProfileConfig) string {
	if config.Version != "" {
		return config.Version
	}

	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", hash[:8], time.Now().UTC().Format("20060102T150405Z"))
}

// Fingerprint is the content hash part of ComputeVersion, stable across time.
// Used to tell whether a reloaded profile actually changed.
func Fingerprint(config *ProfileConfig) string {
	data, err := json.Marshal(config)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
