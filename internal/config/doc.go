// Package config provides user configuration management for the melair project.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for air-to-air units, including nicknames, room
// assignments, last-used snapshot paths, and application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/melair/config.yaml or $HOME/.config/melair/config.yaml
//   - macOS: $HOME/.config/melair/config.yaml
//   - Windows: %LOCALAPPDATA%\melair\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores cloud credentials or session tokens.
// Authentication belongs entirely to the external cloud client.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update device metadata
//	registry.SetDeviceNickname("1812-231-045", "Living Room Unit")
//	registry.UpdateSnapshotPaths("1812-231-045", "state.json", "conf.json")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
