package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for devices and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single air-to-air unit.
// This is keyed by the unit's serial number in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	Room     string    `yaml:"room,omitempty"`      // Room or zone the unit serves
	Notes    string    `yaml:"notes,omitempty"`     // Free-form notes
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last time a snapshot for this unit was inspected

	// Snapshot file paths last inspected for this unit.
	StatePath string `yaml:"state_path,omitempty"`
	ConfPath  string `yaml:"conf_path,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultFormat string `yaml:"default_format"` // Output format when --format is not given
}

// DefaultOutputFormat is used when no preference has been saved.
const DefaultOutputFormat = "detailed"

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			DefaultFormat: DefaultOutputFormat,
		},
	}
}

// GetDevice retrieves device metadata by serial number.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(serial string) *Device {
	return r.Devices[serial]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(serial string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[serial]; exists {
		return device
	}

	device := &Device{}
	r.Devices[serial] = device
	return device
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(serial, nickname string) {
	device := r.EnsureDevice(serial)
	device.Nickname = nickname
}

// SetDeviceRoom records the room or zone a unit serves.
func (r *Registry) SetDeviceRoom(serial, room string) {
	device := r.EnsureDevice(serial)
	device.Room = room
}

// UpdateSnapshotPaths records the snapshot files last inspected for a device
// and refreshes its last-seen timestamp.
func (r *Registry) UpdateSnapshotPaths(serial, statePath, confPath string) {
	device := r.EnsureDevice(serial)
	device.StatePath = statePath
	device.ConfPath = confPath
	device.LastSeen = time.Now()
}

// DisplayName returns the nickname if one is set, or the fallback otherwise.
func (d *Device) DisplayName(fallback string) string {
	if d != nil && d.Nickname != "" {
		return d.Nickname
	}
	return fallback
}
