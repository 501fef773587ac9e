package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// useTempConfigDir points the registry at a temporary directory for the
// duration of the test.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("LOCALAPPDATA", tmpDir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", tmpDir)
	}
	return tmpDir
}

func TestGetConfigDir(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if !strings.HasPrefix(configDir, tmpDir) {
		t.Errorf("config dir %q not under temp dir %q", configDir, tmpDir)
	}
	if filepath.Base(configDir) != appName {
		t.Errorf("config dir base = %q, want %q", filepath.Base(configDir), appName)
	}
}

func TestGetConfigPath(t *testing.T) {
	useTempConfigDir(t)

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != configFile {
		t.Errorf("config path base = %q, want %q", filepath.Base(configPath), configFile)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	useTempConfigDir(t)

	registry, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}
	if registry.Version != 1 {
		t.Errorf("Version = %d, want 1", registry.Version)
	}
	if len(registry.Devices) != 0 {
		t.Errorf("expected empty device map, got %d entries", len(registry.Devices))
	}
	if registry.Preferences == nil {
		t.Fatal("expected default preferences to be set")
	}
	if registry.Preferences.DefaultFormat != DefaultOutputFormat {
		t.Errorf("DefaultFormat = %q, want %q", registry.Preferences.DefaultFormat, DefaultOutputFormat)
	}
}

func TestSaveAndReload(t *testing.T) {
	useTempConfigDir(t)

	registry := NewRegistry()
	device := registry.EnsureDevice("1812-231-045")
	device.Nickname = "Living Room"
	device.Room = "downstairs"
	device.LastSeen = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	registry.Preferences.DefaultFormat = "compact"

	if err := registry.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}

	got := loaded.GetDevice("1812-231-045")
	if got == nil {
		t.Fatal("device not found after reload")
	}
	if got.Nickname != "Living Room" {
		t.Errorf("Nickname = %q, want %q", got.Nickname, "Living Room")
	}
	if got.Room != "downstairs" {
		t.Errorf("Room = %q, want %q", got.Room, "downstairs")
	}
	if loaded.Preferences.DefaultFormat != "compact" {
		t.Errorf("DefaultFormat = %q, want %q", loaded.Preferences.DefaultFormat, "compact")
	}
}

func TestSaveWritesHeaderComment(t *testing.T) {
	useTempConfigDir(t)

	registry := NewRegistry()
	if err := registry.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# melair Configuration File") {
		t.Error("expected header comment at top of config file")
	}
	if strings.Contains(string(data), "password") || strings.Contains(string(data), "token:") {
		t.Error("config file must not contain credential fields")
	}
}

func TestLoadRegistryBadVersion(t *testing.T) {
	useTempConfigDir(t)

	if err := ensureConfigDir(); err != nil {
		t.Fatalf("ensureConfigDir() error = %v", err)
	}
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if err := os.WriteFile(configPath, []byte("version: 99\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err = loadRegistryFromDisk()
	if err == nil {
		t.Fatal("expected error for unsupported config version")
	}
	if !strings.Contains(err.Error(), "unsupported config version") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRegistryInvalidYAML(t *testing.T) {
	useTempConfigDir(t)

	if err := ensureConfigDir(); err != nil {
		t.Fatalf("ensureConfigDir() error = %v", err)
	}
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if err := os.WriteFile(configPath, []byte("{not valid yaml"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err = loadRegistryFromDisk()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEnsureDeviceIdempotent(t *testing.T) {
	registry := NewRegistry()

	first := registry.EnsureDevice("serial-1")
	first.Nickname = "Bedroom"

	second := registry.EnsureDevice("serial-1")
	if second.Nickname != "Bedroom" {
		t.Errorf("EnsureDevice returned a new entry, nickname = %q", second.Nickname)
	}
	if len(registry.Devices) != 1 {
		t.Errorf("expected 1 device, got %d", len(registry.Devices))
	}
}

func TestDisplayName(t *testing.T) {
	device := &Device{}
	if got := device.DisplayName("Living Room"); got != "Living Room" {
		t.Errorf("DisplayName fallback = %q, want %q", got, "Living Room")
	}

	device.Nickname = "Lounge"
	if got := device.DisplayName("Living Room"); got != "Lounge" {
		t.Errorf("DisplayName = %q, want %q", got, "Lounge")
	}
}
