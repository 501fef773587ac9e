package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/melair/internal/config"
	"github.com/muurk/melair/internal/devicestate"
	"github.com/muurk/melair/internal/logging"
	"github.com/muurk/melair/internal/ui"
	"github.com/muurk/melair/internal/wizard/tui"
)

// Snapshot command flags
var (
	statePath    string
	confPath     string
	outputFormat string
)

func init() {
	// Common flags for snapshot commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the device state snapshot (JSON)")
	rootCmd.PersistentFlags().StringVar(&confPath, "conf", "", "Path to the device configuration snapshot (JSON)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (detailed, compact, json)")

	// Add subcommands directly to root
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(wizardCmd)
}

// loadDevice builds a device from the snapshot flags. The configuration
// document is required; the state document is optional and its absence
// leaves the operational accessors unknown.
func loadDevice() (*devicestate.Device, error) {
	if confPath == "" {
		return nil, fmt.Errorf("no configuration snapshot specified, use --conf <file>")
	}

	confData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration snapshot: %w", err)
	}
	conf, err := devicestate.ParseConfig(confData)
	if err != nil {
		return nil, err
	}

	var state devicestate.RawState
	if statePath != "" {
		stateData, err := os.ReadFile(statePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read state snapshot: %w", err)
		}
		state, err = devicestate.ParseState(stateData)
		if err != nil {
			return nil, err
		}
	}

	device := devicestate.New(state, conf)
	logging.LogSnapshot(confPath, device.SerialNumber(), len(state))

	rememberDevice(device)
	return device, nil
}

// rememberDevice records the snapshot paths and last-seen time in the
// registry. Registry trouble is logged, never fatal.
func rememberDevice(device *devicestate.Device) {
	serial := device.SerialNumber()
	if serial == "" {
		return
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("registry unavailable: " + err.Error())
		return
	}

	registry.UpdateSnapshotPaths(serial, statePath, confPath)
	if err := registry.Save(); err != nil {
		logging.Warn("failed to save registry: " + err.Error())
	}
}

// resolveFormat applies the registry's default when no --format was given
func resolveFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
		if registry.Preferences.DefaultFormat != "" {
			return registry.Preferences.DefaultFormat
		}
	}
	return config.DefaultOutputFormat
}

// showCmd displays the decoded device snapshot
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show decoded device state",
	Long: `Display the decoded state of an air-to-air unit.

Reads the state and configuration snapshots and renders the semantic
values: power, operation mode, room and target temperature, fan speed,
and vane positions. Fields absent from the snapshot display as unknown.`,
	Example: `  # Detailed view
  melair-cfg show --state state.json --conf conf.json

  # Compact one-line summary
  melair-cfg show --state state.json --conf conf.json --format compact

  # Raw decoded values for scripting
  melair-cfg show --state state.json --conf conf.json --format json

  # Configuration document only (operational values show as unknown)
  melair-cfg show --conf conf.json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	device, err := loadDevice()
	if err != nil {
		return err
	}

	switch resolveFormat() {
	case "compact":
		fmt.Println(device.FormatCompact())
	case "json":
		data, err := json.MarshalIndent(decodedValues(device), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "detailed":
		fallthrough
	default:
		fmt.Println(device.FormatDetailed())
	}

	return nil
}

// decodedValues flattens the semantic accessors into a JSON-friendly map.
// Unknown values come out as nulls rather than being omitted.
func decodedValues(device *devicestate.Device) map[string]any {
	return map[string]any{
		"name":                    device.Name(),
		"serial_number":           device.SerialNumber(),
		"mac_address":             device.MACAddress(),
		"device_id":               device.DeviceID(),
		"power":                   device.Power(),
		"operation_mode":          device.OperationMode(),
		"room_temperature":        device.Temperature(),
		"target_temperature":      device.TargetTemperature(),
		"target_temperature_min":  device.TargetTemperatureMin(),
		"target_temperature_max":  device.TargetTemperatureMax(),
		"target_temperature_step": device.TargetTemperatureStep(),
		"fan_speed":               device.FanSpeed(),
		"vane_horizontal":         device.VaneHorizontal(),
		"vane_vertical":           device.VaneVertical(),
		"total_energy_consumed":   device.TotalEnergyConsumed(),
	}
}

// capabilitiesCmd lists the values the unit accepts for each property
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List supported modes, fan speeds, and vane positions",
	Long: `List the values this unit accepts for each writable property.

Operation modes and vane positions come from the configuration document's
capability flags. Fan speeds additionally need a state snapshot, since the
speed count lives in the state document; without one they are reported as
unknown.`,
	Example: `  melair-cfg capabilities --state state.json --conf conf.json

  # Without a state snapshot fan speeds are unknown
  melair-cfg capabilities --conf conf.json`,
	RunE: runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	device, err := loadDevice()
	if err != nil {
		return err
	}

	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
		Title:   "Device Capabilities",
		Command: "melair-cfg capabilities",
		Params: map[string]string{
			"Device": device.Name(),
			"Serial": device.SerialNumber(),
		},
	}))
	fmt.Println()
	fmt.Println(device.FormatCapabilities())

	return nil
}

// patchCmd builds a write patch from property=value arguments
var patchCmd = &cobra.Command{
	Use:   "patch <property=value> [property=value ...]",
	Short: "Build a write patch from property assignments",
	Long: `Build a write patch from one or more property assignments.

Each assignment is validated and encoded into the raw fields the cloud
expects, and the patch's effective-flags mask accumulates one dirty bit
per property. The finished patch is printed as JSON for a cloud client
to submit; nothing is sent anywhere.

Properties:
  power               on, off, true, false
  operation_mode      heat, dry, cool, fan-only, heat-cool
  target_temperature  numeric, e.g. 21.5
  fan_speed           auto, speed-1, speed-2, ...
  vane_horizontal     1-left ... 5-right, split, swing
  vane_vertical       1-up ... 5-down, swing`,
	Example: `  # Heat to 22 degrees
  melair-cfg patch operation_mode=heat target_temperature=22

  # Power off
  melair-cfg patch power=off

  # Full reconfiguration in one batch
  melair-cfg patch power=on operation_mode=cool target_temperature=24 \
      fan_speed=auto vane_horizontal=swing vane_vertical=1-up`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPatch,
}

func runPatch(cmd *cobra.Command, args []string) error {
	patch := devicestate.NewPatch()

	for _, arg := range args {
		property, raw, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("invalid assignment %q, expected property=value", arg)
		}

		value, err := coerceValue(devicestate.Property(property), raw)
		if err != nil {
			return err
		}

		if err := devicestate.ApplyWrite(patch, devicestate.Property(property), value); err != nil {
			fmt.Println(ui.RenderFailure("Patch rejected", err, []string{
				"Run 'melair-cfg capabilities' to list accepted values",
				"Check the property name against 'melair-cfg patch --help'",
			}))
			return fmt.Errorf("invalid assignment %q", arg)
		}
		logging.LogPatchWrite(property, value, patch.Flags())
	}

	fmt.Println(patch.FormatChanges())
	fmt.Println()

	data, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// coerceValue converts a command-line string into the dynamic type the
// property expects.
func coerceValue(property devicestate.Property, raw string) (any, error) {
	switch property {
	case devicestate.PropertyPower:
		switch strings.ToLower(raw) {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("power accepts on/off/true/false, got %q", raw)
		}
		return on, nil

	case devicestate.PropertyTargetTemperature:
		temp, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("target_temperature expects a number, got %q", raw)
		}
		return temp, nil

	default:
		return raw, nil
	}
}

// deviceCmd groups registry commands for known devices
var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage the local device registry",
	Long: `Manage the local registry of known units.

The registry stores user-assigned metadata per serial number: a nickname,
a room, and the snapshot paths last used with the unit. It lives in the
user configuration directory and never holds cloud credentials.`,
}

func init() {
	deviceCmd.AddCommand(deviceListCmd)
	deviceCmd.AddCommand(deviceNicknameCmd)
	deviceCmd.AddCommand(deviceRoomCmd)
}

// deviceListCmd lists registry entries
var deviceListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List known devices",
	Example: `  melair-cfg device list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		if len(registry.Devices) == 0 {
			fmt.Println("No devices known yet.")
			fmt.Println("Run 'melair-cfg show --state <file> --conf <file>' to register one.")
			return nil
		}

		serials := make([]string, 0, len(registry.Devices))
		for serial := range registry.Devices {
			serials = append(serials, serial)
		}
		sort.Strings(serials)

		for i, serial := range serials {
			entry := registry.Devices[serial]
			fmt.Printf("%d. %s\n", i+1, entry.DisplayName(serial))
			fmt.Printf("   Serial: %s\n", serial)
			if entry.Room != "" {
				fmt.Printf("   Room:   %s\n", entry.Room)
			}
			if !entry.LastSeen.IsZero() {
				fmt.Printf("   Seen:   %s\n", entry.LastSeen.Format(time.RFC3339))
			}
			if entry.StatePath != "" || entry.ConfPath != "" {
				fmt.Printf("   Snapshots: %s %s\n", entry.StatePath, entry.ConfPath)
			}
			fmt.Println()
		}

		return nil
	},
}

// deviceNicknameCmd assigns a nickname to a serial
var deviceNicknameCmd = &cobra.Command{
	Use:     "nickname <serial> <name>",
	Short:   "Set a device nickname",
	Example: `  melair-cfg device nickname 1812-231-045 "Living Room"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		registry.SetDeviceNickname(args[0], args[1])
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("✓ %s is now %q\n", args[0], args[1])
		return nil
	},
}

// deviceRoomCmd assigns a room to a serial
var deviceRoomCmd = &cobra.Command{
	Use:     "room <serial> <room>",
	Short:   "Set a device room",
	Example: `  melair-cfg device room 1812-231-045 downstairs`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}

		registry.SetDeviceRoom(args[0], args[1])
		if err := registry.Save(); err != nil {
			return err
		}

		fmt.Printf("✓ %s is in %q\n", args[0], args[1])
		return nil
	},
}

// wizardCmd launches the interactive TUI patch builder
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive patch wizard",
	Long: `Launch an interactive TUI for building a write patch.

The wizard shows the unit's current values, offers only the properties
and values the unit supports, validates temperatures against the active
mode's bounds, and prints the confirmed patch as JSON.`,
	Example: `  melair-cfg wizard --state state.json --conf conf.json
  # Or simply (wizard is default):
  melair-cfg --state state.json --conf conf.json`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	device, err := loadDevice()
	if err != nil {
		return err
	}

	patch, err := tui.Run(device)
	if err != nil {
		return err
	}
	if patch == nil {
		fmt.Println("No changes made.")
		return nil
	}

	fmt.Println(ui.RenderSuccess("Patch prepared", map[string]string{
		"Device": device.Name(),
		"Serial": device.SerialNumber(),
		"Flags":  fmt.Sprintf("0x%02X", patch.Flags()),
	}))
	fmt.Println()

	data, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}
	fmt.Println(string(data))

	return nil
}
