package devicestate

import (
	"fmt"
	"sort"
	"strings"
)

// unknownValue is rendered for accessors that have no snapshot to read from.
const unknownValue = "unknown"

// Summary returns a one-line summary of the device state
func (d *Device) Summary() string {
	name := d.Name()
	if name == "" {
		name = "Air-to-air unit"
	}
	return fmt.Sprintf("%s: power %s, %s, target %s (room %s)",
		name,
		formatPower(d.Power()),
		d.OperationMode(),
		formatTemperature(d.TargetTemperature()),
		formatTemperature(d.Temperature()))
}

// FormatDeviceInfo returns a formatted string with device identification information
func (d *Device) FormatDeviceInfo() string {
	var b strings.Builder

	b.WriteString("=== Device Information ===\n")
	b.WriteString(fmt.Sprintf("Name:          %s\n", orPlaceholder(d.Name())))
	b.WriteString(fmt.Sprintf("Serial Number: %s\n", orPlaceholder(d.SerialNumber())))
	b.WriteString(fmt.Sprintf("MAC Address:   %s\n", orPlaceholder(d.MACAddress())))
	if id := d.DeviceID(); id != nil {
		b.WriteString(fmt.Sprintf("Device ID:     %d\n", *id))
	}

	return b.String()
}

// FormatClimate returns a formatted string with the current climate state
func (d *Device) FormatClimate() string {
	var b strings.Builder

	b.WriteString("=== Climate State ===\n")
	b.WriteString(fmt.Sprintf("Power:              %s\n", formatPower(d.Power())))
	b.WriteString(fmt.Sprintf("Operation Mode:     %s\n", d.OperationMode()))
	b.WriteString(fmt.Sprintf("Room Temperature:   %s\n", formatTemperature(d.Temperature())))
	b.WriteString(fmt.Sprintf("Target Temperature: %s (step %s, range %s..%s)\n",
		formatTemperature(d.TargetTemperature()),
		formatFloat(d.TargetTemperatureStep()),
		formatFloat(d.TargetTemperatureMin()),
		formatFloat(d.TargetTemperatureMax())))
	b.WriteString(fmt.Sprintf("Fan Speed:          %s\n", formatFanSpeed(d.FanSpeed())))
	b.WriteString(fmt.Sprintf("Vane Horizontal:    %s\n", formatVane(d.VaneHorizontal())))
	b.WriteString(fmt.Sprintf("Vane Vertical:      %s\n", formatVane(d.VaneVertical())))
	if kwh := d.TotalEnergyConsumed(); kwh != nil {
		b.WriteString(fmt.Sprintf("Energy Consumed:    %.3f kWh\n", *kwh))
	}

	return b.String()
}

// FormatCapabilities returns a formatted string with the unit's available
// modes, fan speeds, and vane positions
func (d *Device) FormatCapabilities() string {
	var b strings.Builder

	b.WriteString("=== Capabilities ===\n")
	b.WriteString(fmt.Sprintf("Operation Modes: %s\n", joinModes(d.OperationModes())))

	speeds := d.FanSpeeds()
	if speeds == nil {
		b.WriteString(fmt.Sprintf("Fan Speeds:      %s (no snapshot)\n", unknownValue))
	} else {
		b.WriteString(fmt.Sprintf("Fan Speeds:      %s\n", joinFanSpeeds(speeds)))
	}

	b.WriteString(fmt.Sprintf("Vane Horizontal: %s\n", joinVanes(d.VaneHorizontalPositions())))
	b.WriteString(fmt.Sprintf("Vane Vertical:   %s\n", joinVanes(d.VaneVerticalPositions())))

	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with all state details
func (d *Device) FormatDetailed() string {
	var b strings.Builder

	b.WriteString(d.FormatDeviceInfo())
	b.WriteString("\n")
	b.WriteString(d.FormatClimate())
	b.WriteString("\n")
	b.WriteString(d.FormatCapabilities())

	return b.String()
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (d *Device) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Device: %s (serial: %s)\n", orPlaceholder(d.Name()), orPlaceholder(d.SerialNumber())))
	b.WriteString(fmt.Sprintf("State:  power %s, %s, %s -> %s\n",
		formatPower(d.Power()),
		d.OperationMode(),
		formatTemperature(d.Temperature()),
		formatTemperature(d.TargetTemperature())))
	b.WriteString(fmt.Sprintf("Air:    fan %s, vanes [h:%s] [v:%s]\n",
		formatFanSpeed(d.FanSpeed()),
		formatVane(d.VaneHorizontal()),
		formatVane(d.VaneVertical())))

	return b.String()
}

// FormatChanges returns a formatted string showing the raw fields a patch
// will submit and the accumulated dirty-bit mask
func (p Patch) FormatChanges() string {
	var b strings.Builder

	b.WriteString("=== Pending Patch ===\n")

	fields := make([]string, 0, len(p))
	for field := range p {
		if field == EffectiveFlags {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	if len(fields) == 0 {
		b.WriteString("(no pending writes)\n")
		return b.String()
	}

	for _, field := range fields {
		b.WriteString(fmt.Sprintf("  %-16s %v\n", field+":", p[field]))
	}
	b.WriteString(fmt.Sprintf("  %-16s 0x%02X\n", EffectiveFlags+":", p.Flags()))

	return b.String()
}

func formatPower(on *bool) string {
	if on == nil {
		return unknownValue
	}
	if *on {
		return "on"
	}
	return "standby"
}

func formatTemperature(t *float64) string {
	if t == nil {
		return unknownValue
	}
	return fmt.Sprintf("%.1f°C", *t)
}

func formatFloat(v *float64) string {
	if v == nil {
		return unknownValue
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatFanSpeed(speed *FanSpeed) string {
	if speed == nil {
		return unknownValue
	}
	return string(*speed)
}

func formatVane(position *VanePosition) string {
	if position == nil {
		return unknownValue
	}
	return string(*position)
}

func joinModes(modes []OperationMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return joinOrNone(parts)
}

func joinFanSpeeds(speeds []FanSpeed) string {
	parts := make([]string, len(speeds))
	for i, s := range speeds {
		parts[i] = string(s)
	}
	return joinOrNone(parts)
}

func joinVanes(positions []VanePosition) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = string(p)
	}
	return joinOrNone(parts)
}

func joinOrNone(parts []string) string {
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, ", ")
}

func orPlaceholder(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
