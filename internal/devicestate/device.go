package devicestate

import (
	"encoding/json"
	"fmt"
)

// RawState is the last device-state snapshot reported by the cloud service,
// keyed by raw field name. It is owned by the caller's device session and
// replaced wholesale on each refresh; this package only reads it.
type RawState map[string]any

// RawConfig is the static configuration document for one physical unit,
// including the "Device" capability section. It is immutable for the unit's
// lifetime and owned by the caller.
type RawConfig map[string]any

// Device exposes semantic read accessors over one state snapshot and one
// configuration document. A Device is a cheap view: it copies nothing and
// performs no I/O. Pass nil for state when no snapshot has been fetched yet;
// accessors then report the unknown result instead of failing.
type Device struct {
	state RawState
	conf  RawConfig
}

// New creates a device view over the given snapshot and configuration.
func New(state RawState, conf RawConfig) *Device {
	return &Device{state: state, conf: conf}
}

// SetState replaces the state snapshot, typically after the cloud client has
// fetched a fresh one.
func (d *Device) SetState(state RawState) {
	d.state = state
}

// ParseState decodes a raw device-state JSON document as persisted by a
// cloud client.
func ParseState(data []byte) (RawState, error) {
	var state RawState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse device state: %w", err)
	}
	return state, nil
}

// ParseConfig decodes a raw device-configuration JSON document.
func ParseConfig(data []byte) (RawConfig, error) {
	var conf RawConfig
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse device configuration: %w", err)
	}
	return conf, nil
}

// Name returns the user-assigned device name from the configuration, or ""
// if absent.
func (d *Device) Name() string {
	s, _ := d.conf["DeviceName"].(string)
	return s
}

// SerialNumber returns the unit serial number from the configuration, or ""
// if absent.
func (d *Device) SerialNumber() string {
	s, _ := d.conf["SerialNumber"].(string)
	return s
}

// MACAddress returns the unit MAC address from the configuration, or "" if
// absent.
func (d *Device) MACAddress() string {
	s, _ := d.conf["MacAddress"].(string)
	return s
}

// DeviceID returns the cloud service's device identifier, or nil if absent.
func (d *Device) DeviceID() *int64 {
	if n, ok := numberValue(d.conf["DeviceID"]); ok {
		id := int64(n)
		return &id
	}
	return nil
}

// Power returns the power on / standby state of the device.
func (d *Device) Power() *bool {
	if d.state == nil {
		return nil
	}
	if on, ok := d.state["Power"].(bool); ok {
		return &on
	}
	return nil
}

// TotalEnergyConsumed returns the total consumed energy as kWh, derived from
// the configuration document's Wh counter.
func (d *Device) TotalEnergyConsumed() *float64 {
	if d.conf == nil {
		return nil
	}
	reading, ok := numberValue(d.deviceSection()["CurrentEnergyConsumed"])
	if !ok {
		return nil
	}
	kwh := reading / 1000.0
	return &kwh
}

// Temperature returns the room temperature reported by the device.
func (d *Device) Temperature() *float64 {
	return d.stateFloat("RoomTemperature")
}

// TargetTemperature returns the target temperature set for the device.
func (d *Device) TargetTemperature() *float64 {
	return d.stateFloat("SetTemperature")
}

// TargetTemperatureStep returns the target temperature set precision.
func (d *Device) TargetTemperatureStep() *float64 {
	if d.state == nil {
		return nil
	}
	step := 0.5
	if v, ok := numberValue(d.deviceSection()["TemperatureIncrement"]); ok {
		step = v
	}
	return &step
}

// Per-mode configuration fields holding the target temperature bounds. The
// device exposes no fan-only bounds, so fan-only and undefined fall back to
// the heat bounds.
var (
	minTempField = map[OperationMode]string{
		OperationModeHeat:      "MinTempHeat",
		OperationModeDry:       "MinTempCoolDry",
		OperationModeCool:      "MinTempCoolDry",
		OperationModeFanOnly:   "MinTempHeat",
		OperationModeHeatCool:  "MinTempAutomatic",
		OperationModeUndefined: "MinTempHeat",
	}
	maxTempField = map[OperationMode]string{
		OperationModeHeat:      "MaxTempHeat",
		OperationModeDry:       "MaxTempCoolDry",
		OperationModeCool:      "MaxTempCoolDry",
		OperationModeFanOnly:   "MaxTempHeat",
		OperationModeHeatCool:  "MaxTempAutomatic",
		OperationModeUndefined: "MaxTempHeat",
	}
)

// Default bounds for units whose configuration omits the per-mode fields.
const (
	defaultMinTemp = 10.0
	defaultMaxTemp = 31.0
)

// TargetTemperatureMin returns the minimum target temperature for the
// currently active operation mode.
func (d *Device) TargetTemperatureMin() *float64 {
	return d.temperatureBound(minTempField, defaultMinTemp)
}

// TargetTemperatureMax returns the maximum target temperature for the
// currently active operation mode.
func (d *Device) TargetTemperatureMax() *float64 {
	return d.temperatureBound(maxTempField, defaultMaxTemp)
}

func (d *Device) temperatureBound(fields map[OperationMode]string, fallback float64) *float64 {
	if d.state == nil {
		return nil
	}
	bound := fallback
	if v, ok := numberValue(d.deviceSection()[fields[d.OperationMode()]]); ok {
		bound = v
	}
	return &bound
}

// OperationMode returns the currently active operation mode. With no snapshot
// the result is OperationModeUndefined rather than nil: unlike the other
// accessors, operation mode always has a defined sentinel.
func (d *Device) OperationMode() OperationMode {
	if d.state == nil {
		return OperationModeUndefined
	}
	return OperationMode(operationModeTable.decode(d.stateInt("OperationMode", -1)))
}

// operationModeCatalog fixes the order of the available-modes list. Modes
// with an empty capability key are unconditionally available.
var operationModeCatalog = []struct {
	mode       OperationMode
	capability string
}{
	{OperationModeHeat, "CanHeat"},
	{OperationModeDry, "CanDry"},
	{OperationModeCool, "CanCool"},
	{OperationModeFanOnly, ""},
	{OperationModeHeatCool, "ModelSupportsAuto"},
}

// OperationModes returns the operation modes available on this unit, in
// catalog order.
func (d *Device) OperationModes() []OperationMode {
	modes := make([]OperationMode, 0, len(operationModeCatalog))
	for _, entry := range operationModeCatalog {
		if entry.capability == "" || d.deviceBool(entry.capability) {
			modes = append(modes, entry.mode)
		}
	}
	return modes
}

// FanSpeed returns the currently active fan speed.
func (d *Device) FanSpeed() *FanSpeed {
	if d.state == nil {
		return nil
	}
	code, ok := numberValue(d.state["SetFanSpeed"])
	if !ok {
		return nil
	}
	speed := decodeFanSpeed(int(code))
	return &speed
}

// FanSpeeds returns the fan speeds available on this unit: the automatic
// speed when the unit supports one, then one templated token per reported
// speed step. The result is nil (not empty) when no snapshot has been
// fetched, distinguishing "no snapshot yet" from a unit with zero speeds.
func (d *Device) FanSpeeds() []FanSpeed {
	if d.state == nil {
		return nil
	}
	speeds := []FanSpeed{}
	if d.deviceBool("HasAutomaticFanSpeed") {
		speeds = append(speeds, FanSpeedAuto)
	}
	for step := 1; step <= d.stateInt("NumberOfFanSpeeds", 0); step++ {
		speeds = append(speeds, FanSpeedOf(step))
	}
	return speeds
}

// VaneHorizontal returns the horizontal vane position.
func (d *Device) VaneHorizontal() *VanePosition {
	if d.state == nil {
		return nil
	}
	position := VanePosition(vaneHorizontalTable.decode(d.stateInt("VaneHorizontal", -1)))
	return &position
}

// VaneVertical returns the vertical vane position.
func (d *Device) VaneVertical() *VanePosition {
	if d.state == nil {
		return nil
	}
	position := VanePosition(vaneVerticalTable.decode(d.stateInt("VaneVertical", -1)))
	return &position
}

// Fixed position catalogs per vane axis; swing is appended separately since
// it depends on the SwingFunction capability.
var (
	vaneHorizontalCatalog = []VanePosition{
		VaneHorizontalAuto,
		VaneHorizontal1,
		VaneHorizontal2,
		VaneHorizontal3,
		VaneHorizontal4,
		VaneHorizontal5,
		VaneHorizontalSplit,
	}
	vaneVerticalCatalog = []VanePosition{
		VaneVerticalAuto,
		VaneVertical1,
		VaneVertical2,
		VaneVertical3,
		VaneVertical4,
		VaneVertical5,
	}
)

// VaneHorizontalPositions returns the horizontal vane positions available on
// this unit. The list is empty when the configuration hides vane controls or
// the model has no horizontal vane.
func (d *Device) VaneHorizontalPositions() []VanePosition {
	return d.vanePositions(vaneHorizontalCatalog, "ModelSupportsVaneHorizontal", VaneHorizontalSwing)
}

// VaneVerticalPositions returns the vertical vane positions available on
// this unit. The list is empty when the configuration hides vane controls or
// the model has no vertical vane.
func (d *Device) VaneVerticalPositions() []VanePosition {
	return d.vanePositions(vaneVerticalCatalog, "ModelSupportsVaneVertical", VaneVerticalSwing)
}

func (d *Device) vanePositions(catalog []VanePosition, supportKey string, swing VanePosition) []VanePosition {
	if d.confBool("HideVaneControls") || !d.deviceBool(supportKey) {
		return []VanePosition{}
	}
	positions := append([]VanePosition{}, catalog...)
	if d.deviceBool("SwingFunction") {
		positions = append(positions, swing)
	}
	return positions
}

// deviceSection returns the capability section of the configuration
// document, or nil if absent.
func (d *Device) deviceSection() map[string]any {
	section, _ := d.conf["Device"].(map[string]any)
	return section
}

func (d *Device) deviceBool(key string) bool {
	b, _ := d.deviceSection()[key].(bool)
	return b
}

func (d *Device) confBool(key string) bool {
	b, _ := d.conf[key].(bool)
	return b
}

func (d *Device) stateFloat(key string) *float64 {
	if d.state == nil {
		return nil
	}
	if v, ok := numberValue(d.state[key]); ok {
		return &v
	}
	return nil
}

func (d *Device) stateInt(key string, fallback int) int {
	if v, ok := numberValue(d.state[key]); ok {
		return int(v)
	}
	return fallback
}

// numberValue normalizes the numeric types seen in decoded JSON documents
// and in caller-constructed mappings.
func numberValue(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
