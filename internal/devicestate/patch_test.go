package devicestate

import (
	"reflect"
	"testing"
)

func TestNewPatch(t *testing.T) {
	patch := NewPatch()

	if len(patch) != 0 {
		t.Errorf("NewPatch() has %d entries, want 0", len(patch))
	}
	if patch.Flags() != 0 {
		t.Errorf("NewPatch().Flags() = %#x, want 0", patch.Flags())
	}
}

func TestApplyWriteSingleProperties(t *testing.T) {
	tests := []struct {
		name     string
		property Property
		value    any
		field    string
		raw      any
		flag     int64
	}{
		{"power on", PropertyPower, true, "Power", true, 0x01},
		{"power off", PropertyPower, false, "Power", false, 0x01},
		{"target temperature", PropertyTargetTemperature, 21.5, "SetTemperature", 21.5, 0x04},
		{"target temperature int", PropertyTargetTemperature, 22, "SetTemperature", 22.0, 0x04},
		{"operation mode", PropertyOperationMode, "heat", "OperationMode", 1, 0x02},
		{"operation mode typed", PropertyOperationMode, OperationModeHeatCool, "OperationMode", 8, 0x02},
		{"fan speed auto", PropertyFanSpeed, "auto", "SetFanSpeed", 0, 0x08},
		{"fan speed step", PropertyFanSpeed, FanSpeed("speed-3"), "SetFanSpeed", 3, 0x08},
		{"vane horizontal", PropertyVaneHorizontal, "swing", "VaneHorizontal", 12, 0x100},
		{"vane horizontal split", PropertyVaneHorizontal, VaneHorizontalSplit, "VaneHorizontal", 8, 0x100},
		{"vane vertical", PropertyVaneVertical, "swing", "VaneVertical", 7, 0x10},
		{"vane vertical down", PropertyVaneVertical, VaneVertical5, "VaneVertical", 5, 0x10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := NewPatch()

			if err := ApplyWrite(patch, tt.property, tt.value); err != nil {
				t.Fatalf("ApplyWrite() error = %v", err)
			}

			if got := patch[tt.field]; !reflect.DeepEqual(got, tt.raw) {
				t.Errorf("patch[%q] = %v (%T), want %v (%T)", tt.field, got, got, tt.raw, tt.raw)
			}
			if patch.Flags() != tt.flag {
				t.Errorf("Flags() = %#x, want %#x", patch.Flags(), tt.flag)
			}
			if len(patch) != 2 {
				t.Errorf("patch has %d entries, want field + flags", len(patch))
			}
		})
	}
}

func TestApplyWriteAccumulatesFlags(t *testing.T) {
	patch := NewPatch()

	if err := ApplyWrite(patch, PropertyPower, true); err != nil {
		t.Fatalf("ApplyWrite(power) error = %v", err)
	}
	if err := ApplyWrite(patch, PropertyTargetTemperature, 20.0); err != nil {
		t.Fatalf("ApplyWrite(target_temperature) error = %v", err)
	}

	if patch.Flags() != 0x05 {
		t.Errorf("Flags() = %#x, want 0x05", patch.Flags())
	}
	if on, ok := patch["Power"].(bool); !ok || !on {
		t.Errorf("patch[Power] = %v, want true", patch["Power"])
	}
	if temp, ok := patch["SetTemperature"].(float64); !ok || temp != 20.0 {
		t.Errorf("patch[SetTemperature] = %v, want 20.0", patch["SetTemperature"])
	}
}

func TestApplyWriteMergesExistingFlags(t *testing.T) {
	// A patch rehydrated from JSON carries its mask as float64. The flag for
	// a new write must be OR-ed into it, never replace it.
	patch := Patch{
		"SetFanSpeed":  2,
		EffectiveFlags: float64(0x08),
	}

	if err := ApplyWrite(patch, PropertyPower, true); err != nil {
		t.Fatalf("ApplyWrite() error = %v", err)
	}

	if patch.Flags() != 0x09 {
		t.Errorf("Flags() = %#x, want 0x09", patch.Flags())
	}
	if patch["SetFanSpeed"] != 2 {
		t.Errorf("patch[SetFanSpeed] = %v, want 2", patch["SetFanSpeed"])
	}
}

func TestApplyWriteInvalidProperty(t *testing.T) {
	patch := NewPatch()
	if err := ApplyWrite(patch, PropertyPower, true); err != nil {
		t.Fatalf("ApplyWrite(power) error = %v", err)
	}

	err := ApplyWrite(patch, Property("swing_mode"), "on")
	if err == nil {
		t.Fatal("ApplyWrite() expected error for unknown property")
	}
	if !IsInvalidProperty(err) {
		t.Errorf("error = %v, want InvalidProperty", err)
	}
	if IsInvalidValue(err) {
		t.Error("InvalidProperty error should not classify as InvalidValue")
	}

	// Prior writes stand, nothing new was added.
	want := Patch{"Power": true, EffectiveFlags: int64(0x01)}
	if !reflect.DeepEqual(patch, want) {
		t.Errorf("patch = %v, want %v", patch, want)
	}
}

func TestApplyWriteInvalidValue(t *testing.T) {
	tests := []struct {
		name     string
		property Property
		value    any
	}{
		{"undefined mode", PropertyOperationMode, "undefined"},
		{"unknown mode", PropertyOperationMode, "defrost"},
		{"non-token mode", PropertyOperationMode, 3},
		{"non-bool power", PropertyPower, 1},
		{"non-numeric temperature", PropertyTargetTemperature, "warm"},
		{"malformed fan speed", PropertyFanSpeed, "speed-fast"},
		{"unknown horizontal vane", PropertyVaneHorizontal, "6"},
		{"vertical-only token on horizontal", PropertyVaneHorizontal, "1-up"},
		{"horizontal-only token on vertical", PropertyVaneVertical, "split"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := NewPatch()

			err := ApplyWrite(patch, tt.property, tt.value)
			if err == nil {
				t.Fatal("ApplyWrite() expected error")
			}
			if !IsInvalidValue(err) {
				t.Errorf("error = %v, want InvalidValue", err)
			}
			if len(patch) != 0 {
				t.Errorf("patch modified on error: %v", patch)
			}
		})
	}
}

func TestApplyWriteFullBatch(t *testing.T) {
	patch := NewPatch()

	writes := []struct {
		property Property
		value    any
	}{
		{PropertyPower, true},
		{PropertyOperationMode, "cool"},
		{PropertyTargetTemperature, 23.0},
		{PropertyFanSpeed, "speed-2"},
		{PropertyVaneHorizontal, "auto"},
		{PropertyVaneVertical, "1-up"},
	}
	for _, w := range writes {
		if err := ApplyWrite(patch, w.property, w.value); err != nil {
			t.Fatalf("ApplyWrite(%s) error = %v", w.property, err)
		}
	}

	if patch.Flags() != 0x11F {
		t.Errorf("Flags() = %#x, want 0x11f", patch.Flags())
	}

	want := Patch{
		"Power":          true,
		"OperationMode":  3,
		"SetTemperature": 23.0,
		"SetFanSpeed":    2,
		"VaneHorizontal": 0,
		"VaneVertical":   1,
		EffectiveFlags:   int64(0x11F),
	}
	if !reflect.DeepEqual(patch, want) {
		t.Errorf("patch = %v, want %v", patch, want)
	}
}

func TestHasPending(t *testing.T) {
	patch := NewPatch()

	if patch.HasPending(PropertyPower) {
		t.Error("fresh patch reports pending power write")
	}

	if err := ApplyWrite(patch, PropertyPower, true); err != nil {
		t.Fatalf("ApplyWrite() error = %v", err)
	}
	if err := ApplyWrite(patch, PropertyVaneHorizontal, "swing"); err != nil {
		t.Fatalf("ApplyWrite() error = %v", err)
	}

	if !patch.HasPending(PropertyPower) {
		t.Error("HasPending(power) = false after write")
	}
	if !patch.HasPending(PropertyVaneHorizontal) {
		t.Error("HasPending(vane_horizontal) = false after write")
	}
	if patch.HasPending(PropertyFanSpeed) {
		t.Error("HasPending(fan_speed) = true without a write")
	}
	if patch.HasPending(Property("swing_mode")) {
		t.Error("HasPending() accepted an unknown property")
	}
}
