package devicestate

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	state, conf := parseFixtures(t)
	device := New(state, conf)

	summary := device.Summary()
	for _, want := range []string{"Living Room", "on", "cool", "21.0°C", "22.5°C"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
}

func TestSummaryWithoutSnapshot(t *testing.T) {
	summary := New(nil, nil).Summary()

	if !strings.Contains(summary, "unknown") {
		t.Errorf("Summary() = %q, should report unknown values", summary)
	}
	if !strings.Contains(summary, "undefined") {
		t.Errorf("Summary() = %q, should report the undefined mode sentinel", summary)
	}
}

func TestFormatCompact(t *testing.T) {
	state, conf := parseFixtures(t)
	out := New(state, conf).FormatCompact()

	for _, want := range []string{"Living Room", "1812-231-045", "cool", "speed-2", "split", "swing"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatCompact() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatDetailed(t *testing.T) {
	state, conf := parseFixtures(t)
	out := New(state, conf).FormatDetailed()

	for _, want := range []string{
		"=== Device Information ===",
		"=== Climate State ===",
		"=== Capabilities ===",
		"heat, dry, cool, fan-only, heat-cool",
		"auto, speed-1, speed-2, speed-3",
		"74.500 kWh",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDetailed() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCapabilitiesWithoutSnapshot(t *testing.T) {
	_, conf := parseFixtures(t)
	out := New(nil, conf).FormatCapabilities()

	// Fan speeds depend on the snapshot and must render as unknown, not as
	// an empty list.
	if !strings.Contains(out, "unknown (no snapshot)") {
		t.Errorf("FormatCapabilities() should flag missing snapshot:\n%s", out)
	}
}

func TestPatchFormatChanges(t *testing.T) {
	patch := NewPatch()
	if err := ApplyWrite(patch, PropertyPower, true); err != nil {
		t.Fatalf("ApplyWrite() error = %v", err)
	}
	if err := ApplyWrite(patch, PropertyTargetTemperature, 21.5); err != nil {
		t.Fatalf("ApplyWrite() error = %v", err)
	}

	out := patch.FormatChanges()
	for _, want := range []string{"Power:", "SetTemperature:", "EffectiveFlags:", "0x05"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatChanges() missing %q in:\n%s", want, out)
		}
	}
}

func TestPatchFormatChangesEmpty(t *testing.T) {
	if out := NewPatch().FormatChanges(); !strings.Contains(out, "(no pending writes)") {
		t.Errorf("FormatChanges() = %q", out)
	}
}
