package devicestate

// Property identifies one writable semantic property of the device.
type Property string

// Writable semantic properties.
const (
	PropertyPower             Property = "power"
	PropertyTargetTemperature Property = "target_temperature"
	PropertyOperationMode     Property = "operation_mode"
	PropertyFanSpeed          Property = "fan_speed"
	PropertyVaneHorizontal    Property = "vane_horizontal"
	PropertyVaneVertical      Property = "vane_vertical"
)

// EffectiveFlags is the raw field carrying the dirty-bit mask. The remote
// service applies only the fields whose bit is set, so the mask must be the
// OR of every property written into the patch since it was created.
const EffectiveFlags = "EffectiveFlags"

// Dirty bits, one per writable property.
const (
	flagPower          int64 = 0x01
	flagOperationMode  int64 = 0x02
	flagTargetTemp     int64 = 0x04
	flagFanSpeed       int64 = 0x08
	flagVaneVertical   int64 = 0x10
	flagVaneHorizontal int64 = 0x100
)

// Patch is a partial raw-state object under construction. After N successful
// ApplyWrite calls it holds exactly the raw fields touched by those calls
// plus the merged EffectiveFlags mask. The patch is created per write batch
// and handed to the external cloud client for submission; it never reflects
// or modifies live device state.
type Patch map[string]any

// NewPatch creates an empty patch.
func NewPatch() Patch {
	return Patch{}
}

// Flags returns the accumulated dirty-bit mask, or 0 for a fresh patch.
// A pre-populated flags entry (for example from a decoded JSON document) is
// honored regardless of its numeric type.
func (p Patch) Flags() int64 {
	if v, ok := p[EffectiveFlags]; ok {
		if n, ok := numberValue(v); ok {
			return int64(n)
		}
	}
	return 0
}

// orFlag merges one dirty bit into the existing mask.
func (p Patch) orFlag(bit int64) {
	p[EffectiveFlags] = p.Flags() | bit
}

// propertyFlags maps each writable property to its dirty bit.
var propertyFlags = map[Property]int64{
	PropertyPower:             flagPower,
	PropertyOperationMode:     flagOperationMode,
	PropertyTargetTemperature: flagTargetTemp,
	PropertyFanSpeed:          flagFanSpeed,
	PropertyVaneVertical:      flagVaneVertical,
	PropertyVaneHorizontal:    flagVaneHorizontal,
}

// HasPending reports whether the patch already carries a write for the
// given property.
func (p Patch) HasPending(property Property) bool {
	bit, ok := propertyFlags[property]
	if !ok {
		return false
	}
	return p.Flags()&bit != 0
}

// ApplyWrite validates and encodes one semantic property change into the
// patch: the corresponding raw field is written and the property's dirty bit
// is OR-ed into the EffectiveFlags entry. Repeated calls on the same patch
// accumulate; the mask is merged with, never replaces, any existing value.
//
// On error the patch is left unmodified for that call; the effects of prior
// successful calls stand. An unrecognized property fails with an
// InvalidProperty error, a value the device cannot represent with an
// InvalidValue error.
func ApplyWrite(patch Patch, property Property, value any) error {
	switch property {
	case PropertyPower:
		on, ok := value.(bool)
		if !ok {
			return invalidValueFor(property, "expected a boolean, got %v", value)
		}
		patch["Power"] = on
		patch.orFlag(flagPower)

	case PropertyTargetTemperature:
		temp, ok := numberValue(value)
		if !ok {
			return invalidValueFor(property, "expected a temperature, got %v", value)
		}
		patch["SetTemperature"] = temp
		patch.orFlag(flagTargetTemp)

	case PropertyOperationMode:
		token, ok := tokenValue(value)
		if !ok {
			return invalidValueFor(property, "expected a mode token, got %v", value)
		}
		code, err := operationModeTable.encode(token)
		if err != nil {
			return tagProperty(err, property)
		}
		patch["OperationMode"] = code
		patch.orFlag(flagOperationMode)

	case PropertyFanSpeed:
		token, ok := tokenValue(value)
		if !ok {
			return invalidValueFor(property, "expected a fan speed token, got %v", value)
		}
		code, err := encodeFanSpeed(FanSpeed(token))
		if err != nil {
			return tagProperty(err, property)
		}
		patch["SetFanSpeed"] = code
		patch.orFlag(flagFanSpeed)

	case PropertyVaneHorizontal:
		token, ok := tokenValue(value)
		if !ok {
			return invalidValueFor(property, "expected a vane position token, got %v", value)
		}
		code, err := vaneHorizontalTable.encode(token)
		if err != nil {
			return tagProperty(err, property)
		}
		patch["VaneHorizontal"] = code
		patch.orFlag(flagVaneHorizontal)

	case PropertyVaneVertical:
		token, ok := tokenValue(value)
		if !ok {
			return invalidValueFor(property, "expected a vane position token, got %v", value)
		}
		code, err := vaneVerticalTable.encode(token)
		if err != nil {
			return tagProperty(err, property)
		}
		patch["VaneVertical"] = code
		patch.orFlag(flagVaneVertical)

	default:
		return newInvalidProperty(property)
	}

	return nil
}

// tokenValue coerces the semantic token types accepted by ApplyWrite.
func tokenValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case OperationMode:
		return string(v), true
	case FanSpeed:
		return string(v), true
	case VanePosition:
		return string(v), true
	default:
		return "", false
	}
}

func invalidValueFor(property Property, format string, args ...any) *Error {
	err := newInvalidValue(format, args...)
	err.Property = property
	return err
}

// tagProperty attaches the property being written to an encoder error.
func tagProperty(err error, property Property) error {
	if adapterErr, ok := err.(*Error); ok && adapterErr.Property == "" {
		adapterErr.Property = property
	}
	return err
}
