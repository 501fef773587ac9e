// Package devicestate translates between the cloud service's raw device-state
// representation of an air-to-air heat pump and a stable semantic vocabulary.
//
// The remote API reports device state as a flat JSON object of numeric codes
// and bitflags (OperationMode, SetFanSpeed, VaneHorizontal, ...), alongside a
// static configuration document describing the capabilities of the physical
// unit (supported modes, temperature bounds, vane presence). Both documents
// are fetched and persisted by an external cloud client; this package never
// performs network I/O, caching, or scheduling of its own.
//
// # Reading state
//
// A Device wraps the two caller-supplied documents and exposes read-only
// semantic accessors:
//
//	device := devicestate.New(state, conf)
//	if p := device.Power(); p != nil && *p {
//	    fmt.Println(device.OperationMode(), device.TargetTemperature())
//	}
//
// Accessors return pointers (or, for operation mode, the "undefined"
// sentinel) so that "no snapshot fetched yet" is distinguishable from any
// real reading. Unknown raw codes decode to "undefined" rather than failing:
// codes are not stable across firmware revisions, and a reader must degrade
// gracefully.
//
// # Writing state
//
// Writes are accumulated into a Patch, a partial raw-state object carrying
// the touched fields plus the EffectiveFlags dirty-bit mask the remote API
// uses to know which fields changed:
//
//	patch := devicestate.NewPatch()
//	devicestate.ApplyWrite(patch, devicestate.PropertyPower, true)
//	devicestate.ApplyWrite(patch, devicestate.PropertyTargetTemperature, 21.5)
//	// hand patch to the cloud client for submission
//
// Encoding a semantic value the device cannot represent fails loudly with an
// InvalidValue error; silently writing a wrong numeric code to the device is
// never acceptable.
//
// # Thread safety
//
// All operations are pure, bounded, in-memory transforms. Concurrent use is
// safe as long as each goroutine operates on distinct Device and Patch
// values; the package holds no internal locks.
package devicestate
