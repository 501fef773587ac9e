// Package tui implements the interactive patch wizard for melair-cfg.
//
// The wizard is a Bubble Tea application that walks the operator through
// building a pending write for an air-to-air unit:
//
//  1. Property step: choose which property to change. Only properties the
//     unit actually supports are offered (vane menus disappear when the
//     model has no vane, fan speeds disappear without a state snapshot).
//  2. Value step: pick the new value from the unit's capability list, or
//     type a target temperature into a text input. Temperatures are
//     validated against the bounds of the currently selected operation
//     mode before they are accepted.
//  3. Review step: inspect the accumulated patch (fields plus the combined
//     effective-flags mask) and confirm or go back for more changes.
//
// The wizard never talks to the cloud. It returns the finished patch to
// the caller. Sending it upstream is the cloud client's job.
//
// Usage:
//
//	patch, err := tui.Run(device)
//	if err != nil { ... }
//	if patch != nil { /* hand off to the cloud client */ }
package tui
