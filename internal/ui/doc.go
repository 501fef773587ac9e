// Package ui provides shared terminal UI components for melair-cfg commands.
//
// The package defines a common color palette and lipgloss styles used by both
// the plain command output and the interactive patch wizard, plus reusable
// building blocks:
//
//   - Header: bordered command header with the command path and parameters
//   - Result: success/failure/warning boxes rendered at the end of a command
//
// All components are width-aware. Widths are read from the terminal via
// GetTerminalWidth and clamped between MinTerminalWidth and MaxContentWidth
// so output stays readable on both narrow and very wide terminals.
//
// Example:
//
//	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
//		Title:   "Device Capabilities",
//		Command: "melair-cfg capabilities",
//		Params:  map[string]string{"Serial": "1812-231-045"},
//	}))
//
//	fmt.Println(ui.RenderSuccess("Patch prepared", map[string]string{
//		"Fields": "2",
//		"Flags":  "0x05",
//	}))
package ui
