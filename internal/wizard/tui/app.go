package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/melair/internal/devicestate"
)

// Step represents the current wizard step
type Step string

const (
	StepProperty    Step = "property"
	StepValue       Step = "value"
	StepTemperature Step = "temperature"
	StepReview      Step = "review"
)

// wizardKeyMap defines key bindings shared by the list steps
type wizardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Review key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Review, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Review, k.Back, k.Quit},
	}
}

// propertyChoice is one selectable property in the property step
type propertyChoice struct {
	Property devicestate.Property
	Label    string
	Current  string
}

// Model is the wizard's Bubble Tea model. It accumulates writes into a
// single patch across repeated property/value selections.
type Model struct {
	Device *devicestate.Device
	Patch  devicestate.Patch

	// Step state
	CurrentStep Step
	Cursor      int

	// Property step
	Properties []propertyChoice

	// Value step
	ActiveProperty devicestate.Property
	Values         []string

	// Temperature step
	TempInput textinput.Model
	TempMin   float64
	TempMax   float64

	// Outcome
	Confirmed bool
	LastError error

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   wizardKeyMap
}

// NewModel creates a wizard model for the given device
func NewModel(device *devicestate.Device) Model {
	keys := wizardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "review"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	input := textinput.New()
	input.Placeholder = "21.0"
	input.CharLimit = 6
	input.Width = 10

	return Model{
		Device:      device,
		Patch:       devicestate.NewPatch(),
		CurrentStep: StepProperty,
		Properties:  buildPropertyChoices(device),
		TempInput:   input,
		Help:        help.New(),
		Keys:        keys,
	}
}

// buildPropertyChoices lists the properties the unit can accept writes for.
// Properties with no capability list on this unit are left out entirely.
func buildPropertyChoices(device *devicestate.Device) []propertyChoice {
	var choices []propertyChoice

	choices = append(choices, propertyChoice{
		Property: devicestate.PropertyPower,
		Label:    "Power",
		Current:  formatPowerValue(device.Power()),
	})
	choices = append(choices, propertyChoice{
		Property: devicestate.PropertyOperationMode,
		Label:    "Operation mode",
		Current:  string(device.OperationMode()),
	})
	choices = append(choices, propertyChoice{
		Property: devicestate.PropertyTargetTemperature,
		Label:    "Target temperature",
		Current:  formatTempValue(device.TargetTemperature()),
	})

	if speeds := device.FanSpeeds(); len(speeds) > 0 {
		choices = append(choices, propertyChoice{
			Property: devicestate.PropertyFanSpeed,
			Label:    "Fan speed",
			Current:  formatFanValue(device.FanSpeed()),
		})
	}
	if positions := device.VaneHorizontalPositions(); len(positions) > 0 {
		choices = append(choices, propertyChoice{
			Property: devicestate.PropertyVaneHorizontal,
			Label:    "Horizontal vane",
			Current:  formatVaneValue(device.VaneHorizontal()),
		})
	}
	if positions := device.VaneVerticalPositions(); len(positions) > 0 {
		choices = append(choices, propertyChoice{
			Property: devicestate.PropertyVaneVertical,
			Label:    "Vertical vane",
			Current:  formatVaneValue(device.VaneVertical()),
		})
	}

	return choices
}

// Init initializes the wizard
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Confirmed = false
			return m, tea.Quit
		}
	}

	switch m.CurrentStep {
	case StepProperty:
		return m.updatePropertyStep(msg)
	case StepValue:
		return m.updateValueStep(msg)
	case StepTemperature:
		return m.updateTemperatureStep(msg)
	case StepReview:
		return m.updateReviewStep(msg)
	}

	return m, nil
}

// updatePropertyStep handles input on the property selection step
func (m Model) updatePropertyStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.Cursor < len(m.Properties)-1 {
			m.Cursor++
		}
	case key.Matches(keyMsg, m.Keys.Select):
		return m.enterValueStep(m.Properties[m.Cursor].Property)
	case key.Matches(keyMsg, m.Keys.Review):
		if m.Patch.Flags() != 0 {
			m.CurrentStep = StepReview
			m.Cursor = 0
		}
	case key.Matches(keyMsg, m.Keys.Quit), key.Matches(keyMsg, m.Keys.Back):
		m.Confirmed = false
		return m, tea.Quit
	}

	return m, nil
}

// enterValueStep transitions to the value step for the chosen property
func (m Model) enterValueStep(property devicestate.Property) (tea.Model, tea.Cmd) {
	m.ActiveProperty = property
	m.LastError = nil
	m.Cursor = 0

	switch property {
	case devicestate.PropertyPower:
		m.Values = []string{"on", "off"}
		m.CurrentStep = StepValue

	case devicestate.PropertyOperationMode:
		m.Values = nil
		for _, mode := range m.Device.OperationModes() {
			m.Values = append(m.Values, string(mode))
		}
		m.CurrentStep = StepValue

	case devicestate.PropertyFanSpeed:
		m.Values = nil
		for _, speed := range m.Device.FanSpeeds() {
			m.Values = append(m.Values, string(speed))
		}
		m.CurrentStep = StepValue

	case devicestate.PropertyVaneHorizontal:
		m.Values = nil
		for _, position := range m.Device.VaneHorizontalPositions() {
			m.Values = append(m.Values, string(position))
		}
		m.CurrentStep = StepValue

	case devicestate.PropertyVaneVertical:
		m.Values = nil
		for _, position := range m.Device.VaneVerticalPositions() {
			m.Values = append(m.Values, string(position))
		}
		m.CurrentStep = StepValue

	case devicestate.PropertyTargetTemperature:
		m.TempMin, m.TempMax = m.temperatureRange()
		m.TempInput.SetValue("")
		m.TempInput.Focus()
		m.CurrentStep = StepTemperature
		return m, textinput.Blink
	}

	return m, nil
}

// temperatureRange resolves the valid bounds for the current operation mode
func (m Model) temperatureRange() (float64, float64) {
	low, high := 10.0, 31.0
	if v := m.Device.TargetTemperatureMin(); v != nil {
		low = *v
	}
	if v := m.Device.TargetTemperatureMax(); v != nil {
		high = *v
	}
	return low, high
}

// updateValueStep handles input on the value selection step
func (m Model) updateValueStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.Cursor < len(m.Values)-1 {
			m.Cursor++
		}
	case key.Matches(keyMsg, m.Keys.Select):
		return m.applySelectedValue()
	case key.Matches(keyMsg, m.Keys.Back):
		m.CurrentStep = StepProperty
		m.Cursor = 0
	case key.Matches(keyMsg, m.Keys.Quit):
		m.Confirmed = false
		return m, tea.Quit
	}

	return m, nil
}

// applySelectedValue writes the highlighted value into the patch
func (m Model) applySelectedValue() (tea.Model, tea.Cmd) {
	if m.Cursor >= len(m.Values) {
		return m, nil
	}

	value := any(m.Values[m.Cursor])
	if m.ActiveProperty == devicestate.PropertyPower {
		value = m.Values[m.Cursor] == "on"
	}

	if err := devicestate.ApplyWrite(m.Patch, m.ActiveProperty, value); err != nil {
		m.LastError = err
		return m, nil
	}

	m.Properties = refreshPendingMarks(m.Properties, m.Patch)
	m.CurrentStep = StepProperty
	m.Cursor = 0
	return m, nil
}

// updateTemperatureStep handles input on the temperature entry step
func (m Model) updateTemperatureStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.applyTemperature()
		case "esc":
			m.TempInput.Blur()
			m.CurrentStep = StepProperty
			m.Cursor = 0
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.TempInput, cmd = m.TempInput.Update(msg)
	return m, cmd
}

// applyTemperature validates and writes the entered temperature
func (m Model) applyTemperature() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.TempInput.Value())
	temp, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.LastError = fmt.Errorf("not a number: %q", raw)
		return m, nil
	}
	if temp < m.TempMin || temp > m.TempMax {
		m.LastError = fmt.Errorf("%.1f°C is outside the %.1f-%.1f°C range", temp, m.TempMin, m.TempMax)
		return m, nil
	}

	if err := devicestate.ApplyWrite(m.Patch, devicestate.PropertyTargetTemperature, temp); err != nil {
		m.LastError = err
		return m, nil
	}

	m.LastError = nil
	m.TempInput.Blur()
	m.Properties = refreshPendingMarks(m.Properties, m.Patch)
	m.CurrentStep = StepProperty
	m.Cursor = 0
	return m, nil
}

// updateReviewStep handles input on the review/confirm step
func (m Model) updateReviewStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			m.Confirmed = true
			return m, tea.Quit
		case "esc", "n":
			m.CurrentStep = StepProperty
			m.Cursor = 0
		case "q", "ctrl+c":
			m.Confirmed = false
			return m, tea.Quit
		}
	}

	return m, nil
}

// refreshPendingMarks tags property labels that already have a pending write
func refreshPendingMarks(choices []propertyChoice, patch devicestate.Patch) []propertyChoice {
	updated := make([]propertyChoice, len(choices))
	for i, choice := range choices {
		updated[i] = choice
		if patch.HasPending(choice.Property) && !strings.HasSuffix(choice.Label, " *") {
			updated[i].Label = choice.Label + " *"
		}
	}
	return updated
}

// View renders the current step
func (m Model) View() string {
	var content string
	var helpText string

	switch m.CurrentStep {
	case StepProperty:
		content = m.buildPropertyContent()
		helpText = m.Help.View(m.Keys)
	case StepValue:
		content = m.buildValueContent()
		helpText = "↑/↓ move • enter apply • esc back"
	case StepTemperature:
		content = m.buildTemperatureContent()
		helpText = "enter apply • esc back"
	case StepReview:
		content = m.buildReviewContent()
		helpText = "enter/y confirm • esc/n keep editing • q discard"
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildPropertyContent renders the property selection step
func (m Model) buildPropertyContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Select a property to change"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(m.Device.Name() + "  (" + m.Device.SerialNumber() + ")"))
	b.WriteString("\n\n")

	for i, choice := range m.Properties {
		line := fmt.Sprintf("%-22s %s", choice.Label, choice.Current)
		b.WriteString(RenderMenuItem(line, i == m.Cursor))
		b.WriteString("\n")
	}

	if m.Patch.Flags() != 0 {
		b.WriteString(PendingBoxStyle.Render(m.Patch.FormatChanges()))
		b.WriteString("\n")
	}

	if m.LastError != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.LastError.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// buildValueContent renders the value selection step
func (m Model) buildValueContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("New value for " + string(m.ActiveProperty)))
	b.WriteString("\n\n")

	for i, value := range m.Values {
		b.WriteString(RenderMenuItem(value, i == m.Cursor))
		b.WriteString("\n")
	}

	if m.LastError != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.LastError.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// buildTemperatureContent renders the temperature entry step
func (m Model) buildTemperatureContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Target temperature"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("Valid range for %s mode: %.1f-%.1f°C",
		m.Device.OperationMode(), m.TempMin, m.TempMax)))
	b.WriteString("\n\n")
	b.WriteString("  " + m.TempInput.View())
	b.WriteString("\n")

	if m.LastError != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.LastError.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// buildReviewContent renders the review/confirm step
func (m Model) buildReviewContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Review pending write"))
	b.WriteString("\n\n")
	b.WriteString(RenderInfo(m.Patch.FormatChanges()))
	b.WriteString("\n\n")
	b.WriteString("Confirm this patch? It will be printed for the cloud client to send.\n")

	return b.String()
}

// formatPowerValue formats the power state for the property list
func formatPowerValue(on *bool) string {
	if on == nil {
		return "unknown"
	}
	if *on {
		return "on"
	}
	return "standby"
}

// formatTempValue formats a temperature for the property list
func formatTempValue(t *float64) string {
	if t == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.1f°C", *t)
}

// formatFanValue formats a fan speed for the property list
func formatFanValue(speed *devicestate.FanSpeed) string {
	if speed == nil {
		return "unknown"
	}
	return string(*speed)
}

// formatVaneValue formats a vane position for the property list
func formatVaneValue(position *devicestate.VanePosition) string {
	if position == nil {
		return "unknown"
	}
	return string(*position)
}

// Run starts the wizard and returns the confirmed patch. A nil patch with
// a nil error means the user quit without confirming anything.
func Run(device *devicestate.Device) (devicestate.Patch, error) {
	program := tea.NewProgram(NewModel(device), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("wizard returned unexpected model type %T", final)
	}
	if !model.Confirmed {
		return nil, nil
	}
	return model.Patch, nil
}
