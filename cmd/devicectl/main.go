package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type device struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Topic       string   `json:"topic"`
	Type        string   `json:"type"`
	LedState    bool     `json:"ledState"`
	MotorState  int      `json:"motorState"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

type model struct {
	baseURL  string
	devices  []device
	cursor   int
	loading  bool
	message  string
	quitting bool
}

type devicesMsg []device
type actionDoneMsg string
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func apiBaseURL() string {
	if url := os.Getenv("DEVICECTL_API"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return "http://localhost:8080"
}

func initialModel() model {
	return model{
		baseURL: apiBaseURL(),
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return fetchDevices(m.baseURL)
}

func fetchDevices(baseURL string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(baseURL + "/api/devices")
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach server: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %d", resp.StatusCode)}
		}

		var devices []device
		if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
			return errMsg{fmt.Errorf("bad response: %w", err)}
		}
		return devicesMsg(devices)
	}
}

func postCommand(baseURL, path string, body interface{}) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		jsonData, _ := json.Marshal(body)
		req, _ := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("request failed: %w", err)}
		}
		defer resp.Body.Close()

		text, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %d: %s", resp.StatusCode, string(text))}
		}
		return actionDoneMsg(string(text))
	}
}

func deleteDevice(baseURL string, id uint) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		req, _ := http.NewRequest("DELETE", fmt.Sprintf("%s/api/devices/%d", baseURL, id), nil)
		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("request failed: %w", err)}
		}
		defer resp.Body.Close()

		text, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("server returned %d: %s", resp.StatusCode, string(text))}
		}
		return actionDoneMsg(string(text))
	}
}

// nextMotorState cycles -1 -> 0 -> 1 -> -1.
func nextMotorState(state int) int {
	if state >= 1 {
		return -1
	}
	return state + 1
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}

		case "r":
			m.loading = true
			m.message = ""
			return m, fetchDevices(m.baseURL)

		case "l":
			if d, ok := m.selected(); ok {
				path := fmt.Sprintf("/api/devices/%d/led", d.ID)
				return m, postCommand(m.baseURL, path, map[string]bool{"on": !d.LedState})
			}

		case "m":
			if d, ok := m.selected(); ok {
				path := fmt.Sprintf("/api/devices/%d/motor", d.ID)
				return m, postCommand(m.baseURL, path, map[string]int{"state": nextMotorState(d.MotorState)})
			}

		case "d":
			if d, ok := m.selected(); ok {
				return m, deleteDevice(m.baseURL, d.ID)
			}
		}

	case devicesMsg:
		m.devices = []device(msg)
		m.loading = false
		if m.cursor >= len(m.devices) {
			m.cursor = 0
		}

	case actionDoneMsg:
		m.message = successStyle.Render("✓ " + string(msg))
		return m, fetchDevices(m.baseURL)

	case errMsg:
		m.loading = false
		m.message = errorStyle.Render("✗ " + msg.err.Error())
	}

	return m, nil
}

func (m model) selected() (device, bool) {
	if len(m.devices) == 0 || m.cursor >= len(m.devices) {
		return device{}, false
	}
	return m.devices[m.cursor], true
}

func describe(d device) string {
	state := ""
	switch d.Type {
	case "LED":
		if d.LedState {
			state = "on"
		} else {
			state = "off"
		}
	case "MOTOR":
		state = fmt.Sprintf("state %d", d.MotorState)
	case "SENSOR":
		if d.Temperature != nil || d.Humidity != nil {
			parts := []string{}
			if d.Temperature != nil {
				parts = append(parts, fmt.Sprintf("%.1f°C", *d.Temperature))
			}
			if d.Humidity != nil {
				parts = append(parts, fmt.Sprintf("%.1f%%", *d.Humidity))
			}
			state = strings.Join(parts, " ")
		} else {
			state = "no data"
		}
	}
	return fmt.Sprintf("#%d %s [%s] %s (%s)", d.ID, d.Name, d.Type, state, d.Topic)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Device Console") + "\n\n")

	switch {
	case m.loading:
		s.WriteString("Loading devices...\n")
	case len(m.devices) == 0:
		s.WriteString("No devices registered.\n")
	default:
		for i, d := range m.devices {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(describe(d))))
		}
	}

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}

	s.WriteString("\n" + dimStyle.Render("↑/↓ select · l toggle LED · m cycle motor · d delete · r refresh · q quit") + "\n")
	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
