// Command agri-cli is a terminal client for Agriconnect: log in, browse your
// orders and chat on an order thread.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Jataveda/Agriconnect/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34")).
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

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepLoggingIn
	stepOrders
	stepThread
	stepComposing
)

type model struct {
	api *apiClient

	step         step
	username     string
	user         entities.UserPublic
	orders       []entities.Order
	cursor       int
	thread       []entities.Message
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{ user entities.UserPublic }
type ordersLoadedMsg []entities.Order
type threadLoadedMsg []entities.Message
type messageSentMsg struct{ msg entities.Message }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api *apiClient) model {
	return model{api: api, step: stepEnteringUsername}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(api *apiClient, username, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.login(username, password)
		if err != nil {
			return errMsg{err}
		}
		return loginSuccessMsg{user: res.User}
	}
}

func loadOrders(api *apiClient, userID string) tea.Cmd {
	return func() tea.Msg {
		orders, err := api.orders(userID)
		if err != nil {
			return errMsg{err}
		}
		return ordersLoadedMsg(orders)
	}
}

func loadThread(api *apiClient, orderID string) tea.Cmd {
	return func() tea.Msg {
		thread, err := api.thread(orderID)
		if err != nil {
			return errMsg{err}
		}
		return threadLoadedMsg(thread)
	}
}

func sendMessage(api *apiClient, orderID, senderID, content string) tea.Cmd {
	return func() tea.Msg {
		msg, err := api.send(orderID, senderID, content)
		if err != nil {
			return errMsg{err}
		}
		return messageSentMsg{msg: msg}
	}
}

func (m model) typing() bool {
	return m.step == stepEnteringUsername || m.step == stepEnteringPassword || m.step == stepComposing
}

func (m model) selectedOrder() (entities.Order, bool) {
	if m.cursor < 0 || m.cursor >= len(m.orders) {
		return entities.Order{}, false
	}
	return m.orders[m.cursor], true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginSuccessMsg:
		m.user = msg.user
		m.step = stepOrders
		m.message = successStyle.Render("✓ Logged in as " + m.user.Name)
		return m, loadOrders(m.api, m.user.ID)

	case ordersLoadedMsg:
		m.orders = []entities.Order(msg)
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}

	case threadLoadedMsg:
		m.thread = []entities.Message(msg)

	case messageSentMsg:
		m.thread = append(m.thread, msg.msg)
		m.step = stepThread
		m.message = successStyle.Render("✓ Message sent")

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		if m.step == stepLoggingIn {
			m.step = stepEnteringUsername
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyRunes, tea.KeySpace:
		if m.typing() {
			m.currentInput += msg.String()
			return m, nil
		}
	case tea.KeyBackspace:
		if len(m.currentInput) > 0 {
			r := []rune(m.currentInput)
			m.currentInput = string(r[:len(r)-1])
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.step == stepOrders && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.step == stepOrders && m.cursor < len(m.orders)-1 {
			m.cursor++
		}

	case "r":
		switch m.step {
		case stepOrders:
			return m, loadOrders(m.api, m.user.ID)
		case stepThread:
			if order, ok := m.selectedOrder(); ok {
				return m, loadThread(m.api, order.ID)
			}
		}

	case "m":
		if m.step == stepThread {
			m.step = stepComposing
			m.currentInput = ""
		}

	case "esc":
		switch m.step {
		case stepComposing:
			m.step = stepThread
			m.currentInput = ""
		case stepThread:
			m.step = stepOrders
			m.thread = nil
		}

	case "enter":
		switch m.step {
		case stepEnteringUsername:
			if m.currentInput != "" {
				m.username = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword
			}

		case stepEnteringPassword:
			if m.currentInput != "" {
				password := m.currentInput
				m.currentInput = ""
				m.step = stepLoggingIn
				m.message = "Logging in..."
				return m, loginUser(m.api, m.username, password)
			}

		case stepOrders:
			if order, ok := m.selectedOrder(); ok {
				m.step = stepThread
				m.message = ""
				return m, loadThread(m.api, order.ID)
			}

		case stepComposing:
			content := strings.TrimSpace(m.currentInput)
			order, ok := m.selectedOrder()
			if content != "" && ok {
				m.currentInput = ""
				return m, sendMessage(m.api, order.ID, m.user.ID, content)
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🌾 Agriconnect"))
	s.WriteString("\n")
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Username or email:") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Password:") + "\n")
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len([]rune(m.currentInput)))))
		s.WriteString("\n\nPress Enter\n")

	case stepOrders:
		s.WriteString(promptStyle.Render("Your orders") + "\n\n")
		if len(m.orders) == 0 {
			s.WriteString(dimStyle.Render("No orders yet") + "\n")
		}
		for i, o := range m.orders {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			line := fmt.Sprintf("%s  %-10s  %s  %.2f", o.OrderNumber, o.Status, o.ItemName, o.Total)
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(line)))
		}
		s.WriteString("\n↑/↓ select, Enter open thread, r refresh, q quit\n")

	case stepThread, stepComposing:
		if order, ok := m.selectedOrder(); ok {
			s.WriteString(promptStyle.Render(fmt.Sprintf("%s · %s", order.OrderNumber, order.ItemName)) + "\n\n")
		}
		if len(m.thread) == 0 {
			s.WriteString(dimStyle.Render("No messages") + "\n")
		}
		for _, msg := range m.thread {
			stamp := dimStyle.Render(msg.Timestamp.Local().Format("Jan 2 15:04"))
			s.WriteString(fmt.Sprintf("%s %s: %s\n", stamp, msg.SenderName, msg.Content))
		}
		if m.step == stepComposing {
			s.WriteString("\n" + inputStyle.Render("> "+m.currentInput))
			s.WriteString("\n\nEnter send, Esc cancel\n")
		} else {
			s.WriteString("\nm write, r refresh, Esc back, q quit\n")
		}

	default:
		s.WriteString("...\n")
	}

	return s.String()
}

func main() {
	apiURL := flag.String("api", envOr("AGRICONNECT_API", "http://localhost:3536"), "Agriconnect API base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(newAPIClient(*apiURL)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
