package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff9f0a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	salesView   table.Model
	menuView    table.Model
	stockView   table.Model
	spinner     spinner.Model
	client      *ApiClient
	report      *Report
	loading     bool
	currentView string
	error       string
	status      string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Dashboard", desc: "Revenue, tips and financial health at a glance"},
		item{title: "Sales", desc: "Per-server sales breakdown"},
		item{title: "Menu", desc: "Item popularity and profit rankings"},
		item{title: "Inventory", desc: "Waste costs and low-stock alerts"},
		item{title: "Recommendations", desc: "Synthesized operational advice"},
		item{title: "Refresh", desc: "Reload the datasets and rebuild the report"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Brasserie Daily Report"

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		spinner:     s,
		client:      client,
		currentView: "main",
		loading:     true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen, fetchReport(m.client))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Refresh":
						m.loading = true
						m.status = ""
						return m, refreshReport(m.client)
					default:
						if m.report == nil {
							m.error = "Report not loaded yet"
							return m, nil
						}
						m.currentView = viewName(selected.title)
					}
				}
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
			}
		case "r":
			if m.currentView == "main" {
				m.loading = true
				m.status = ""
				return m, refreshReport(m.client)
			}
		}
	case reportMsg:
		m.loading = false
		m.error = ""
		m.report = msg.report
		m.salesView = buildSalesTable(msg.report)
		m.menuView = buildMenuTable(msg.report)
		m.stockView = buildStockTable(msg.report)
		return m, nil
	case refreshedMsg:
		m.status = fmt.Sprintf("Report rebuilt (run %s, %d warnings)", msg.runID, msg.warnings)
		return m, fetchReport(m.client)
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "sales":
		m.salesView, cmd = m.salesView.Update(msg)
	case "menu":
		m.menuView, cmd = m.menuView.Update(msg)
	case "inventory":
		m.stockView, cmd = m.stockView.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.loading {
		return docStyle.Render(m.spinner.View() + " Loading report...")
	}

	switch m.currentView {
	case "main":
		view := m.mainMenu.View()
		if m.status != "" {
			view += "\n" + successStyle.Render(m.status)
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error)
		}
		return docStyle.Render(view)
	case "dashboard":
		return docStyle.Render(dashboardView(m.report))
	case "sales":
		return docStyle.Render(titleStyle.Render("Sales by Server") + "\n\n" + m.salesView.View() + backHelp)
	case "menu":
		return docStyle.Render(titleStyle.Render("Menu Rankings") + "\n\n" + m.menuView.View() + backHelp)
	case "inventory":
		return docStyle.Render(inventoryView(m.report, m.stockView))
	case "recommendations":
		return docStyle.Render(recommendationsView(m.report))
	default:
		return "Loading..."
	}
}

const backHelp = "\n\nPress 'esc' to go back"

// viewName maps a menu title to its view key
func viewName(title string) string {
	switch title {
	case "Dashboard":
		return "dashboard"
	case "Sales":
		return "sales"
	case "Menu":
		return "menu"
	case "Inventory":
		return "inventory"
	case "Recommendations":
		return "recommendations"
	}
	return "main"
}

// Custom message types for the tea.Model
type reportMsg struct {
	report *Report
}

type refreshedMsg struct {
	runID    string
	warnings int
}

type errorMsg struct {
	err string
}

// fetchReport retrieves the latest report from the API
func fetchReport(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		report, err := client.GetReport()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching report: %v", err)}
		}
		return reportMsg{report: report}
	}
}

// refreshReport asks the server to rebuild the report
func refreshReport(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Refresh()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error refreshing report: %v", err)}
		}
		return refreshedMsg{runID: result.RunID, warnings: result.Warnings}
	}
}

// buildSalesTable creates the per-server sales table
func buildSalesTable(r *Report) table.Model {
	columns := []table.Column{
		{Title: "Server", Width: 16},
		{Title: "Orders", Width: 8},
		{Title: "Revenue", Width: 10},
		{Title: "Avg Ticket", Width: 10},
		{Title: "Tips", Width: 10},
	}
	rows := make([]table.Row, len(r.Sales.Servers))
	for i, s := range r.Sales.Servers {
		rows[i] = table.Row{
			s.Server,
			fmt.Sprintf("%d", s.Orders),
			fmt.Sprintf("$%.2f", s.Revenue),
			fmt.Sprintf("$%.2f", s.AvgTicket),
			fmt.Sprintf("$%.2f", s.Tips),
		}
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2),
	)
}

// buildMenuTable creates the item popularity table
func buildMenuTable(r *Report) table.Model {
	columns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Sold", Width: 8},
		{Title: "Revenue", Width: 10},
		{Title: "On Menu", Width: 8},
	}
	rows := make([]table.Row, len(r.Menu.Popularity))
	for i, p := range r.Menu.Popularity {
		matched := "yes"
		if !p.Matched {
			matched = "NO"
		}
		rows[i] = table.Row{
			p.Name,
			fmt.Sprintf("%d", p.Count),
			fmt.Sprintf("$%.2f", p.Revenue),
			matched,
		}
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2),
	)
}

// buildStockTable creates the waste ranking table
func buildStockTable(r *Report) table.Model {
	columns := []table.Column{
		{Title: "Ingredient", Width: 20},
		{Title: "Wasted", Width: 10},
		{Title: "Waste Cost", Width: 12},
	}
	rows := make([]table.Row, len(r.Inventory.TopWaste))
	for i, w := range r.Inventory.TopWaste {
		rows[i] = table.Row{
			w.Name,
			fmt.Sprintf("%.1f %s", w.Wasted, w.Unit),
			fmt.Sprintf("$%.2f", w.WasteCost),
		}
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2),
	)
}

// dashboardView renders the headline figures and ratio flags
func dashboardView(r *Report) string {
	view := titleStyle.Render("Dashboard") + "\n\n"
	view += fmt.Sprintf("Run: %s at %s\n\n", r.RunID, r.GeneratedAt.Format("15:04:05"))
	view += fmt.Sprintf("Orders: %d    Revenue: $%.2f    Avg Ticket: $%.2f\n", r.Sales.TotalOrders, r.Sales.TotalRevenue, r.Sales.AvgTicket)
	view += fmt.Sprintf("Tips: $%.2f (%.1f%% of subtotals)\n\n", r.Sales.TotalTips, r.Sales.TipRatePercent)

	view += infoStyle.Render("Financial Health") + "\n"
	view += ratioLine("Food cost", r.Ratios.FoodCostPercent, r.Ratios.FoodCostFlag)
	view += ratioLine("Labor cost", r.Ratios.LaborCostPercent, r.Ratios.LaborCostFlag)
	view += ratioLine("Profit margin", r.Ratios.ProfitMarginPercent, r.Ratios.ProfitMarginFlag)

	if len(r.Warnings) > 0 {
		view += "\n" + warningStyle.Render(fmt.Sprintf("%d data warning(s)", len(r.Warnings))) + "\n"
		for _, w := range r.Warnings {
			view += fmt.Sprintf("• [%s] %s\n", w.Kind, w.Detail)
		}
	}

	return view + backHelp
}

// ratioLine renders one flagged ratio
func ratioLine(name string, value float64, flag string) string {
	badge := successStyle.Render("healthy")
	if flag != "healthy" {
		badge = errorStyle.Render("warning")
	}
	return fmt.Sprintf("%-14s %6.2f%%  %s\n", name, value, badge)
}

// inventoryView renders the waste table plus low-stock alerts
func inventoryView(r *Report, stockTable table.Model) string {
	view := titleStyle.Render("Inventory") + "\n\n"
	view += fmt.Sprintf("Used: $%.2f    Wasted: $%.2f (%.1f%%)\n\n", r.Inventory.TotalUsedCost, r.Inventory.TotalWasteCost, r.Inventory.WastePercent)
	view += stockTable.View() + "\n"

	if len(r.Inventory.LowStock) > 0 {
		view += "\n" + errorStyle.Render("Low stock") + "\n"
		for _, alert := range r.Inventory.LowStock {
			view += fmt.Sprintf("• %s: %.1f %s left (%.0f%% of starting stock)\n", alert.Name, alert.EndingQty, alert.Unit, alert.StockRatio*100)
		}
	}

	return view + backHelp
}

// recommendationsView renders the advice buckets
func recommendationsView(r *Report) string {
	view := titleStyle.Render("Recommendations") + "\n\n"

	sections := []struct {
		name  string
		style lipgloss.Style
		items []string
	}{
		{"Immediate", errorStyle, r.Recommendations.Immediate},
		{"Short term", warningStyle, r.Recommendations.ShortTerm},
		{"Long term", infoStyle, r.Recommendations.LongTerm},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		view += s.style.Render(s.name) + "\n"
		for _, line := range s.items {
			view += "• " + line + "\n"
		}
		view += "\n"
	}

	return view + backHelp
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
