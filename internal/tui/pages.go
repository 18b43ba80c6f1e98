package tui

// Static placeholder pages. These lay out the rest of the dashboard with
// fixed sample content; none of them is backed by the admin API.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			MarginRight(1)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	cardDeltaUp    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	cardDeltaDown  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	sectionTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	mutedText      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

type statCard struct {
	title string
	value string
	delta string // "+x%" or "-x%"
}

func renderStaticPage(p page, width int) string {
	switch p {
	case pageCustomers:
		return renderCustomersPage()
	case pageOrders:
		return renderOrdersPage()
	case pagePromotions:
		return renderPromotionsPage()
	case pageCategories:
		return renderCategoriesPage(width)
	case pageAnalytics:
		return renderAnalyticsPage()
	case pageRevenue:
		return renderRevenuePage()
	case pageReports:
		return renderReportsPage()
	}
	return ""
}

func renderCards(cards []statCard) string {
	var rendered []string
	for _, c := range cards {
		delta := ""
		if strings.HasPrefix(c.delta, "-") {
			delta = cardDeltaDown.Render(c.delta + " vs last month")
		} else if c.delta != "" {
			delta = cardDeltaUp.Render(c.delta + " vs last month")
		}
		body := cardTitleStyle.Render(c.title) + "\n" + cardValueStyle.Render(c.value)
		if delta != "" {
			body += "\n" + delta
		}
		rendered = append(rendered, cardStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCustomersPage() string {
	cards := renderCards([]statCard{
		{"Total customers", "12,480", "+4.2%"},
		{"Active this week", "3,915", "+1.1%"},
		{"Churned", "86", "-0.4%"},
	})
	rows := []string{
		"Amelie Fontaine    amelie@ex.com      142 orders    joined 2024-03",
		"Victor Osei        victor@ex.com       98 orders    joined 2024-07",
		"Priya Raman        priya@ex.com        77 orders    joined 2025-01",
		"Jonas Malm         jonas@ex.com        63 orders    joined 2025-06",
	}
	return strings.Join([]string{
		sectionTitle.Render("Customers"),
		cards,
		mutedText.Render(strings.Join(rows, "\n")),
	}, "\n")
}

func renderOrdersPage() string {
	cards := renderCards([]statCard{
		{"Orders today", "1,204", "+6.8%"},
		{"Avg basket", "€23.40", "+0.9%"},
		{"Cancelled", "31", "-2.1%"},
	})
	rows := []string{
		"#48211  Mama Rosa → Amelie F.     €31.20   delivered",
		"#48210  Casa Verde → Victor O.    €18.90   on the way",
		"#48209  Spice Route → Priya R.    €27.50   preparing",
		"#48208  Nordic Bites → Jonas M.   €12.00   delivered",
	}
	return strings.Join([]string{
		sectionTitle.Render("Orders"),
		cards,
		mutedText.Render(strings.Join(rows, "\n")),
	}, "\n")
}

func renderPromotionsPage() string {
	rows := []string{
		"SUMMER10     10% off first order        active    4,211 redemptions",
		"FREEDELIV    free delivery over €25     active    2,876 redemptions",
		"CHEFWEEK     featured chef spotlight    draft         — ",
	}
	return strings.Join([]string{
		sectionTitle.Render("Promotions"),
		mutedText.Render(strings.Join(rows, "\n")),
	}, "\n")
}

func renderCategoriesPage(width int) string {
	categories := []string{
		"Italian", "Indian", "Sushi", "Burgers", "Vegan",
		"Mexican", "Thai", "Bakery", "Nordic", "BBQ",
	}
	var cells []string
	for _, c := range categories {
		cells = append(cells, cardStyle.Render(c))
	}
	perRow := max(1, width/14)
	var lines []string
	for i := 0; i < len(cells); i += perRow {
		end := i + perRow
		if end > len(cells) {
			end = len(cells)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return strings.Join(append([]string{sectionTitle.Render("Categories")}, lines...), "\n")
}

func renderAnalyticsPage() string {
	cards := renderCards([]statCard{
		{"Sessions", "58,002", "+12.4%"},
		{"Conversion", "3.8%", "+0.3%"},
		{"Search → order", "22.1%", "-1.2%"},
	})
	return strings.Join([]string{
		sectionTitle.Render("Analytics"),
		cards,
		mutedText.Render("Top search terms: pizza, sushi, vegan bowls, biryani"),
	}, "\n")
}

func renderRevenuePage() string {
	cards := renderCards([]statCard{
		{"GMV this month", "€412,908", "+8.1%"},
		{"Platform fees", "€61,936", "+7.5%"},
		{"Chef payouts", "€338,120", "+8.4%"},
	})
	plans := []string{
		fmt.Sprintf("%-10s %8s   %s", "STARTER", "€0/mo", "15% commission · 50 orders"),
		fmt.Sprintf("%-10s %8s   %s", "GROWTH", "€29/mo", "10% commission · 500 orders"),
		fmt.Sprintf("%-10s %8s   %s", "UNLIMITED", "€79/mo", "6% commission · unlimited"),
	}
	return strings.Join([]string{
		sectionTitle.Render("Revenue"),
		cards,
		sectionTitle.Render("Plans"),
		mutedText.Render(strings.Join(plans, "\n")),
	}, "\n")
}

func renderReportsPage() string {
	rows := []string{
		"Monthly settlement (July)      ready     csv",
		"Chef performance Q2            ready     pdf",
		"VAT summary 2026-H1            queued     —",
	}
	return strings.Join([]string{
		sectionTitle.Render("Reports"),
		mutedText.Render(strings.Join(rows, "\n")),
	}, "\n")
}
