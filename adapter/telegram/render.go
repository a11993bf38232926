package telegram

import (
	"fmt"
	"strings"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	choreQueries "github.com/felixgeelhaar/rota/internal/chores/application/queries"
	pantryQueries "github.com/felixgeelhaar/rota/internal/pantry/application/queries"
	rosterQueries "github.com/felixgeelhaar/rota/internal/roster/application/queries"
)

func renderAssignment(result *choreCommands.AssignmentResult) string {
	if result.Empty() {
		return "New cycle started, but there is nothing to assign."
	}

	var b strings.Builder
	b.WriteString("Chores for the new cycle:\n")
	for _, pick := range result.Picks {
		if pick.Assigned {
			fmt.Fprintf(&b, "• %s — %s\n", pick.MemberName, pick.ChoreName)
		} else {
			fmt.Fprintf(&b, "• %s — nothing this time\n", pick.MemberName)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStatus(rows []choreQueries.ChoreStatusDTO) string {
	if len(rows) == 0 {
		return "No chores are set up yet."
	}

	var b strings.Builder
	b.WriteString("Current cycle:\n")
	for _, row := range rows {
		mark := "⬜"
		if row.Completed {
			mark = "✅"
		}
		who := "unassigned"
		if row.Assigned {
			who = row.AssigneeName
		}
		fmt.Fprintf(&b, "%s %s (%s) — %s\n", mark, row.Name, row.Difficulty, who)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLeaderboard(rows []rosterQueries.StandingDTO) string {
	if len(rows) == 0 {
		return "The roster is empty. Run /sync_users first."
	}

	var b strings.Builder
	b.WriteString("Points:\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s — %d\n", i+1, row.Name, row.Points)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStock(rows []pantryQueries.StockDTO) string {
	if len(rows) == 0 {
		return "No items are tracked yet."
	}

	var b strings.Builder
	b.WriteString("Stock:\n")
	for _, row := range rows {
		if row.InStock {
			fmt.Fprintf(&b, "🟢 %s\n", row.Name)
		} else if row.NextBuyer != "" {
			fmt.Fprintf(&b, "🔴 %s — %s buys next\n", row.Name, row.NextBuyer)
		} else {
			fmt.Fprintf(&b, "🔴 %s\n", row.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRollover(penalized []string) string {
	if len(penalized) == 0 {
		return "Cycle closed. Everyone finished their chores — no penalties."
	}
	return fmt.Sprintf(
		"Cycle closed. Unfinished chores cost a point each: %s.",
		strings.Join(penalized, ", "),
	)
}
