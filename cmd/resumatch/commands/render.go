package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"resumatch/internal/models"
)

// renderMatchResult prints a scored result: the headline score with its
// tier, the skills table, suggestions and the sub-score breakdown.
func renderMatchResult(w io.Writer, result *models.MatchResult) {
	fmt.Fprintf(w, "\nMatch score: %s (%s)\n", models.FormatScore(result.Score), result.Tier())

	rows := skillRows(result)
	if len(rows) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.Header("Skill", "Status")
		for _, row := range rows {
			table.Append(row[0], row[1])
		}
		table.Render()
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintf(w, "\nSuggestions:\n")
		for i, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, suggestion)
		}
	}

	if breakdown := result.Breakdown; breakdown != nil {
		fmt.Fprintf(w, "\nBreakdown:\n")
		table := tablewriter.NewWriter(w)
		table.Header("Component", "Match")
		table.Append("Required skills", models.FormatScore(breakdown.RequiredMatch)+"%")
		table.Append("Preferred skills", models.FormatScore(breakdown.PreferredMatch)+"%")
		table.Append("Category matches", models.FormatScore(breakdown.CategoryMatches)+"%")
		table.Render()
	}

	fmt.Fprintln(w)
}

// skillRows flattens the four skill lists into table rows, matched tiers
// first, in the order the service reported them.
func skillRows(result *models.MatchResult) [][2]string {
	var rows [][2]string
	for _, skill := range result.MatchedSkills {
		rows = append(rows, [2]string{skill, "matched"})
	}
	for _, skill := range result.MatchedPreferred {
		rows = append(rows, [2]string{skill, "matched (preferred)"})
	}
	for _, skill := range result.MissingSkills {
		rows = append(rows, [2]string{skill, "missing"})
	}
	for _, skill := range result.MissingCritical {
		rows = append(rows, [2]string{skill, "missing (critical)"})
	}
	return rows
}
