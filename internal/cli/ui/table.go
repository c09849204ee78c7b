package ui

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DisplayMatchTable prints the details of a completed match.
func DisplayMatchTable(roomID, ownID, partnerID string, initiator bool) {
	role := "answerer"
	if initiator {
		role = "initiator"
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Color.Header = text.Colors{text.FgHiBlue, text.Bold}

	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Room", roomID},
		{"You", ownID},
		{"Partner", partnerID},
		{"Role", role},
	})
	t.Render()
}
