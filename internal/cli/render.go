package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1C40F"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498DB"))
)

// PrintList writes up to limit names. limit <= 0 prints everything.
func PrintList(w io.Writer, c *dex.Catalog, limit int) {
	all := c.List()
	if len(all) == 0 {
		fmt.Fprintln(w, warnStyle.Render("The catalog is empty."))
		return
	}
	for i, p := range all {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "... and many more (showing first %d of %d)\n", limit, len(all))
			return
		}
		fmt.Fprintf(w, "- %s\n", p.Name)
	}
}

func PrintCard(w io.Writer, p dex.Pokemon) {
	fmt.Fprint(w, p.Card())
	fmt.Fprintf(w, "Tier: %s (total %d)\n", dex.TierFor(p), p.Total())
}

func PrintBattle(w io.Writer, r battle.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerStyle.Render("--- BATTLE STARTING ---"))
	fmt.Fprintf(w, "%s VS %s\n", r.First, r.Second)
	fmt.Fprintf(w, "%s Attack: %d\n", r.First, r.FirstAttack)
	fmt.Fprintf(w, "%s Attack: %d\n", r.Second, r.SecondAttack)
	fmt.Fprintln(w)
	if name, ok := r.Winner(); ok {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("Winner is %s!", name)))
	} else {
		fmt.Fprintln(w, "It's a Draw!")
	}
	fmt.Fprintln(w, strings.Repeat("-", 23))
}

func PrintHistory(w io.Writer, recent []battle.Result, wins []store.WinCount) {
	if len(recent) == 0 {
		fmt.Fprintln(w, "No battles fought yet.")
		return
	}
	fmt.Fprintln(w, titleStyle.Render("Recent battles"))
	for _, r := range recent {
		outcome := "draw"
		if name, ok := r.Winner(); ok {
			outcome = name + " won"
		}
		fmt.Fprintf(w, "%s  %s (%d) vs %s (%d): %s\n",
			r.FoughtAt.Local().Format("2006-01-02 15:04"), r.First, r.FirstAttack, r.Second, r.SecondAttack, outcome)
	}
	if len(wins) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render("Most wins"))
	for i, wc := range wins {
		fmt.Fprintf(w, "#%d %s: %d\n", i+1, wc.Name, wc.Wins)
	}
}
