package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/store"
)

const historyLimit = 10

// Menu is the interactive text front end over a catalog.
type Menu struct {
	Catalog   *dex.Catalog
	History   store.Store // nil disables battle history
	In        io.Reader
	Out       io.Writer
	Logger    *zap.Logger
	ListLimit int

	lines <-chan string
}

var errQuit = errors.New("quit")

// Run loops until the user exits or the input ends, returning nil, or until
// ctx is cancelled, returning ctx.Err() even while a prompt is waiting.
func (m *Menu) Run(ctx context.Context) error {
	if m.Logger == nil {
		m.Logger = zap.NewNop()
	}
	done := make(chan struct{})
	defer close(done)
	m.lines = readLines(m.In, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.ask(ctx, "Select an option: ")
		if err == nil {
			err = m.dispatch(ctx, choice)
		}
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(m.Out)
			return nil
		case err != nil:
			if ctx.Err() != nil {
				fmt.Fprintln(m.Out)
			}
			return err
		}
	}
}

// readLines feeds input lines to the returned channel, which is closed at
// EOF. The reader goroutine exits once done is closed, or at the next line
// after that if it is blocked in a read.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scan := bufio.NewScanner(r)
		for scan.Scan() {
			select {
			case out <- scan.Text():
			case <-done:
				return
			}
		}
	}()
	return out
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.Out)
	fmt.Fprintln(m.Out, titleStyle.Render("=== POKEMON BATTLE SYSTEM ==="))
	fmt.Fprintln(m.Out, "1. List All Pokemons")
	fmt.Fprintln(m.Out, "2. Show Pokemon Card")
	fmt.Fprintln(m.Out, "3. Add Pokemon")
	fmt.Fprintln(m.Out, "4. Modify Pokemon")
	fmt.Fprintln(m.Out, "5. Delete Pokemon")
	fmt.Fprintln(m.Out, "6. Simulate Battle")
	fmt.Fprintln(m.Out, "7. Battle History")
	fmt.Fprintln(m.Out, "8. Exit")
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		PrintList(m.Out, m.Catalog, m.ListLimit)
	case "2":
		return m.showCard(ctx)
	case "3":
		return m.add(ctx)
	case "4":
		return m.modify(ctx)
	case "5":
		return m.remove(ctx)
	case "6":
		return m.battle(ctx)
	case "7":
		m.history(ctx)
	case "8":
		fmt.Fprintln(m.Out, "Exiting...")
		return errQuit
	default:
		fmt.Fprintln(m.Out, warnStyle.Render("Invalid option."))
	}
	return nil
}

// ask prints label and waits for the next line. It returns io.EOF once the
// input is exhausted and ctx.Err() if ctx ends first.
func (m *Menu) ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.Out, label)
	select {
	case line, ok := <-m.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Menu) showCard(ctx context.Context) error {
	name, err := m.ask(ctx, "Enter Pokemon Name: ")
	if err != nil {
		return err
	}
	p, ok := m.Catalog.Get(name)
	if !ok {
		fmt.Fprintln(m.Out, warnStyle.Render("Pokemon not found."))
		return nil
	}
	PrintCard(m.Out, p)
	return nil
}

func (m *Menu) add(ctx context.Context) error {
	fmt.Fprintln(m.Out, "Enter New Pokemon Details:")
	name, err := m.ask(ctx, "Name: ")
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(m.Out, warnStyle.Render("Name cannot be empty."))
		return nil
	}
	type1, err := m.ask(ctx, "Type 1: ")
	if err != nil {
		return err
	}
	type2, err := m.ask(ctx, "Type 2 (optional): ")
	if err != nil {
		return err
	}

	var stats [4]int
	for i, f := range []struct{ field, label string }{
		{dex.FieldHP, "HP: "},
		{dex.FieldAttack, "Attack: "},
		{dex.FieldDefense, "Defense: "},
		{dex.FieldSpeed, "Speed: "},
	} {
		raw, err := m.ask(ctx, f.label)
		if err != nil {
			return err
		}
		n, err := dex.ParseStat(f.field, raw)
		if err != nil {
			fmt.Fprintln(m.Out, warnStyle.Render("Invalid input. Stats must be numbers."))
			m.Logger.Debug("rejected stat", zap.String("field", f.field), zap.Error(err))
			return nil
		}
		stats[i] = n
	}

	p, err := dex.NewPokemon(name, type1, type2, stats[0], stats[1], stats[2], stats[3])
	if err != nil {
		fmt.Fprintln(m.Out, warnStyle.Render("Invalid input. Stats must be numbers."))
		return nil
	}
	if err := m.Catalog.Add(p); err != nil {
		if errors.Is(err, dex.ErrDuplicate) {
			fmt.Fprintln(m.Out, warnStyle.Render(fmt.Sprintf("Pokemon %s already exists!", p.Name)))
			return nil
		}
		return err
	}
	m.Logger.Info("pokemon added", zap.String("name", p.Name))
	fmt.Fprintln(m.Out, okStyle.Render(fmt.Sprintf("Pokemon %s added successfully.", p.Name)))
	return nil
}

func (m *Menu) modify(ctx context.Context) error {
	name, err := m.ask(ctx, "Enter Pokemon Name to modify: ")
	if err != nil {
		return err
	}
	if _, ok := m.Catalog.Get(name); !ok {
		fmt.Fprintln(m.Out, warnStyle.Render("Pokemon not found."))
		return nil
	}

	fmt.Fprintln(m.Out, "Enter new stats (leave blank to keep current):")
	var u dex.StatUpdate
	for _, f := range []struct {
		field, label string
		dst          **int
	}{
		{dex.FieldHP, "New HP: ", &u.HP},
		{dex.FieldAttack, "New Attack: ", &u.Attack},
		{dex.FieldDefense, "New Defense: ", &u.Defense},
		{dex.FieldSpeed, "New Speed: ", &u.Speed},
	} {
		raw, err := m.ask(ctx, f.label)
		if err != nil {
			return err
		}
		if raw == "" {
			continue
		}
		n, err := dex.ParseStat(f.field, raw)
		if err != nil {
			fmt.Fprintln(m.Out, warnStyle.Render("Invalid input."))
			return nil
		}
		*f.dst = &n
	}

	if err := m.Catalog.Modify(name, u); err != nil {
		if errors.Is(err, dex.ErrNotFound) {
			fmt.Fprintln(m.Out, warnStyle.Render(fmt.Sprintf("Pokemon %s not found.", name)))
			return nil
		}
		fmt.Fprintln(m.Out, warnStyle.Render("Invalid input."))
		return nil
	}
	m.Logger.Info("pokemon modified", zap.String("name", name))
	fmt.Fprintln(m.Out, okStyle.Render(fmt.Sprintf("Pokemon %s updated.", name)))
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	name, err := m.ask(ctx, "Enter Pokemon Name to delete: ")
	if err != nil {
		return err
	}
	if err := m.Catalog.Delete(name); err != nil {
		fmt.Fprintln(m.Out, warnStyle.Render(fmt.Sprintf("Pokemon %s not found.", name)))
		return nil
	}
	m.Logger.Info("pokemon deleted", zap.String("name", name))
	fmt.Fprintln(m.Out, okStyle.Render(fmt.Sprintf("Pokemon %s deleted successfully.", name)))
	return nil
}

func (m *Menu) battle(ctx context.Context) error {
	name1, err := m.ask(ctx, "Enter First Pokemon Name: ")
	if err != nil {
		return err
	}
	p1, ok := m.Catalog.Get(name1)
	if !ok {
		fmt.Fprintln(m.Out, warnStyle.Render(fmt.Sprintf("%s not found.", name1)))
		return nil
	}

	name2, err := m.ask(ctx, "Enter Second Pokemon Name: ")
	if err != nil {
		return err
	}
	p2, ok := m.Catalog.Get(name2)
	if !ok {
		fmt.Fprintln(m.Out, warnStyle.Render(fmt.Sprintf("%s not found.", name2)))
		return nil
	}

	r := battle.Fight(p1, p2)
	PrintBattle(m.Out, r)

	if m.History != nil {
		if err := m.History.Add(ctx, r); err != nil {
			m.Logger.Warn("failed to record battle", zap.Error(err))
		}
	}
	return nil
}

func (m *Menu) history(ctx context.Context) {
	if m.History == nil {
		fmt.Fprintln(m.Out, warnStyle.Render("Battle history is disabled (set DB_PATH)."))
		return
	}
	recent, err := m.History.Recent(ctx, historyLimit)
	if err != nil {
		m.Logger.Warn("failed to load battle history", zap.Error(err))
		fmt.Fprintln(m.Out, warnStyle.Render("Error loading battle history."))
		return
	}
	wins, err := m.History.Wins(ctx, 5)
	if err != nil {
		m.Logger.Warn("failed to load win counts", zap.Error(err))
	}
	PrintHistory(m.Out, recent, wins)
}
