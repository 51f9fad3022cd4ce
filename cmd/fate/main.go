package main

import (
	"fate/internal/config"
	"fate/internal/expr"
	"fate/internal/history"
	"fate/internal/pathutil"
	"fate/internal/tui"
	"fate/internal/wheel"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

type CLI struct {
	File    string     `help:"Path to wheel file" default:"${wheel_file}" type:"path" short:"f"`
	Spin    SpinCmd    `cmd:"" default:"withargs" help:"Spin the wheel interactively (default)"`
	Pick    PickCmd    `cmd:"" help:"Spin without the TUI and print the result"`
	List    ListCmd    `cmd:"" help:"List wheel items"`
	Add     AddCmd     `cmd:"" help:"Add an item, prompting when no label is given"`
	Remove  RemoveCmd  `cmd:"" help:"Remove an item by id"`
	Weight  WeightCmd  `cmd:"" help:"Change the weight of an item"`
	Version VersionCmd `cmd:"" help:"Show version information"`

	out      io.Writer    `kong:"-"`
	prompter itemPrompter `kong:"-"`
}

type itemPrompter interface {
	Prompt(defaults tui.ItemInput) (tui.ItemInput, error)
}

func (c *CLI) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

func (c *CLI) load() (*config.Config, error) {
	cfg, err := config.LoadOrNew(c.File)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *CLI) save(cfg *config.Config) error {
	if err := config.Save(c.File, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

type SpinCmd struct {
	Seed uint64 `help:"Seed for the spin draw (0 picks one at random)"`
}

func (c *SpinCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Spin.Seed = c.Seed
	}

	model, err := tui.New(cfg, tui.WithPath(cli.File))
	if err != nil {
		return fmt.Errorf("load wheel: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok {
		if sel, ok := m.Result(); ok {
			fmt.Fprintln(cli.stdout(), sel.Item.Label)
		}
	}
	return nil
}

type PickCmd struct {
	Seed  uint64 `help:"Seed for the spin draw (0 picks one at random)"`
	Count int    `help:"Number of spins; more than one prints a tally" default:"1"`
}

func (c *PickCmd) Run(cli *CLI) error {
	if c.Count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", c.Count)
	}

	cfg, err := cli.load()
	if err != nil {
		return err
	}
	tuning, err := cfg.Tuning()
	if err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	items, err := cfg.WheelItems(expr.NewContext())
	if err != nil {
		return err
	}
	layout, err := wheel.Compute(items)
	if err != nil {
		return err
	}

	seed := cfg.Spin.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	engine := wheel.NewEngine(tuning, wheel.NewSource(seed))
	tally := history.New(c.Count)

	for range c.Count {
		sel, err := engine.Run(layout, 0)
		if err != nil {
			return err
		}
		tally.Record(sel, engine.State().Ticks)
	}

	out := cli.stdout()
	if c.Count == 1 {
		last, _ := tally.Last()
		fmt.Fprintln(out, last.Label)
		return nil
	}

	t := newTable("Item", "Count", "Observed", "Expected")
	for _, row := range tally.Rows(layout) {
		t.Row(row.Label, strconv.Itoa(row.Count), percent(row.Observed), percent(row.Expected))
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d spins\n", tally.Total())
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}

	out := cli.stdout()
	if len(cfg.Items) == 0 {
		fmt.Fprintf(out, "No items in %s\n", cli.File)
		return nil
	}

	items, err := cfg.WheelItems(expr.NewContext())
	if err != nil {
		return err
	}
	shares := make(map[int]float64, len(items))
	if layout, err := wheel.Compute(items); err == nil {
		for i, s := range layout.Slices {
			shares[s.Item.ID] = layout.Share(i)
		}
	}

	t := newTable("ID", "Label", "Weight", "Share", "When")
	for _, item := range cfg.Items {
		share := "-"
		if v, ok := shares[item.ID]; ok {
			share = percent(v)
		}
		t.Row(strconv.Itoa(item.ID), item.Label, strconv.FormatFloat(item.Weight, 'g', -1, 64), share, item.When)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

type AddCmd struct {
	Label  string  `arg:"" optional:"" help:"Item label; may interpolate ${ } expressions"`
	Weight float64 `help:"Item weight" default:"1"`
	When   string  `help:"Only put the item on the wheel when this condition holds"`
}

func (c *AddCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}

	input := tui.ItemInput{Label: c.Label, Weight: c.Weight, When: c.When}
	if input.Label == "" {
		prompter := cli.prompter
		if prompter == nil {
			prompter = tui.NewItemPrompter()
		}
		if input, err = prompter.Prompt(input); err != nil {
			return err
		}
	}

	item := cfg.Add(input.Label, input.Weight, input.When)
	if err := cli.save(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cli.stdout(), "Added #%d %s (weight %g)\n", item.ID, item.Label, item.Weight)
	return nil
}

type RemoveCmd struct {
	ID int `arg:"" help:"Item id, see 'fate list'"`
}

func (c *RemoveCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}

	item, err := cfg.Remove(c.ID)
	if err != nil {
		return err
	}
	if err := cli.save(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cli.stdout(), "Removed #%d %s\n", item.ID, item.Label)
	return nil
}

type WeightCmd struct {
	ID     int     `arg:"" help:"Item id, see 'fate list'"`
	Weight float64 `arg:"" help:"New weight"`
}

func (c *WeightCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}

	if err := cfg.SetWeight(c.ID, c.Weight); err != nil {
		return err
	}
	if err := cli.save(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cli.stdout(), "Set weight of #%d to %g\n", c.ID, c.Weight)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Fprintf(cli.stdout(), "fate %s (commit: %s, built: %s)\n", Version, Commit, Date)
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("fate"),
		kong.Description("Spin a weighted wheel to pick one of your items"),
		kong.UsageOnError(),
		kong.Vars{"wheel_file": pathutil.DefaultWheelPath()},
	}
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli, kongOptions()...)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
