package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"ledger/internal/core"
	"ledger/internal/display"
	"ledger/internal/log"
	"ledger/internal/services"
)

var errUsage = errors.New("usage: ledger <add|delete|list|summary|insights|clear|reset|theme|tutorial> [flags]")

var tutorialSteps = []string{
	"Welcome! This brief tour will help you get started. The summary shows your balance, total income, and total expenses.",
	"Use `ledger add <description> <amount> --type income|expense` to record an item.",
	"Your transactions appear in `ledger list`. Use `ledger delete <id>` to remove an entry. Changes persist locally on this device.",
}

// App dispatches subcommands against a tracker service.
type App struct {
	svc   *services.TrackerService
	money *display.Money
	in    *bufio.Reader
	out   io.Writer
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	log.FromContext(ctx).WithComponent(log.ComponentCLI).DebugContext(ctx, "Running command", "command", cmd)
	switch cmd {
	case "add":
		return a.add(ctx, rest)
	case "delete", "rm":
		return a.delete(ctx, rest)
	case "list", "ls":
		return a.list(rest)
	case "summary":
		return a.summary(rest)
	case "insights":
		return a.insights(rest)
	case "clear":
		return a.clear(ctx, rest)
	case "reset":
		return a.reset(ctx, rest)
	case "theme":
		return a.theme(ctx, rest)
	case "tutorial":
		return a.tutorial(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, errUsage.Error())
		return nil
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	typ := fs.StringP("type", "t", string(core.Expense), "income or expense")
	if err := fs.Parse(keepSignedAmounts(args)); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: ledger add <description> <amount> [--type income|expense]")
	}
	entry, err := core.ValidateEntry(restoreArg(fs.Arg(0)), restoreArg(fs.Arg(1)), *typ)
	if err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentCLI).DebugContext(ctx, "Rejected entry",
			log.NewFields().WithError(err).WithErrorType(log.ErrorTypeValidation).WithOperation(log.OpAdd).ToSlice()...)
		return err
	}
	tx, snap := a.svc.Add(ctx, entry)
	fmt.Fprintf(a.out, "Added %d  %s  %s  [%s]\n", tx.ID, tx.Description,
		a.money.Signed(tx.Amount, tx.IsIncome()), a.svc.Categorize(tx.Description))
	a.printSummary(snap.Summary)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := newFlagSet("delete")
	yes := fs.BoolP("yes", "y", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: ledger delete <id> [--yes]")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", fs.Arg(0), err)
	}
	if !*yes && !a.confirm(fmt.Sprintf("Delete transaction %d?", id)) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	removed, snap := a.svc.Delete(ctx, id)
	if !removed {
		fmt.Fprintf(a.out, "No transaction with id %d\n", id)
	} else {
		fmt.Fprintf(a.out, "Deleted %d\n", id)
	}
	a.printSummary(snap.Summary)
	return nil
}

func (a *App) list(args []string) error {
	fs := newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	txs := a.svc.Snapshot().Transactions
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
	for _, tx := range txs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", tx.ID, tx.Date.Format("2006-01-02 15:04"),
			tx.Description, a.svc.Categorize(tx.Description), a.money.Signed(tx.Amount, tx.IsIncome()))
	}
	return w.Flush()
}

func (a *App) summary(args []string) error {
	fs := newFlagSet("summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.printSummary(a.svc.Snapshot().Summary)
	return nil
}

func (a *App) printSummary(s core.Summary) {
	fmt.Fprintf(a.out, "Balance %s  Income %s  Expense %s\n",
		a.money.Format(s.Balance), a.money.Format(s.Income), a.money.Format(s.Expense))
}

func (a *App) insights(args []string) error {
	fs := newFlagSet("insights")
	all := fs.BoolP("all", "a", false, "show totals for every category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	snap := a.svc.Snapshot()
	if !snap.HasInsights {
		fmt.Fprintln(a.out, "No expenses yet. Add an expense to see insights.")
		return nil
	}
	in := snap.Insights
	fmt.Fprintf(a.out, "Biggest expense: %s (%s)\n", in.Biggest.Description, a.money.Format(in.Biggest.Amount))
	fmt.Fprintf(a.out, "Top category: %s (%s)\n", in.HighestCategory, a.money.Format(in.HighestAmount))
	fmt.Fprintf(a.out, "Expenses recorded: %d\n", in.ExpenseCount)
	if *all {
		for _, c := range in.ByCategory {
			fmt.Fprintf(a.out, "  %-10s %s\n", c.Name, a.money.Format(c.Amount))
		}
	}
	return nil
}

func (a *App) clear(ctx context.Context, args []string) error {
	fs := newFlagSet("clear")
	yes := fs.BoolP("yes", "y", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes && !a.confirm("Clear all transactions from this app? This cannot be undone.") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	a.svc.ClearData(ctx)
	fmt.Fprintln(a.out, "All transactions cleared.")
	return nil
}

func (a *App) reset(ctx context.Context, args []string) error {
	fs := newFlagSet("reset")
	yes := fs.BoolP("yes", "y", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes && !a.confirm("Reset everything? This will clear all transactions and restore default settings.") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	a.svc.ResetAll(ctx)
	fmt.Fprintln(a.out, "Everything reset.")
	return nil
}

func (a *App) theme(ctx context.Context, args []string) error {
	fs := newFlagSet("theme")
	reset := fs.Bool("reset", false, "restore the default theme")
	list := fs.BoolP("list", "l", false, "list available themes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch {
	case *list:
		current := a.svc.Theme(ctx)
		for _, t := range core.Themes {
			marker := " "
			if t == current {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %s\n", marker, t)
		}
		return nil
	case *reset:
		fmt.Fprintf(a.out, "Theme: %s\n", a.svc.ResetTheme(ctx))
		return nil
	case fs.NArg() == 0:
		fmt.Fprintf(a.out, "Theme: %s\n", a.svc.Theme(ctx))
		return nil
	}
	if _, ok := core.ParseTheme(fs.Arg(0)); !ok {
		return fmt.Errorf("unknown theme %q", fs.Arg(0))
	}
	fmt.Fprintf(a.out, "Theme: %s\n", a.svc.SetTheme(ctx, fs.Arg(0)))
	return nil
}

func (a *App) tutorial(ctx context.Context, args []string) error {
	fs := newFlagSet("tutorial")
	again := fs.Bool("again", false, "show the tour even if it was already seen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.svc.TutorialSeen(ctx) && !*again {
		fmt.Fprintln(a.out, "Tutorial already seen. Use --again to show it.")
		return nil
	}
	for i, step := range tutorialSteps {
		fmt.Fprintf(a.out, "%d/%d  %s\n", i+1, len(tutorialSteps), step)
	}
	a.svc.MarkTutorialSeen(ctx)
	return nil
}

// signedMark hides a leading minus from pflag, which would otherwise read
// an amount like -40 as a bundle of shorthand flags.
const signedMark = "\x00"

func keepSignedAmounts(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if isSignedNumber(arg) {
			arg = signedMark + arg
		}
		out[i] = arg
	}
	return out
}

func restoreArg(arg string) string {
	return strings.TrimPrefix(arg, signedMark)
}

// isSignedNumber matches -<digits> with an optional dot or comma decimal part.
func isSignedNumber(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	digits := false
	for _, r := range arg[1:] {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits
}

func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
