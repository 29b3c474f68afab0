package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusflow/internal/bootstrap"
	focusdto "focusflow/internal/modules/focus/dto"
	"focusflow/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Focus sessions that pay out coins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", ".", "directory holding .focusflow state")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newFocusCmd(&homePath))
	root.AddCommand(newSessionCmd(&homePath))
	root.AddCommand(newWalletCmd(&homePath))
	root.AddCommand(newStoreCmd(&homePath))
	root.AddCommand(newInventoryCmd(&homePath))
	root.AddCommand(newTaskCmd(&homePath))
	root.AddCommand(newRemindersCmd(&homePath))
	root.AddCommand(newBuildCmd(&homePath))
	root.AddCommand(newSettingsCmd(&homePath))
	root.AddCommand(newNotifyCmd(&homePath))
	root.AddCommand(newPluginCmd(&homePath))
	return root
}

func loadApp(ctx context.Context, homePath string, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, opts)
}

// withApp runs fn against a freshly wired app, then gives queued
// notifications their drain window before closing.
func withApp(homePath *string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, *homePath, bootstrap.Options{})
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	app.Drain(ctx)
	if err := app.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// run adapts withApp to a cobra RunE.
func run(homePath *string, fn func(ctx context.Context, cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(homePath, func(ctx context.Context, app *bootstrap.App) error {
			return fn(ctx, cmd, args, app)
		})
	}
}

func newTUICmd(homePath *string) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the focusflow terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := loadApp(ctx, *homePath, bootstrap.Options{LogToFile: true})
			if err != nil {
				return err
			}
			if metricsAddr == "" {
				metricsAddr = app.Config.MetricsAddr
			}
			app.Background(ctx, metricsAddr)
			runErr := bootstrap.RunTUI(ctx, app)
			app.Drain(context.Background())
			if err := app.Close(); err != nil && runErr == nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// ─── focus ───────────────────────────────────────────────────────────────────

func newFocusCmd(homePath *string) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Focus session lifecycle"}

	var minutes int
	var taskID string
	start := &cobra.Command{
		Use:   "start --minutes <n>",
		Short: "Start a focus session",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if minutes == 0 {
				st, err := app.FocusCLI.Status(ctx)
				if err != nil {
					return err
				}
				minutes = int(st.Configured / time.Minute)
			}
			out, err := app.FocusCLI.Start(ctx, minutes, taskID)
			if err != nil {
				return err
			}
			printOutcome(cmd, out)
			return nil
		}),
	}
	start.Flags().IntVar(&minutes, "minutes", 0, "session length in minutes (0 uses the saved timer)")
	start.Flags().StringVar(&taskID, "task", "", "task the session is for")

	transition := func(use, short string, fn func(app *bootstrap.App) func(context.Context) (focusdto.OutcomeOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
				out, err := fn(app)(ctx)
				if err != nil {
					return err
				}
				printOutcome(cmd, out)
				return nil
			}),
		}
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current run",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			st, err := app.FocusCLI.Status(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd, st)
			return nil
		}),
	}

	focus.AddCommand(
		start,
		transition("tick", "Advance the engine clock", func(app *bootstrap.App) func(context.Context) (focusdto.OutcomeOutput, error) {
			return app.FocusCLI.Tick
		}),
		transition("interrupt", "Record leaving the session", func(app *bootstrap.App) func(context.Context) (focusdto.OutcomeOutput, error) {
			return app.FocusCLI.Interrupt
		}),
		transition("return", "Record coming back to the session", func(app *bootstrap.App) func(context.Context) (focusdto.OutcomeOutput, error) {
			return app.FocusCLI.Return
		}),
		status,
	)
	return focus
}

func printOutcome(cmd *cobra.Command, out focusdto.OutcomeOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "outcome: %s\n", out.Outcome)
	if out.Pass != "" {
		_, _ = fmt.Fprintf(w, "pass: %s\n", out.Pass)
	}
	if out.Session != nil {
		printSession(cmd, *out.Session)
	}
	printStatus(cmd, out.Status)
}

func printStatus(cmd *cobra.Command, st focusdto.StatusOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "phase: %s\n", st.Phase)
	switch st.Phase {
	case "running":
		_, _ = fmt.Fprintf(w, "remaining: %s\nends: %s\nprogress: %.0f%%\n", st.Remaining, st.EndsAt.Local().Format(time.RFC3339), st.Progress*100)
		if st.AccumulatedDistraction > 0 {
			_, _ = fmt.Fprintf(w, "distraction: %s\n", st.AccumulatedDistraction)
		}
	case "failing":
		_, _ = fmt.Fprintf(w, "failing since: %s\n", st.FailingSince.Local().Format(time.RFC3339))
	default:
		_, _ = fmt.Fprintf(w, "timer: %s\n", st.Configured)
	}
}

// ─── sessions ────────────────────────────────────────────────────────────────

func newSessionCmd(homePath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Recorded focus sessions"}

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			sessions, err := app.FocusCLI.Sessions(ctx)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s/%s\t%+d\tfailed=%t\n", s.ID, s.StartDate.Local().Format(time.RFC3339), s.ActualDuration, s.PlannedDuration, s.CoinsDelta, s.Failed)
			}
			return nil
		}),
	})

	session.AddCommand(&cobra.Command{
		Use:   "last",
		Short: "Show the most recent session",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			s, err := app.FocusCLI.Last(ctx)
			if err != nil {
				return err
			}
			printSession(cmd, s)
			return nil
		}),
	})

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show one session",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			s, err := app.FocusCLI.Show(ctx, showID)
			if err != nil {
				return err
			}
			printSession(cmd, s)
			return nil
		}),
	}
	show.Flags().StringVar(&showID, "id", "", "session id")

	var deleteID string
	del := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a session record",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			if err := app.FocusCLI.Delete(ctx, deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		}),
	}
	del.Flags().StringVar(&deleteID, "id", "", "session id")

	session.AddCommand(show, del)
	return session
}

func printSession(cmd *cobra.Command, s focusdto.SessionOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session: %s\nstarted: %s\nplanned: %s\nactual: %s\ncoins: %+d\nfailed: %t\n",
		s.ID, s.StartDate.Local().Format(time.RFC3339), s.PlannedDuration, s.ActualDuration, s.CoinsDelta, s.Failed)
	if s.TaskID != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task: %s\n", s.TaskID)
	}
}

// ─── wallet / store / inventory ──────────────────────────────────────────────

func newWalletCmd(homePath *string) *cobra.Command {
	wallet := &cobra.Command{Use: "wallet", Short: "Coin balance"}

	wallet.AddCommand(&cobra.Command{
		Use:   "balance",
		Short: "Show the coin balance",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			bal, err := app.WalletCLI.Balance(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", bal.Coins)
			return nil
		}),
	})

	var coins int64
	set := &cobra.Command{
		Use:   "set --coins <n>",
		Short: "Overwrite the coin balance",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if !cmd.Flags().Changed("coins") {
				return fmt.Errorf("--coins is required")
			}
			bal, err := app.WalletCLI.Set(ctx, coins)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", bal.Coins)
			return nil
		}),
	}
	set.Flags().Int64Var(&coins, "coins", 0, "new balance")
	wallet.AddCommand(set)
	return wallet
}

func newStoreCmd(homePath *string) *cobra.Command {
	store := &cobra.Command{Use: "store", Short: "Spend coins on items"}

	store.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the catalog",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			items, err := app.InventoryCLI.Catalog(ctx)
			if err != nil {
				return err
			}
			for _, it := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d coins\towned=%d\n", it.ID, it.Name, it.Price, it.Owned)
			}
			return nil
		}),
	})

	var itemID string
	var quantity int
	buy := &cobra.Command{
		Use:   "buy --item <id>",
		Short: "Buy an item",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.InventoryCLI.Buy(ctx, itemID, quantity)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bought %d x %s for %d coins, %d left\n", out.Quantity, out.ItemID, out.Spent, out.Remaining)
			return nil
		}),
	}
	buy.Flags().StringVar(&itemID, "item", "", "catalog item id")
	buy.Flags().IntVar(&quantity, "quantity", 1, "how many to buy")

	var iconID string
	useIcon := &cobra.Command{
		Use:   "use-icon --item <id>",
		Short: "Switch to an owned app icon",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.InventoryCLI.UseIcon(ctx, iconID); err != nil {
				return err
			}
			icon, err := app.InventoryCLI.CurrentIcon(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "icon: %s\n", icon)
			return nil
		}),
	}
	useIcon.Flags().StringVar(&iconID, "item", "", "icon item id")

	store.AddCommand(buy, useIcon, &cobra.Command{
		Use:   "reset-icon",
		Short: "Go back to the default app icon",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.InventoryCLI.ResetIcon(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "icon: default")
			return nil
		}),
	})
	return store
}

func newInventoryCmd(homePath *string) *cobra.Command {
	inventory := &cobra.Command{Use: "inventory", Short: "Owned items"}

	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List owned items, optionally of one kind",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			items, err := app.InventoryCLI.Owned(ctx, kind)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing owned")
				return nil
			}
			for _, it := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", it.ID, it.ItemID, it.PurchaseTime.Local().Format(time.RFC3339), it.PurchasePrice)
			}
			return nil
		}),
	}
	list.Flags().StringVar(&kind, "kind", "", "catalog item id to filter by")
	inventory.AddCommand(list)
	return inventory
}

// ─── tasks / reminders ───────────────────────────────────────────────────────

func newTaskCmd(homePath *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Tasks to focus on"}

	var name, due, estimate string
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Add a task",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			t, err := app.TasksCLI.Add(ctx, name, due, estimate)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task added: %s %s\n", t.ID, t.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&name, "name", "", "task name")
	add.Flags().StringVar(&due, "due", "", "due date, RFC3339 or YYYY-MM-DD")
	add.Flags().StringVar(&estimate, "estimate", "", "estimated duration, e.g. 1h30m")

	list := &cobra.Command{
		Use:   "list",
		Short: "List incomplete tasks",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			tasks, err := app.TasksCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				dueText := "-"
				if !t.DueDate.IsZero() {
					dueText = t.DueDate.Local().Format(time.RFC3339)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", t.ID, t.Name, dueText, t.EstimatedDuration)
			}
			return nil
		}),
	}

	var toggleID string
	toggle := &cobra.Command{
		Use:   "toggle --id <id>",
		Short: "Flip a task's completed flag",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			t, err := app.TasksCLI.Toggle(ctx, toggleID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s completed=%t\n", t.ID, t.Completed)
			return nil
		}),
	}
	toggle.Flags().StringVar(&toggleID, "id", "", "task id")

	var deleteID string
	del := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a task",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.TasksCLI.Delete(ctx, deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		}),
	}
	del.Flags().StringVar(&deleteID, "id", "", "task id")

	task.AddCommand(add, list, toggle, del)
	return task
}

func newRemindersCmd(homePath *string) *cobra.Command {
	reminders := &cobra.Command{Use: "reminders", Short: "Reminders from the selected list"}

	reminders.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show reminders from the selected list",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			items := app.TasksCLI.Reminders(ctx)
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminders")
				return nil
			}
			for _, r := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tcompleted=%t\n", r.ID, r.Title, r.Completed)
			}
			return nil
		}),
	})

	reminders.AddCommand(&cobra.Command{
		Use:   "lists",
		Short: "Show the available reminder lists",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			lists, err := app.TasksCLI.ReminderLists(ctx)
			if err != nil {
				return err
			}
			for _, l := range lists {
				mark := " "
				if l.Selected {
					mark = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", mark, l.ID, l.Title)
			}
			return nil
		}),
	})

	access := func(use, short string, grant bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
				fn := app.TasksCLI.Revoke
				if grant {
					fn = app.TasksCLI.Grant
				}
				out, err := fn(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "access=%t list=%s\n", out.Granted, out.ListID)
				return nil
			}),
		}
	}

	var listName string
	sel := &cobra.Command{
		Use:   "select --list <name>",
		Short: "Choose which list reminders come from",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.TasksCLI.Select(ctx, listName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "access=%t list=%s\n", out.Granted, out.ListID)
			return nil
		}),
	}
	sel.Flags().StringVar(&listName, "list", "", "list id or title")

	reminders.AddCommand(access("grant", "Allow reading reminders", true), access("revoke", "Stop reading reminders", false), sel)
	return reminders
}

// ─── build ───────────────────────────────────────────────────────────────────

func newBuildCmd(homePath *string) *cobra.Command {
	build := &cobra.Command{Use: "build", Short: "The build canvas"}

	var image, color string
	var width, height, x, y, z float64
	place := &cobra.Command{
		Use:   "place (--image NAME | --color HEX)",
		Short: "Place an item on the canvas",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			it, err := app.BuildCLI.Place(ctx, image, color, width, height, x, y, z)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "placed %s z=%g\n", it.ID, it.ZIndex)
			return nil
		}),
	}
	place.Flags().StringVar(&image, "image", "", "image name")
	place.Flags().StringVar(&color, "color", "", "color as #RRGGBB")
	place.Flags().Float64Var(&width, "width", 100, "width")
	place.Flags().Float64Var(&height, "height", 100, "height")
	place.Flags().Float64Var(&x, "x", 0, "x offset")
	place.Flags().Float64Var(&y, "y", 0, "y offset")
	place.Flags().Float64Var(&z, "z", 0, "z index (0 stacks on top)")

	var moveID string
	var moveX, moveY float64
	move := &cobra.Command{
		Use:   "move --id <id> --x <x> --y <y>",
		Short: "Move an item",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			it, err := app.BuildCLI.Move(ctx, moveID, moveX, moveY)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "moved %s to (%g, %g)\n", it.ID, it.OffsetX, it.OffsetY)
			return nil
		}),
	}
	move.Flags().StringVar(&moveID, "id", "", "item id")
	move.Flags().Float64Var(&moveX, "x", 0, "x offset")
	move.Flags().Float64Var(&moveY, "y", 0, "y offset")

	list := &cobra.Command{
		Use:   "list",
		Short: "List canvas items back to front",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.BuildCLI.List(ctx)
			if err != nil {
				return err
			}
			if out.Cleared {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "canvas was cleared by a failed session")
			}
			for _, it := range out.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%gx%g\t(%g, %g)\tz=%g\n", it.ID, it.Kind, it.Name, it.Width, it.Height, it.OffsetX, it.OffsetY, it.ZIndex)
			}
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.BuildCLI.Clear(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "canvas cleared")
			return nil
		}),
	}

	build.AddCommand(place, move, list, clearCmd)
	return build
}

// ─── settings / notify / plugins ─────────────────────────────────────────────

func newSettingsCmd(homePath *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Raw settings access"}

	settings.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, args []string, app *bootstrap.App) error {
			v, err := app.Settings.String(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		}),
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a setting",
		Args:  cobra.ExactArgs(2),
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, args []string, app *bootstrap.App) error {
			return app.Settings.SetString(ctx, args[0], args[1])
		}),
	})
	return settings
}

func newNotifyCmd(homePath *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Notification channels"}
	notify.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Send a Slack test message",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.NotifyCLI.Test(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			if !out.OK {
				return fmt.Errorf("slack test failed")
			}
			return nil
		}),
	})
	return notify
}

func newPluginCmd(homePath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Notifier plugins"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			plugins, err := app.NotifyCLI.Plugins(ctx)
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n", p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
			}
			return nil
		}),
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: run(homePath, func(ctx context.Context, cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			results, err := app.NotifyCLI.Doctor(ctx)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s healthy=%t", r.Name, r.Healthy)
				if r.Message != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " message=%q", r.Message)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		}),
	})
	return plugin
}
