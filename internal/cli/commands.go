package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

// session is a controller driving a console view for one subcommand.
type session struct {
	model   *model.Model
	console *ui.Console
	ctrl    *controller.Controller
	err     error
}

func (a *App) session(ctx context.Context) (*session, error) {
	m, _, err := a.openModel(ctx)
	if err != nil {
		return nil, err
	}
	s := &session{model: m, console: ui.NewConsole()}
	s.console.Group = a.Group
	s.ctrl = controller.New(m, s.console,
		controller.WithLogger(a.log),
		controller.WithErrorHandler(s.record),
	)
	s.ctrl.SetView(a.routeHash())
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

// record keeps the first controller failure so the command exits 1.
func (s *session) record(op string, err error) {
	if s.err == nil {
		s.err = fmt.Errorf("%s: %w", op, err)
	}
}

// finish prints the listing, or the first failure instead.
func (s *session) finish(cmd *cobra.Command) error {
	if s.err != nil {
		return s.err
	}
	s.console.Flush(cmd.OutOrStdout())
	return nil
}

// at resolves a 1-based index argument against the listing for the active route.
func (s *session) at(arg string) (model.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Item{}, usageErr("not a number: %s", arg)
	}
	it, err := s.console.At(n)
	if err != nil {
		return model.Item{}, usageErr("%v (hint: run `todo ls` to see valid indexes)", err)
	}
	return it, nil
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			return s.finish(cmd)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if strings.TrimSpace(title) == "" {
				return usageErr("add: empty title")
			}
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			s.ctrl.AddItem(title)
			return s.finish(cmd)
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for item at 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			it, err := s.at(args[0])
			if err != nil {
				return err
			}
			s.ctrl.Selects(it.ID, !it.Completed)
			return s.finish(cmd)
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Rename the item at 1-based index (an empty title removes it)",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			it, err := s.at(args[0])
			if err != nil {
				return err
			}
			s.ctrl.EditItem(it.ID)
			if _, ok := s.console.Editing(); !ok {
				return s.finish(cmd)
			}
			s.ctrl.EditItemSave(it.ID, strings.Join(args[1:], " "))
			return s.finish(cmd)
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove item at 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			it, err := s.at(args[0])
			if err != nil {
				return err
			}
			s.ctrl.RemoveItem(it.ID)
			return s.finish(cmd)
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			s.ctrl.RemoveCompleted()
			return s.finish(cmd)
		},
	}
}

// titles adapts items to fuzzy.Source.
type titles []model.Item

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

func newFindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query...>",
		Short: "Fuzzy-search item titles",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := app.openModel(cmd.Context())
			if err != nil {
				return err
			}
			var (
				items   []model.Item
				readErr error
			)
			m.Read(model.All(), func(got []model.Item, err error) { items, readErr = got, err })
			if readErr != nil {
				return readErr
			}

			t := ui.Current()
			matches := fuzzy.FindFrom(strings.Join(args, " "), titles(items))
			lines := []string{ui.C(t.Title, fmt.Sprintf("%d match(es)", len(matches))), ""}
			if len(matches) == 0 {
				lines = append(lines, ui.C(t.Muted, "no items"))
			}
			for _, mt := range matches {
				it := items[mt.Index]
				box, color := t.BoxUnchecked, t.Muted
				if it.Completed {
					box, color = t.BoxChecked, t.Success
				}
				lines = append(lines, ui.C(color, box)+" "+highlight(mt.Str, mt.MatchedIndexes, t.Accent))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

// highlight colors the matched byte offsets of s.
func highlight(s string, idx []int, color string) string {
	hit := make(map[int]bool, len(idx))
	for _, i := range idx {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(ui.C(color, string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
