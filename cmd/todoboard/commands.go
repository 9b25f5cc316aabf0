package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/todo/date"
)

const shortID = 8

// filterFlags are shared by every command that works on a projection
type filterFlags struct {
	search         string
	hideCompleted  bool
	hideIncomplete bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "only todos whose title or description contains this text")
	cmd.Flags().BoolVar(&f.hideCompleted, "hide-completed", false, "leave out completed todos")
	cmd.Flags().BoolVar(&f.hideIncomplete, "hide-incomplete", false, "leave out incomplete todos")
}

func (f filterFlags) filter() todo.Filter {
	return todo.Filter{
		Search:         f.search,
		ShowCompleted:  !f.hideCompleted,
		ShowIncomplete: !f.hideIncomplete,
	}
}

func parseCategory(s string) (todo.Category, error) {
	c, ok := todo.ParseCategory(s)
	if !ok {
		return "", fmt.Errorf("unknown category %q, expected one of %v", s, todo.Categories)
	}
	return c, nil
}

func short(id todo.ID) string {
	if len(id) > shortID {
		return string(id[:shortID])
	}
	return string(id)
}

func newAddCmd(s *session) *cobra.Command {
	var desc, category, due string
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a todo at the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := todo.Draft{Title: strings.Join(args, " "), Description: desc}
			if category != "" {
				c, err := parseCategory(category)
				if err != nil {
					return err
				}
				d.Category = c
			}
			if due != "" {
				t, err := date.ParseDue(due, s.store.Now())
				if err != nil {
					return fmt.Errorf("due date %q: %w", due, err)
				}
				d.DueDate = t
			}
			t, err := s.store.Add(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", short(t.ID), t.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "Work, Personal or Urgent")
	cmd.Flags().StringVar(&due, "due", "", "due date, e.g. 2025-02-10, tomorrow, 3d, friday")
	return cmd
}

func newListCmd(s *session) *cobra.Command {
	var (
		ff      filterFlags
		page    int
		perPage int
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List one page of todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := s.store.All()
			projected := todo.Project(all, ff.filter())
			p := s.pager(page, perPage, len(projected)).Of(projected)
			printPage(cmd.OutOrStdout(), p, todo.Summarize(all, projected), s)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page number, clamped to the last page")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "todos per page, at least 5 (default from config)")
	return cmd
}

func printPage(out io.Writer, p todo.Page, stats todo.Stats, s *session) {
	if len(p.Items) == 0 {
		if stats.Total == 0 {
			fmt.Fprintln(out, "no todos yet")
		} else {
			fmt.Fprintln(out, "no todos match")
		}
		return
	}
	now := s.store.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tCATEGORY\tDUE\tTITLE")
	for _, t := range p.Items {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		due := date.FormatISO(t.DueDate)
		switch {
		case t.Completed || due == "":
		case t.IsOverdue(now):
			due += " (overdue)"
		case t.IsDueSoon(now, s.cfg.DueSoonDays):
			due += " (soon)"
		}
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", short(t.ID), done, t.Category, due, t.Title)
	}
	w.Flush()
	fmt.Fprintf(out, "page %d/%d, %d of %d todos, %d completed\n", p.Number, p.TotalPages, stats.Filtered, stats.Total, stats.Completed)
}

func newDoneCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle whether a todo is completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if t, err = s.store.Toggle(t.ID); err != nil {
				return err
			}
			state := "not completed"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is %s\n", short(t.ID), t.Title, state)
			return nil
		},
	}
}

func newEditCmd(app *App, s *session) *cobra.Command {
	var (
		title, desc, category, due string
		noDue                      bool
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the fields of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			var p todo.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				if strings.TrimSpace(title) == "" {
					return todo.ErrEmptyTitle
				}
				p.Title = &title
			}
			if flags.Changed("desc") {
				p.Description = &desc
			}
			if flags.Changed("category") {
				c, err := parseCategory(category)
				if err != nil {
					return err
				}
				p.Category = &c
			}
			switch {
			case noDue && flags.Changed("due"):
				return errors.New("--due and --no-due are mutually exclusive")
			case noDue:
				p.DueSet = true
			case flags.Changed("due"):
				d, err := date.ParseDue(due, app.Now())
				if err != nil {
					return fmt.Errorf("due date %q: %w", due, err)
				}
				p.DueSet, p.DueDate = true, d
			}
			if t, err = s.store.Update(t.ID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", short(t.ID), t.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "Work, Personal or Urgent")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the due date")
	return cmd
}

func newRmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := s.store.Delete(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", short(t.ID), t.Title)
			return nil
		},
	}
}

func newClearCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete every todo without --yes")
			}
			n := s.store.Len()
			s.store.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d todos\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}

func newMoveCmd(s *session) *cobra.Command {
	var (
		ff      filterFlags
		page    int
		perPage int
	)
	cmd := &cobra.Command{
		Use:   "move ID POSITION",
		Short: "Move a todo to a 1-based position on its page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return fmt.Errorf("invalid position %q", args[1])
			}
			f := ff.filter()
			if !f.DragEnabled() {
				return todo.ErrReorderLocked
			}
			projected := todo.Project(s.store.All(), f)
			pg := s.pager(page, perPage, len(projected))
			if page == 0 {
				pg.GoTo(pageOf(projected, t.ID, pg.PerPage))
			}
			p := pg.Of(projected)
			from := p.Items.Index(t.ID)
			if from < 0 {
				return fmt.Errorf("%s is not on page %d", short(t.ID), p.Number)
			}
			to := min(pos, len(p.Items)) - 1
			if err := s.store.MovePage(f, p.Number, pg.PerPage, todo.Move(p.Items, from, to)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s %s to position %d on page %d\n", short(t.ID), t.Title, to+1, p.Number)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().IntVar(&page, "page", 0, "page the position refers to (default: the todo's page)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "todos per page, at least 5 (default from config)")
	return cmd
}

// pager starts at page, clamped to the pages of the projection. A zero
// perPage keeps the configured size.
func (s *session) pager(page, perPage, projectedLen int) *todo.Pager {
	pg := todo.NewPager(s.cfg.ItemsPerPage)
	if perPage != 0 {
		pg.SetPerPage(perPage, s.store.Len())
	}
	pg.Page = page
	pg.Sync(projectedLen, s.store.Len())
	return pg
}

// pageOf returns the 1-based page holding id, or 1 when it is not projected
func pageOf(projected todo.Collection, id todo.ID, perPage int) int {
	i := projected.Index(id)
	if i < 0 {
		return 1
	}
	return i/perPage + 1
}

func newSortCmd(s *session) *cobra.Command {
	var desc bool
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Rewrite the manual order by due date, undated todos last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := todo.Asc
			if desc {
				dir = todo.Desc
			}
			s.store.SortByDueDate(dir)
			fmt.Fprintf(cmd.OutOrStdout(), "sorted %d todos by due date (%s)\n", s.store.Len(), dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&desc, "desc", false, "latest due date first")
	return cmd
}
