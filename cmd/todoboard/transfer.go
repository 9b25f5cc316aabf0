package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/td0m/todoboard/pkg/todo"
	"github.com/td0m/todoboard/pkg/transfer"
)

func newImportCmd(app *App, s *session) *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import todos from a CSV or Excel file",
		Long:  "Import todos from a CSV or .xlsx file. Rows without a title are rejected; bad categories and due dates fall back to defaults with a warning. The current todos are replaced unless --merge is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := transfer.ReadFile(app.abs(args[0]))
			if err != nil {
				return err
			}
			rep := transfer.Process(rows)
			out := cmd.OutOrStdout()
			for _, m := range rep.Messages() {
				fmt.Fprintln(out, m)
			}
			if len(rep.Valid) == 0 {
				return fmt.Errorf("no valid rows in %s", filepath.Base(args[0]))
			}
			mode := todo.Replace
			if merge {
				mode = todo.Merge
			}
			for _, w := range rep.Warnings {
				s.logger.Debug("import warning", "file", args[0], "detail", w)
			}
			imported, _ := s.store.Import(rep.Valid, mode)
			s.logger.Info("imported todos", "file", args[0], "imported", imported, "invalid", len(rep.Invalid), "warnings", len(rep.Warnings))
			fmt.Fprintf(out, "imported %d todos, %d rows rejected, %d warnings\n", imported, len(rep.Invalid), len(rep.Warnings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "keep the current todos and put the imported ones first")
	return cmd
}

func newExportCmd(app *App, s *session) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export todos to a .csv or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projected := todo.Project(s.store.All(), ff.filter())
			if err := transfer.WriteFile(app.abs(args[0]), projected); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d todos to %s\n", len(projected), args[0])
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func newTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "template FILE",
		Short: "Write a sample CSV file to start an import from",
		Args:  cobra.ExactArgs(1),
		// the template needs no storage
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(app.abs(args[0]))
			if err != nil {
				return err
			}
			if err := transfer.WriteTemplate(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
