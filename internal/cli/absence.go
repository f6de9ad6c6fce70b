package cli

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/roach88/wad/internal/absence"
	"github.com/roach88/wad/internal/editor"
	"github.com/roach88/wad/internal/selection"
	"github.com/roach88/wad/internal/store"
)

const dateHelp = "YYYY-MM-DD, 'today', 'yesterday', or 'tomorrow'"

// AbsenceOptions holds flags for the absence subcommands.
type AbsenceOptions struct {
	*RootOptions
	Note string
	ID   string
	Year int
}

// NewAbsenceCommand creates the absence command group.
func NewAbsenceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AbsenceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "absence",
		Short: "Manage recorded absences",
		Long: `Manage the local absence ledger.

Absences are stored per day under <data dir>/absences/YYYY/YYYY-MM-DD.json
and count towards the daily work time.`,
	}

	cmd.AddCommand(newAbsenceShowCommand(opts))
	cmd.AddCommand(newAbsenceAddCommand(opts))
	cmd.AddCommand(newAbsenceRemoveCommand(opts))
	cmd.AddCommand(newAbsenceEditCommand(opts))
	cmd.AddCommand(newAbsencePathCommand(opts))
	cmd.AddCommand(newAbsenceListCommand(opts))

	return cmd
}

func newAbsenceShowCommand(opts *AbsenceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show all absences for a specific date",
		Long:  "Show all absences for a specific date (" + dateHelp + ").",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsenceShow(opts, cmd, args[0])
		},
	}
}

func runAbsenceShow(opts *AbsenceOptions, cmd *cobra.Command, dateArg string) error {
	date, err := parseDate(dateArg, opts.today())
	if err != nil {
		return err
	}
	st, err := opts.openStore()
	if err != nil {
		return err
	}

	records, err := st.Get(date)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read absences", err)
	}

	f := opts.formatter(cmd)
	if f.JSON() {
		return f.Success(records)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No absences found for %s\n", dateText(date.String()))
		return nil
	}
	fmt.Fprintf(out, "Absences for %s:\n", dateText(date.String()))
	for _, r := range records {
		fmt.Fprintf(out, "  %s\n", recordLine(r))
	}
	fmt.Fprintf(out, "Total: %s\n", hoursText(absence.FormatHours(absence.TotalHours(records))))
	return nil
}

func newAbsenceAddCommand(opts *AbsenceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <date> <hours> <type>",
		Short: "Add a new absence record",
		Long: `Add a new absence record.

Types: vacation, sick, overtime-reduction, holiday, or other:<label>.

Examples:
  wad absence add today 8 vacation
  wad absence add 2024-01-15 4.5 other:bereavement --note "Funeral"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsenceAdd(opts, cmd, args)
		},
	}
	cmd.Flags().StringVar(&opts.Note, "note", "", "optional note for the absence")
	return cmd
}

func runAbsenceAdd(opts *AbsenceOptions, cmd *cobra.Command, args []string) error {
	date, err := parseDate(args[0], opts.today())
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return NewExitError(ExitFailure, fmt.Sprintf("invalid hours %q: must be a number", args[1]))
	}
	typ, err := absence.ParseType(args[2])
	if err != nil {
		return WrapExitError(ExitFailure, "invalid absence type", err)
	}

	record, err := absence.NewRecord(opts.env.IDs, date, hours, typ, opts.Note)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid absence", err)
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	if err := st.Add(record); err != nil {
		return WrapExitError(ExitCommandError, "failed to add absence", err)
	}

	f := opts.formatter(cmd)
	if f.JSON() {
		return f.Success(record)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", successText("Added absence:"), recordLine(record), dateText(date.String()))
	return nil
}

func newAbsenceRemoveCommand(opts *AbsenceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <date>",
		Short: "Remove a specific absence record",
		Long: `Remove an absence record.

Without --id the only record on the date is removed; when the date has
several records you are asked to pick one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsenceRemove(opts, cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.ID, "id", "", "id of the absence to remove (optional if only one exists)")
	return cmd
}

func runAbsenceRemove(opts *AbsenceOptions, cmd *cobra.Command, dateArg string) error {
	date, st, res, err := selectRecord(opts, dateArg)
	if err != nil {
		return err
	}
	f := opts.formatter(cmd)
	if res.Cancelled() {
		return f.Cancelled()
	}

	removed, err := st.Remove(date, res.Record.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to remove absence", err)
	}
	if !removed {
		return NewExitError(ExitFailure, (&absence.NotFoundError{Date: date, ID: &res.Record.ID}).Error())
	}

	if f.JSON() {
		return f.Success(res.Record)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s from %s\n", successText("Removed absence"), idText(res.Record.ID.String()), dateText(date.String()))
	return nil
}

func newAbsenceEditCommand(opts *AbsenceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <date>",
		Short: "Edit a specific absence record",
		Long: `Edit an absence record in your editor ($VISUAL, $EDITOR, or vi).

The record is opened as JSON. The id and date cannot be changed and hours
must not be negative; an edit that breaks these rules is rejected and the
stored record is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsenceEdit(opts, cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.ID, "id", "", "id of the absence to edit (optional if only one exists)")
	return cmd
}

func runAbsenceEdit(opts *AbsenceOptions, cmd *cobra.Command, dateArg string) error {
	date, st, res, err := selectRecord(opts, dateArg)
	if err != nil {
		return err
	}
	f := opts.formatter(cmd)
	if res.Cancelled() {
		return f.Cancelled()
	}
	original := res.Record

	session := editor.NewSession[absence.Record](
		opts.env.Launcher,
		editor.WithTempDir(opts.env.TempDir),
		editor.WithLogger(opts.logger().WithField("component", "editor")),
	)
	outcome, err := session.Edit(cmd.Context(), original)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to edit absence", err)
	}

	switch outcome.Status {
	case editor.StatusUnchanged:
		if f.JSON() {
			return f.status("unchanged", original)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s No changes made to absence %s\n", infoText("Info:"), idText(original.ID.String()))
		return nil
	case editor.StatusRejected:
		return WrapExitError(ExitFailure, "edit rejected", outcome.Err)
	}

	replaced, err := st.Update(date, outcome.Value)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to update absence", err)
	}
	if !replaced {
		return NewExitError(ExitFailure, fmt.Sprintf("absence %s was removed from %s while editing", original.ID, date))
	}

	if f.JSON() {
		return f.Success(outcome.Value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", successText("Updated absence:"), recordLine(outcome.Value), dateText(date.String()))
	return nil
}

// selectRecord resolves the date argument and --id flag to one record.
func selectRecord(opts *AbsenceOptions, dateArg string) (civil.Date, *store.Store, selection.Result, error) {
	date, err := parseDate(dateArg, opts.today())
	if err != nil {
		return civil.Date{}, nil, selection.Result{}, err
	}
	id, err := parseIDFlag(opts.ID)
	if err != nil {
		return civil.Date{}, nil, selection.Result{}, err
	}
	st, err := opts.openStore()
	if err != nil {
		return civil.Date{}, nil, selection.Result{}, err
	}

	sel := &selection.Selector{Source: st, Prompter: opts.env.Prompter}
	res, err := sel.Select(date, id)
	if err != nil {
		return civil.Date{}, nil, selection.Result{}, err
	}
	return date, st, res, nil
}

func newAbsencePathCommand(opts *AbsenceOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Show the path to the absence data directory",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore()
			if err != nil {
				return err
			}
			return opts.formatter(cmd).Success(st.AbsencesDir())
		},
	}
}

func newAbsenceListCommand(opts *AbsenceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List all absences of a year",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsenceList(opts, cmd)
		},
	}
	cmd.Flags().IntVar(&opts.Year, "year", 0, "year to list (default: current year)")
	return cmd
}

func runAbsenceList(opts *AbsenceOptions, cmd *cobra.Command) error {
	year := opts.Year
	if year == 0 {
		year = opts.today().Year
	}
	st, err := opts.openStore()
	if err != nil {
		return err
	}

	dates, err := st.Dates(year)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list absence dates", err)
	}
	records := []absence.Record{}
	for _, d := range dates {
		day, err := st.Get(d)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read absences", err)
		}
		records = append(records, day...)
	}

	f := opts.formatter(cmd)
	if f.JSON() {
		return f.Success(records)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No absences found in %d\n", year)
		return nil
	}
	fmt.Fprintln(out, headerText(fmt.Sprintf("Absences in %d:", year)))
	for _, r := range records {
		fmt.Fprintf(out, "  %s  %s\n", dateText(r.Date.String()), recordLine(r))
	}
	fmt.Fprintf(out, "Total: %s\n", hoursText(absence.FormatHours(absence.TotalHours(records))))
	return nil
}
