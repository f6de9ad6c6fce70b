package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wad/internal/config"
	"github.com/roach88/wad/internal/spinner"
	"github.com/roach88/wad/internal/watson"
	"github.com/roach88/wad/internal/worktime"
)

// WorktimeOptions holds flags for the worktime subcommands.
type WorktimeOptions struct {
	*RootOptions
	Projects bool
	Weeks    int
}

// NewWorktimeCommand creates the worktime command group.
func NewWorktimeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorktimeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "worktime",
		Short: "Show tracked work time",
		Long: `Show work time tracked with Watson.

Recorded absences are added to the tracked time of their day.`,
	}

	cmd.AddCommand(newWorktimeTodayCommand(opts))
	cmd.AddCommand(newWorktimeWeeklyCommand(opts))

	return cmd
}

func newWorktimeTodayCommand(opts *WorktimeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "today",
		Short:       "Show today's work time",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorktimeToday(opts, cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Projects, "projects", false, "show breakdown by projects")
	return cmd
}

// TodayResult is the JSON payload of `worktime today`.
type TodayResult struct {
	Date            string           `json:"date"`
	WorkedMinutes   int64            `json:"worked_minutes"`
	AbsenceMinutes  int64            `json:"absence_minutes"`
	TotalMinutes    int64            `json:"total_minutes"`
	ProjectsMinutes map[string]int64 `json:"projects_minutes,omitempty"`
	Active          bool             `json:"active"`
}

func runWorktimeToday(opts *WorktimeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.VerboseLog("Running worktime today command in verbose mode")

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	today := opts.today()

	frames, err := opts.queryWatson(cmd, []watson.LogQuery{{From: today, To: today, IncludeCurrent: true}})
	if err != nil {
		return err
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	records, err := st.Get(today)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read absences", err)
	}

	now := opts.now()
	day := worktime.DayBreakdown{Date: today, Worked: frames[0].TotalDuration(now), Absences: records}

	if f.JSON() {
		res := TodayResult{
			Date:           today.String(),
			WorkedMinutes:  minutes(day.Worked),
			AbsenceMinutes: minutes(day.AbsenceDuration()),
			TotalMinutes:   minutes(day.Total()),
			Active:         frames[0].HasActive(),
		}
		if opts.Projects {
			res.ProjectsMinutes = make(map[string]int64)
			for project, pf := range frames[0].ByProject() {
				res.ProjectsMinutes[project] = minutes(pf.TotalDuration(now))
			}
		}
		return f.Success(res)
	}

	out := cmd.OutOrStdout()
	if opts.Projects {
		byProject := frames[0].ByProject()
		for _, project := range frames[0].Projects() {
			d := byProject[project].TotalDuration(now)
			fmt.Fprintf(out, "%s: %s (%s)\n", projectText(project), hoursText(worktime.FormatHHMM(d)), worktime.FormatLong(d))
		}
		fmt.Fprintln(out)
	}

	th := thresholds(cfg)
	split := levelText(th.Day(day.Total()), worktime.FormatSplit(day))
	fmt.Fprintf(out, "Worktime today: %s (%s)\n", split, worktime.FormatLong(day.Total()))
	return nil
}

func newWorktimeWeeklyCommand(opts *WorktimeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "weekly",
		Short:       "Show weekly work time overview",
		Args:        cobra.NoArgs,
		Annotations: menuEntry,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorktimeWeekly(opts, cmd)
		},
	}
	cmd.Flags().IntVar(&opts.Weeks, "weeks", 4, "number of weeks to show")
	return cmd
}

// WeekResult is one week of the JSON payload of `worktime weekly`.
type WeekResult struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	DailyMinutes []int64 `json:"daily_minutes"`
	TotalMinutes int64   `json:"total_minutes"`
}

func runWorktimeWeekly(opts *WorktimeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	f.VerboseLog("Running worktime weekly command in verbose mode")

	if opts.Weeks < 1 {
		return NewExitError(ExitFailure, fmt.Sprintf("--weeks must be at least 1, got %d", opts.Weeks))
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	weeks := worktime.LastNWeeks(opts.today(), opts.Weeks)
	queries := make([]watson.LogQuery, len(weeks))
	for i, w := range weeks {
		queries[i] = watson.LogQuery{From: w.Start, To: w.End, IncludeCurrent: true}
	}
	frames, err := opts.queryWatson(cmd, queries)
	if err != nil {
		return err
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	records, err := st.Range(weeks[0].Start, weeks[len(weeks)-1].End)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read absences", err)
	}

	now := opts.now()
	summaries := make([]worktime.WeekSummary, len(weeks))
	for i, w := range weeks {
		summaries[i] = worktime.Summarize(w, frames[i], records, opts.env.Location, now)
	}

	if f.JSON() {
		out := make([]WeekResult, len(summaries))
		for i, s := range summaries {
			daily := make([]int64, len(s.Days))
			for j, d := range s.Days {
				daily[j] = minutes(d.Total())
			}
			out[i] = WeekResult{
				Start:        s.Week.Start.String(),
				End:          s.Week.End.String(),
				DailyMinutes: daily,
				TotalMinutes: minutes(s.Total()),
			}
		}
		return f.Success(out)
	}

	renderWeekly(cmd.OutOrStdout(), summaries, thresholds(cfg))
	return nil
}

// queryWatson runs the queries behind a debounced spinner.
func (o *RootOptions) queryWatson(cmd *cobra.Command, queries []watson.LogQuery) ([]watson.Frames, error) {
	guard := spinner.Start(o.env.Spinner)
	defer guard.Stop()

	if !o.env.Watson.Usable(cmd.Context()) {
		return nil, NewExitError(ExitCommandError, "watson is not available: install the Watson CLI and make sure it is on your PATH")
	}

	out := make([]watson.Frames, len(queries))
	for i, q := range queries {
		frames, err := o.env.Watson.Log(cmd.Context(), q)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to query watson", err)
		}
		out[i] = frames
	}
	return out, nil
}

func thresholds(cfg config.Config) worktime.Thresholds {
	return worktime.NewThresholds(cfg.DailyWorktimeLow, cfg.DailyWorktimeMedium, cfg.DailyWorktimeGood, cfg.WorkhoursPerWeek)
}

func minutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}
