package cli

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"meetsched/config"
	"meetsched/internal/i18n"
	"meetsched/internal/meeting"
	"meetsched/internal/sink"
	"meetsched/internal/suggest"
	"meetsched/internal/ui"
)

var scheduleFlags struct {
	title        string
	description  string
	date         string
	duration     int
	participants []string
	template     string
	timezone     string
	priority     string
	theme        string
	pick         int
	output       string
	notify       bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a meeting without the TUI",
	Long: `Validate a meeting, fetch suggested times, pick one and emit the record.

Examples:
  meetsched schedule --title "Sprint review" --participant ana@example.com --participant bo@example.com
  meetsched schedule --title "Demo" --template client-presentation --date 2026-11-02 --pick 2 --output ics`,
	RunE: runScheduleCmd,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVar(&scheduleFlags.title, "title", "", "meeting title (at least 2 characters)")
	f.StringVar(&scheduleFlags.description, "description", "", "optional description")
	f.StringVar(&scheduleFlags.date, "date", "", "meeting date as YYYY-MM-DD (default today)")
	f.IntVar(&scheduleFlags.duration, "duration", meeting.DefaultDuration, "duration in minutes: 15, 30, 45 or 60")
	f.StringSliceVarP(&scheduleFlags.participants, "participant", "p", nil, "participant email, repeatable or comma separated")
	f.StringVar(&scheduleFlags.template, "template", "", "apply a template before other flags")
	f.StringVar(&scheduleFlags.timezone, "timezone", meeting.DefaultTimezone, "timezone label")
	f.StringVar(&scheduleFlags.priority, "priority", string(meeting.DefaultPriority), "low, medium or high")
	f.StringVar(&scheduleFlags.theme, "theme", meeting.DefaultThemeColor, "theme color")
	f.IntVar(&scheduleFlags.pick, "pick", 0, "1-based suggestion to pick (default: prompt on a terminal, else 1)")
	f.StringVarP(&scheduleFlags.output, "output", "o", "", "record output: log, json or ics (default from config)")
	f.BoolVar(&scheduleFlags.notify, "notify", false, "also raise a desktop notification")
}

func runScheduleCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := i18n.Init(cfg.Language); err != nil {
		log.Printf("i18n initialization failed: %v", err)
	}

	output := cfg.Output
	if scheduleFlags.output != "" {
		output = scheduleFlags.output
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	checkNotifier(cfg.Notify || scheduleFlags.notify)
	out, err := sink.New(output, cmd.OutOrStdout(), logger, cfg.Notify || scheduleFlags.notify)
	if err != nil {
		return err
	}

	flow := meeting.NewFlow(time.Now)
	if err := fillDraft(flow.Draft(), cmd); err != nil {
		return err
	}

	// Progress goes to stderr when stdout carries a json or ics document
	info := cmd.OutOrStdout()
	if output == sink.OutputJSON || output == sink.OutputICS {
		info = cmd.ErrOrStderr()
	}

	pick := fixedPick(scheduleFlags.pick)
	if scheduleFlags.pick == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		pick = promptPick(cmd.InOrStdin(), info)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := schedule{
		flow:       flow,
		suggester:  suggest.NewClient(cfg.SuggestURL, cfg.Timeout()),
		sink:       out,
		info:       info,
		hourlyRate: cfg.HourlyRate,
		pick:       pick,
	}
	_, err = s.run(ctx)
	return err
}

// fillDraft applies the template first so explicit flags win over it
func fillDraft(d *meeting.Draft, cmd *cobra.Command) error {
	f := cmd.Flags()
	if scheduleFlags.template != "" {
		if err := d.ApplyTemplate(scheduleFlags.template); err != nil {
			return err
		}
	}

	sets := []struct {
		flag  string
		field meeting.Field
		value string
	}{
		{"title", meeting.FieldTitle, scheduleFlags.title},
		{"description", meeting.FieldDescription, scheduleFlags.description},
		{"date", meeting.FieldDate, scheduleFlags.date},
		{"duration", meeting.FieldDuration, strconv.Itoa(scheduleFlags.duration)},
		{"participant", meeting.FieldParticipants, strings.Join(scheduleFlags.participants, ",")},
		{"timezone", meeting.FieldTimezone, scheduleFlags.timezone},
		{"priority", meeting.FieldPriority, scheduleFlags.priority},
		{"theme", meeting.FieldThemeColor, scheduleFlags.theme},
	}
	for _, s := range sets {
		if !f.Changed(s.flag) {
			continue
		}
		if err := d.Set(s.field, s.value); err != nil {
			return err
		}
	}

	// The form's placeholder row has no meaning without the TUI
	if !f.Changed("participant") {
		d.Participants = nil
	}
	return nil
}

// pickFunc chooses an index into the suggested labels
type pickFunc func(labels []string) (int, error)

func fixedPick(n int) pickFunc {
	return func(labels []string) (int, error) {
		if n <= 0 {
			n = 1
		}
		if n > len(labels) {
			return 0, fmt.Errorf("%w: --pick %d but only %d times were suggested", meeting.ErrNoSelection, n, len(labels))
		}
		return n - 1, nil
	}
}

func promptPick(in io.Reader, w io.Writer) pickFunc {
	reader := bufio.NewReader(in)
	return func(labels []string) (int, error) {
		for {
			fmt.Fprintf(w, "Pick a time [1-%d]: ", len(labels))
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return 0, fmt.Errorf("%w: %v", meeting.ErrNoSelection, err)
			}
			line = strings.TrimSpace(line)
			if line == "" {
				return 0, nil
			}
			n, convErr := strconv.Atoi(line)
			if convErr == nil && n >= 1 && n <= len(labels) {
				return n - 1, nil
			}
			fmt.Fprintf(w, "Enter a number between 1 and %d\n", len(labels))
			if err != nil {
				return 0, fmt.Errorf("%w: %v", meeting.ErrNoSelection, err)
			}
		}
	}
}

// schedule drives one meeting through the flow without a TUI
type schedule struct {
	flow       *meeting.Flow
	suggester  ui.Suggester
	sink       sink.Sink
	info       io.Writer
	hourlyRate float64
	pick       pickFunc
}

func (s schedule) run(ctx context.Context) (meeting.Record, error) {
	if s.suggester == nil {
		return meeting.Record{}, errNoSuggester
	}
	step, err := s.flow.Submit()
	if err != nil {
		return meeting.Record{}, err
	}
	if step.Kind == meeting.StepInvalid {
		printErrors(s.info, step.Errors)
		return meeting.Record{}, fmt.Errorf("invalid meeting: %w", step.Errors)
	}

	d := s.flow.Draft()
	rate := s.hourlyRate
	if rate == 0 {
		rate = meeting.DefaultHourlyRate
	}
	fmt.Fprintf(s.info, "%s: %s\n", i18n.TOr("form.field.cost", "Est. cost"), meeting.FormatCost(d.Cost(rate)))

	labels, err := s.suggester.Suggest(ctx, step.Request)
	if err != nil {
		s.flow.Fail(step.Request.Generation, err)
		log.Printf("suggestion request %d failed: %v", step.Request.Generation, err)
		return meeting.Record{}, fmt.Errorf("fetch suggested times: %w", err)
	}
	s.flow.Resolve(step.Request.Generation, labels)

	if len(labels) == 0 {
		fmt.Fprintln(s.info, i18n.TOr("suggest.none", "No times available. Adjust the details and submit again."))
		return meeting.Record{}, meeting.ErrNoSelection
	}

	fmt.Fprintln(s.info, i18n.TOr("suggest.heading", "Suggested times"))
	for i, label := range labels {
		fmt.Fprintf(s.info, "  %d. %s\n", i+1, label)
	}

	idx, err := s.pick(labels)
	if err != nil {
		return meeting.Record{}, err
	}
	if err := s.flow.SelectIndex(idx); err != nil {
		return meeting.Record{}, err
	}

	step, err = s.flow.Submit()
	if err != nil {
		return meeting.Record{}, err
	}
	if step.Kind != meeting.StepConfirmed {
		return meeting.Record{}, meeting.ErrNoSelection
	}

	if err := s.sink.Emit(step.Record); err != nil {
		return step.Record, fmt.Errorf("emit record: %w", err)
	}
	fmt.Fprintf(s.info, "%s %s %s %s (%s)\n",
		i18n.TOr("confirm.heading", "Meeting scheduled!"),
		step.Record.Title, step.Record.Date, step.Record.Time, step.Record.Timezone)
	return step.Record, nil
}

func printErrors(w io.Writer, errs meeting.Errors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(fieldRank(a), fieldRank(b)), strings.Compare(a, b))
	})
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, errs[k].Message)
	}
}

// fieldRank orders error keys the way the form lays out its fields.
// Participant entries sit between the list itself and the timezone.
func fieldRank(key string) int {
	switch meeting.Field(key) {
	case meeting.FieldTitle:
		return 0
	case meeting.FieldDescription:
		return 1
	case meeting.FieldDate:
		return 2
	case meeting.FieldDuration:
		return 3
	case meeting.FieldParticipants:
		return 4
	case meeting.FieldTimezone:
		return 6
	case meeting.FieldPriority:
		return 7
	case meeting.FieldThemeColor:
		return 8
	}
	return 5
}

var errNoSuggester = errors.New("no suggestion service configured")
