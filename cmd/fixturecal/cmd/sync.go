package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fixturecal/fixturecal"
	"github.com/fixturecal/fixturecal/internal/config"
	"github.com/fixturecal/fixturecal/pkg/calendar"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/logging"
	"github.com/fixturecal/fixturecal/pkg/sources"
)

var (
	fixturesFile  string
	tvFile        string
	stadiumsFile  string
	snapshotsFile string
	outputFile    string
	teamFlag      string
	homeVenueFlag string
	registryFlag  string
)

// syncCmd runs one reconciliation cycle over collaborator dumps.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation cycle",
	Long: `Sync consumes the scraper's JSON dumps (fixtures, TV listings,
stadium details) plus the calendar transport's event snapshots, runs one
reconciliation cycle, and emits the per-fixture decisions as JSON for the
transport to apply.

The exit is non-zero only on real failures; a cycle where every fixture
is skipped is a success.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&fixturesFile, "fixtures", "", "fixture rows JSON dump (required)")
	syncCmd.Flags().StringVar(&tvFile, "tv", "", "TV listings JSON dump")
	syncCmd.Flags().StringVar(&stadiumsFile, "stadiums", "", "stadium details JSON dump")
	syncCmd.Flags().StringVar(&snapshotsFile, "snapshots", "", "existing calendar snapshots JSON dump")
	syncCmd.Flags().StringVarP(&outputFile, "output", "o", "-", "decisions output path, - for stdout")
	syncCmd.Flags().StringVar(&teamFlag, "team", "", "followed team name (overrides config)")
	syncCmd.Flags().StringVar(&homeVenueFlag, "home-venue", "", "home ground location label (overrides config)")
	syncCmd.Flags().StringVar(&registryFlag, "registry", "", "venue registry YAML path (overrides config)")

	cobra.CheckErr(syncCmd.MarkFlagRequired("fixtures"))
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if teamFlag != "" {
		cfg.TeamName = teamFlag
	}
	if homeVenueFlag != "" {
		cfg.HomeVenue = homeVenueFlag
	}
	if registryFlag != "" {
		cfg.RegistryPath = registryFlag
	}
	if cfg.TeamName == "" {
		return errors.NewValidationError("team", "set --team or TEAM_NAME")
	}

	input, err := loadInput()
	if err != nil {
		return err
	}

	engine, err := fixturecal.New(
		fixturecal.WithTeam(cfg.TeamName, cfg.HomeVenue),
		fixturecal.WithRegistryPath(cfg.RegistryPath),
		fixturecal.WithDigestHeader(cfg.DigestHeader),
		fixturecal.WithSimilarityThreshold(cfg.SimilarityThreshold),
		fixturecal.WithGenericMinLen(cfg.GenericStadiumMinLen),
	)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	result, err := engine.Cycle(input)
	if result == nil {
		return err
	}
	if err != nil {
		logging.Warn().Err(err).Msg("Cycle finished with errors")
	}

	if writeErr := writeResult(result); writeErr != nil {
		return writeErr
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✅ %d fixtures: %d new, %d updated (%d notified), %d unchanged\n",
		result.Summary.Total(), result.Summary.Inserted,
		result.Summary.Updated+result.Summary.Notified, result.Summary.Notified,
		result.Summary.Skipped)
	if result.NextVenueCheck != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "🔎 next venue check: %s (%s)\n",
			result.NextVenueCheck.ID, result.NextVenueCheck.Permalink)
	}

	return err
}

// loadInput reads the collaborator dumps into a cycle input. Only the
// fixtures dump is mandatory; the rest default to empty.
func loadInput() (*fixturecal.Input, error) {
	input := &fixturecal.Input{
		Listings: sources.Listings{},
		Existing: map[string]*calendar.Snapshot{},
	}

	if err := readJSON(fixturesFile, &input.Rows); err != nil {
		return nil, err
	}
	if tvFile != "" {
		if err := readJSON(tvFile, &input.Listings); err != nil {
			return nil, err
		}
	}
	if stadiumsFile != "" {
		if err := readJSON(stadiumsFile, &input.Stadiums); err != nil {
			return nil, err
		}
	}
	if snapshotsFile != "" {
		var snapshots []calendar.Snapshot
		if err := readJSON(snapshotsFile, &snapshots); err != nil {
			return nil, err
		}
		for i := range snapshots {
			input.Existing[snapshots[i].ID] = &snapshots[i]
		}
	}

	return input, nil
}

// readJSON decodes a dump file into out.
func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

// decisionOut is the wire shape of one decision for the transport layer.
type decisionOut struct {
	MatchID         string    `json:"match_id"`
	Action          string    `json:"action"`
	Title           string    `json:"title,omitempty"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	Start           time.Time `json:"start,omitzero"`
	End             time.Time `json:"end,omitzero"`
	ReminderMinutes []int     `json:"reminder_minutes,omitempty"`
	Changes         []string  `json:"changes,omitempty"`
}

// resultOut is the wire shape of one cycle's output.
type resultOut struct {
	Decisions []decisionOut `json:"decisions"`
	Digest    string        `json:"digest,omitempty"`
}

// writeResult serializes decisions and digest for the transport layer.
func writeResult(result *fixturecal.Result) error {
	out := resultOut{
		Decisions: make([]decisionOut, 0, len(result.Decisions)),
		Digest:    result.Digest,
	}
	for _, d := range result.Decisions {
		row := decisionOut{
			MatchID: d.Fixture.ID,
			Action:  string(d.Decision.Action),
			Changes: d.Decision.Changes,
		}
		if d.Decision.Mutates() {
			event := d.Decision.Event
			row.Title = event.Title
			row.Description = event.Description
			row.Location = event.Location
			row.Start = event.Start
			row.End = event.End
			row.ReminderMinutes = event.ReminderMinutes
		}
		out.Decisions = append(out.Decisions, row)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.WrapParse("json", "decisions", err)
	}
	data = append(data, '\n')

	if outputFile == "-" || outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return errors.WrapIO("write", outputFile, err)
	}
	return nil
}
