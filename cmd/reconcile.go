package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"movies-app/core/reconcile"
	"movies-app/core/utils"
	"movies-app/feature/artists"
	"movies-app/feature/catalog"
	"movies-app/feature/movies"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile commands
	reconcileIDs   []string
	clearLinks     bool
	dryRunLinks    bool
	yesConfirm     bool
	strictLinksCLI bool
)

// reconcileCmd is the parent command for link reconciliation.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the links of one movie or artist against a target set",
	Long: `Plan and apply the minimal link insertions and removals that make one owner's
links equal the given target ids.

Examples:
  # Preview the changes only
  reconcile movie 3 --ids 1,4,7 --dry-run

  # Apply with auto-confirm (non-interactive)
  reconcile artist 12 --ids 2,5 --yes

  # Remove every link of a movie
  reconcile movie 3 --clear --yes`,
}

var reconcileMovieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Reconcile the artists of a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd.Context(), reconcile.RoleMovie, args[0])
	},
}

var reconcileArtistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "Reconcile the movies of an artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd.Context(), reconcile.RoleArtist, args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{reconcileMovieCmd, reconcileArtistCmd} {
		c.Flags().StringSliceVar(&reconcileIDs, "ids", nil, "Target ids of the related side (comma separated)")
		c.Flags().BoolVar(&clearLinks, "clear", false, "Remove every link of the owner")
		c.Flags().BoolVar(&dryRunLinks, "dry-run", false, "Print the plan without applying it")
		c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
		c.Flags().BoolVar(&strictLinksCLI, "strict", false, "Fail on target ids that do not exist")
		reconcileCmd.AddCommand(c)
	}

	RootCmd.AddCommand(reconcileCmd)
}

// planFunc reconciles one owner; dryRun plans without applying.
type planFunc func(ctx context.Context, id int, target []int, dryRun bool) (*reconcile.Plan, error)

func runReconcile(ctx context.Context, role reconcile.Role, rawID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := utils.ParseID(rawID)
	if err != nil {
		return err
	}

	if clearLinks == (reconcileIDs != nil) {
		return fmt.Errorf("exactly one of --ids or --clear is required")
	}

	// --clear submits no selection at all, which drops every link.
	target, err := reconcile.ParseSelection(reconcileIDs)
	if err != nil {
		return err
	}

	cfg, l, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	opts := cfg.Reconcile.Options()
	if strictLinksCLI {
		opts.StrictReferences = true
	}
	validator := catalog.NewValidator(nil)

	var run planFunc
	switch role {
	case reconcile.RoleMovie:
		run = movies.NewService(db, l, validator, opts).ReconcileArtists
	default:
		run = artists.NewService(db, l, validator, opts).ReconcileMovies
	}

	// Step 1: Plan (always runs)
	plan, err := run(ctx, id, target, true)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printPlanReport(l, plan)

	if dryRunLinks {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if plan.IsEmpty() {
		l.Info("No actions required.")
		return nil
	}

	// Step 2: Apply (if confirmed). The plan is rebuilt inside the apply
	// transaction, so concurrent edits since the preview are taken into account.
	if !confirmAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	applied, err := run(ctx, id, target, false)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", len(applied.Actions)))
	return nil
}

// printPlanReport prints a formatted plan using the logger.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan) {
	l.Info("Reconciliation plan", catalog.PlanFields(plan)...)

	const maxShow = 10
	for i, action := range plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.Int("movie_id", action.Link.MovieID),
			zap.Int("artist_id", action.Link.ArtistID),
			zap.String("reason", action.Reason),
		)
	}
}

// confirmAction prompts the user for confirmation or uses --yes flag.
func confirmAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to apply these changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
