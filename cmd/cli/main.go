package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbergmann/wachplan/internal/config"
	"github.com/mbergmann/wachplan/pkg/clients/sheetsclient"
	"github.com/mbergmann/wachplan/pkg/core/model"
	"github.com/mbergmann/wachplan/pkg/core/roster"
	"github.com/mbergmann/wachplan/pkg/core/services"
	"github.com/mbergmann/wachplan/pkg/db"
	"github.com/mbergmann/wachplan/pkg/postgres"
	"github.com/mbergmann/wachplan/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wachplan",
		Short: "Wachplan CLI - Manage employee availability rosters",
		Long:  `A CLI tool for querying, projecting and exporting employee availability submissions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(activeOnCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(upcomingCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(addProfileCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("Database connection established")

	return nil
}

// filterFlags collects the dashboard filter dimensions shared by the
// list and export commands.
type filterFlags struct {
	search    string
	shiftType string
	location  string
	mobile    string
	recurring string
	weekdays  []string
	onDate    string
	atTime    string
	sortField string
	desc      bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search across name, phone, locations, notes and identifiers")
	cmd.Flags().StringVar(&f.shiftType, "shift-type", "", "Shift type (earlyShift, lateShift, nightShift, flexible)")
	cmd.Flags().StringVar(&f.location, "location", "", "Deployment location the record must name")
	cmd.Flags().StringVar(&f.mobile, "mobile", "", "Mobile deployability (yes or no)")
	cmd.Flags().StringVar(&f.recurring, "recurring", "", "Recurrence flag (true or false)")
	cmd.Flags().StringSliceVar(&f.weekdays, "weekday", nil, "Weekday the record must recur on (repeatable)")
	cmd.Flags().StringVar(&f.onDate, "on-date", "", "Calendar date (2006-01-02) the record must cover")
	cmd.Flags().StringVar(&f.atTime, "at-time", "", "Time of day (15:04) the record must cover")
	cmd.Flags().StringVar(&f.sortField, "sort", "createdAt", "Sort field (name, date, location, shiftType, createdAt)")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "Sort descending")
}

func (f *filterFlags) criteria() (roster.Criteria, error) {
	c := roster.Criteria{
		Search:           f.search,
		ShiftType:        model.ShiftType(f.shiftType),
		Location:         f.location,
		MobileDeployable: model.TriState(f.mobile),
		OnDate:           f.onDate,
		AtTime:           f.atTime,
	}

	if f.recurring != "" {
		v, err := strconv.ParseBool(f.recurring)
		if err != nil {
			return roster.Criteria{}, fmt.Errorf("--recurring must be true or false: %w", err)
		}
		c.Recurring = &v
	}

	for _, w := range f.weekdays {
		c.WeekdaysAny = append(c.WeekdaysAny, model.Weekday(strings.ToLower(w)))
	}

	return c, nil
}

func (f *filterFlags) direction() roster.Direction {
	if f.desc {
		return roster.Descending
	}
	return roster.Ascending
}

func listCmd() *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List availability records matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			result, err := services.DashboardView(
				app.ctx, app.database, app.logger,
				criteria, roster.SortField(flags.sortField), flags.direction(),
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nMatched %d of %d records:\n\n", result.MatchedCount, result.TotalCount)
			for _, rec := range result.Records {
				printRecord(rec)
			}

			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func activeOnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activeOn <date>",
		Short: "Show the records active on a calendar date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(model.DateLayout, args[0])
			if err != nil {
				return fmt.Errorf("date must be in 2006-01-02 format: %w", err)
			}

			active, err := services.ActiveOnDay(app.ctx, app.database, app.logger, day)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d records active on %s (%s), %d people:\n\n",
				len(active), args[0], day.Weekday(), roster.CountDistinctPeople(active))
			for _, rec := range active {
				printRecord(rec)
			}

			return nil
		},
	}
}

func calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <YYYY-MM>",
		Short: "Show a month's calendar with active people per day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("month must be in 2006-01 format: %w", err)
			}

			result, err := services.CalendarMonth(
				app.ctx, app.database, app.logger,
				month.Year(), month.Month(),
			)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s %d\n\n", result.Month, result.Year)
			fmt.Println("Mo Tu We Th Fr Sa Su")
			cell := 0
			for ; cell < result.LeadingOffset; cell++ {
				fmt.Print("   ")
			}
			for _, day := range result.Days {
				if day.PeopleCount > 0 {
					fmt.Printf("%2d*", day.Date.Day())
				} else {
					fmt.Printf("%2d ", day.Date.Day())
				}
				cell++
				if cell%7 == 0 {
					fmt.Println()
				}
			}
			fmt.Println()

			for _, day := range result.Days {
				if day.PeopleCount == 0 {
					continue
				}
				fmt.Printf("  %s: %d records, %d people\n",
					day.Date.Format(model.DateLayout), len(day.Records), day.PeopleCount)
			}

			return nil
		},
	}
}

func upcomingCmd() *cobra.Command {
	var fromStr string
	cmd := &cobra.Command{
		Use:   "upcoming <days>",
		Short: "List concrete deployment days over the coming days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("days must be a number: %w", err)
			}

			from := time.Now()
			if fromStr != "" {
				from, err = time.Parse(model.DateLayout, fromStr)
				if err != nil {
					return fmt.Errorf("--from must be in 2006-01-02 format: %w", err)
				}
			}

			deployments, err := services.UpcomingDeployments(app.ctx, app.database, app.logger, from, days)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d deployment days in the next %d days:\n\n", len(deployments), days)
			for _, dep := range deployments {
				name := dep.Record.Owner.FullName()
				if name == "" {
					name = "(unassigned)"
				}
				fmt.Printf("  %s  %-25s %s\n",
					dep.Date.Format(model.DateLayout), name, dep.Record.JoinedLocations())
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (defaults to today)")
	return cmd
}

func exportCmd() *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the filtered roster as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer file.Close()

			count, err := services.ExportRoster(
				app.ctx, app.database, app.logger,
				criteria, roster.SortField(flags.sortField), flags.direction(), file,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nExported %d records to %s\n", count, args[0])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func publishCmd() *cobra.Command {
	flags := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the filtered roster to the configured sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			oauthCfg, err := config.LoadOAuthClientWithEnv(env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			sheets, err := sheetsclient.NewClient(app.ctx, oauthCfg, env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			count, err := services.PublishRoster(
				app.ctx, app.database, sheets, app.cfg, app.logger,
				criteria, roster.SortField(flags.sortField), flags.direction(),
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nPublished %d records to sheet tab %q\n", count, app.cfg.ExportTab)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func addCmd() *cobra.Command {
	row := &db.AvailabilityRow{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an availability record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if row.StartDate == "" {
				return fmt.Errorf("--start is required")
			}
			if _, err := time.Parse(model.DateLayout, row.StartDate); err != nil {
				return fmt.Errorf("--start must be in 2006-01-02 format: %w", err)
			}

			row.CreatedAt = time.Now()
			if err := app.database.InsertAvailability(app.ctx, row); err != nil {
				return err
			}

			app.logger.Info("Availability record created", zap.String("id", row.ID))
			fmt.Printf("\nCreated availability record %s\n", row.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&row.OwnerID, "owner", "", "Owner profile ID")
	cmd.Flags().StringVar(&row.StartDate, "start", "", "Start date (2006-01-02)")
	cmd.Flags().StringVar(&row.EndDate, "end", "", "End date (defaults to start date)")
	cmd.Flags().StringVar(&row.StartTime, "start-time", "", "Start time (15:04)")
	cmd.Flags().StringVar(&row.EndTime, "end-time", "", "End time (15:04)")
	cmd.Flags().StringVar(&row.ShiftType, "shift", "", "Shift type")
	cmd.Flags().StringVar(&row.Locations, "locations", "", "Comma-joined deployment locations")
	cmd.Flags().StringVar(&row.MobileDeployable, "mobile", "", "Mobile deployability (yes or no)")
	cmd.Flags().BoolVar(&row.IsRecurring, "recurring", false, "Restrict the entry to specific weekdays")
	cmd.Flags().StringVar(&row.Weekdays, "weekdays", "", "Comma-joined weekday names")
	cmd.Flags().StringVar(&row.Notes, "notes", "", "Free-text notes")

	return cmd
}

func addProfileCmd() *cobra.Command {
	row := &db.ProfileRow{}
	cmd := &cobra.Command{
		Use:   "addProfile",
		Short: "Add a person profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if row.FirstName == "" && row.LastName == "" {
				return fmt.Errorf("--first or --last is required")
			}

			if err := app.database.InsertProfile(app.ctx, row); err != nil {
				return err
			}

			app.logger.Info("Profile created", zap.String("id", row.ID))
			fmt.Printf("\nCreated profile %s\n", row.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&row.FirstName, "first", "", "First name")
	cmd.Flags().StringVar(&row.LastName, "last", "", "Last name")
	cmd.Flags().StringVar(&row.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&row.GuardIDNumber, "guard-id", "", "Guard ID number")
	cmd.Flags().StringVar(&row.EPinNumber, "epin", "", "E-PIN number")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}

			app.logger.Info("Migrations applied")
			fmt.Println("\nMigrations applied")
			return nil
		},
	}
}

func printRecord(rec model.AvailabilityRecord) {
	name := rec.Owner.FullName()
	if name == "" {
		name = "(unassigned)"
	}

	span := rec.StartDate
	if rec.EndDate != "" && rec.EndDate != rec.StartDate {
		span += " - " + rec.EndDate
	}

	extras := ""
	if rec.IsRecurring {
		extras = " [" + rec.JoinedWeekdays() + "]"
	}
	if rec.MobileDeployable == model.TriYes {
		extras += " (mobile)"
	}

	fmt.Printf("- %-25s %s  %-10s %s%s\n", name, span, rec.ShiftType, rec.JoinedLocations(), extras)
}
