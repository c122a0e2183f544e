package main

import (
	"fmt"
	"os"
	"time"

	"github.com/arthayojana/arthayojana/internal/calculation"
	"github.com/arthayojana/arthayojana/internal/config"
	"github.com/arthayojana/arthayojana/internal/output"
	"github.com/arthayojana/arthayojana/internal/server"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildLogger() (*zap.Logger, error) {
	if viper.GetBool("debug") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// currentYear resolves the projection anchor: the --year flag when set,
// otherwise the wall clock. The engine itself never reads the clock.
func currentYear() int {
	if y := viper.GetInt("year"); y > 0 {
		return y
	}
	return time.Now().Year()
}

var rootCmd = &cobra.Command{
	Use:   "arthayojana",
	Short: "Personal finance planning engine",
	Long:  "Projects multi-decade cashflows, goal funding, and debt amortization from a household snapshot",
}

var projectCmd = &cobra.Command{
	Use:   "project [state-file]",
	Short: "Run the cashflow and goal-funding projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		year := currentYear()
		state, err := config.NewInputParser().LoadFromFile(args[0], year)
		if err != nil {
			return err
		}

		engine := calculation.NewCalculationEngine(logger)
		timeline := engine.ProjectTimeline(state, year)
		return output.NewReportGenerator().WriteTimeline(os.Stdout, timeline, viper.GetString("format"))
	},
}

var amortizeCmd = &cobra.Command{
	Use:   "amortize [state-file] [loan-id]",
	Short: "Print a loan's full amortization schedule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := currentYear()
		state, err := config.NewInputParser().LoadFromFile(args[0], year)
		if err != nil {
			return err
		}

		extra, _ := cmd.Flags().GetFloat64("extra-payment")
		for i := range state.Loans {
			if state.Loans[i].ID != args[1] {
				continue
			}
			schedule := calculation.BuildAmortizationSchedule(&state.Loans[i], calculation.ScheduleOptions{
				ExtraPayment: decimal.NewFromFloat(extra),
				CurrentYear:  year,
			})
			return output.NewReportGenerator().WriteSchedule(os.Stdout, schedule, viper.GetString("format"))
		}
		return fmt.Errorf("no loan with id %s", args[1])
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit [state-file]",
	Short: "Compute financial health ratios and recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		year := currentYear()
		state, err := config.NewInputParser().LoadFromFile(args[0], year)
		if err != nil {
			return err
		}

		report := calculation.NewCalculationEngine(logger).Audit(state, year)
		return output.NewReportGenerator().WriteAudit(os.Stdout, report, viper.GetString("format"))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planning API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		return server.New(logger).ListenAndServe(viper.GetString("addr"))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "arthayojana %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("format", "console", "output format: console, json, or csv")
	rootCmd.PersistentFlags().Int("year", 0, "projection anchor year (default: current year)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	serveCmd.Flags().String("addr", ":8080", "listen address")
	amortizeCmd.Flags().Float64("extra-payment", 0, "one-time extra principal payment to simulate")

	viper.SetEnvPrefix("ARTHA")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("year", rootCmd.PersistentFlags().Lookup("year"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(projectCmd, amortizeCmd, auditCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
