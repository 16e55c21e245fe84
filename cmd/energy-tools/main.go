package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/collector"
	"github.com/go-tangra/go-tangra-energy/internal/config"
	"github.com/go-tangra/go-tangra-energy/internal/daemon"
	"github.com/go-tangra/go-tangra-energy/internal/estar"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
	"github.com/go-tangra/go-tangra-energy/internal/sender"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "energy-tools",
	Short: "Energy Star 5.2 / 6.0 compliance checker",
	Long: `energy-tools evaluates a computer, workstation, small-scale server or
thin client against the Energy Star 5.2 and 6.0 energy efficiency
requirements.

Measured power values and product facts are read from a profile file
(JSON, comments allowed). Hardware facts missing from the profile are
probed from the local machine.`,
	SilenceUsage: true,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a device profile against Energy Star 5.2 and 6.0",
	RunE:  runEvaluate,
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Probe local hardware facts and print them as profile answers",
	RunE:  runCollect,
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Periodically probe this machine and submit its profile to the daemon",
	RunE:  runAgent,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("energy-tools %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/energy.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	evaluateCmd.Flags().String("profile", "", "profile file with recorded answers (default energy-tools.json)")
	evaluateCmd.Flags().StringArray("set", nil, `answer as "Key=value", e.g. "Off Mode=0.8" (repeatable)`)
	evaluateCmd.Flags().Bool("probe", true, "probe the local machine for facts missing from the profile")
	evaluateCmd.Flags().String("format", "", "output format: text, json or yaml (default text)")
	evaluateCmd.Flags().Bool("no-color", false, "disable coloured output")
	evaluateCmd.Flags().Bool("save", false, "write the answers, including probed values, back to the profile file")
	evaluateCmd.Flags().String("remote", "", "evaluate on the daemon at this gRPC address instead of locally")
	evaluateCmd.Flags().String("client-secret", "", "secret sent to the daemon as x-client-secret")
	evaluateCmd.Flags().Bool("store", false, "ask the daemon to keep the evaluation in its history")

	collectCmd.Flags().StringP("output", "o", "", "write answers to file instead of stdout")

	agentCmd.Flags().String("profile", "", "profile file with recorded answers (default energy-tools.json)")
	agentCmd.Flags().String("remote", "", "gRPC address of the evaluation daemon")
	agentCmd.Flags().String("client-secret", "", "secret sent to the daemon as x-client-secret")
	agentCmd.Flags().Duration("interval", 24*time.Hour, "time between submissions")
	agentCmd.Flags().Int("runs", 0, "stop after this many submissions (0 = run until interrupted)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, log.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if f := cmd.Flags().Lookup("profile"); f != nil && f.Value.String() != "" {
		cfg.ProfilePath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Value.String() != "" {
		cfg.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("remote"); f != nil && f.Value.String() != "" {
		cfg.Remote = f.Value.String()
	}
	if f := cmd.Flags().Lookup("client-secret"); f != nil && f.Value.String() != "" {
		cfg.ClientSecret = f.Value.String()
	}

	return cfg, config.NewLogger(os.Stderr, cfg.LogLevel), nil
}

// readProfile loads recorded answers. A missing file starts an empty
// profile.
func readProfile(path string) (profile.Answers, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return profile.Answers{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return profile.LoadAnswers(f)
}

func writeProfile(path string, a profile.Answers) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if err := a.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// applySets records "Key=value" answers. Values stay strings; the builder
// parses numbers and yes/no answers from them.
func applySets(a profile.Answers, sets []string) error {
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid --set %q: want Key=value", s)
		}
		a[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	answers, err := readProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	if err := applySets(answers, sets); err != nil {
		return err
	}

	var probe profile.Collector
	if v, _ := cmd.Flags().GetBool("probe"); v {
		probe = collector.New(collector.WithLogger(logger))
	}

	b := profile.NewBuilder(answers, probe)
	p, err := b.Build()
	if save, _ := cmd.Flags().GetBool("save"); save {
		if werr := writeProfile(cfg.ProfilePath, b.Answers()); werr != nil {
			return werr
		}
	}
	if err != nil {
		return fmt.Errorf("build profile: %w", err)
	}

	var rep *report.Report
	if cfg.Remote != "" {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, _ := cmd.Flags().GetBool("store")
		resp, err := sender.Send(ctx, cfg.Remote, cfg.ClientSecret, b.Answers(), sender.WithStore(store))
		if err != nil {
			return err
		}
		if resp.Stored {
			fmt.Fprintf(os.Stderr, "evaluation stored as %s\n", resp.UUID)
		}
		rep = resp.Report
	} else {
		rep, err = estar.New(estar.WithLogger(logger)).Evaluate(p)
		if err != nil {
			return err
		}
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	return report.Write(os.Stdout, rep, cfg.Format, !noColor)
}

func runCollect(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	answers, err := collector.New(collector.WithLogger(logger)).Collect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	out, _ := cmd.Flags().GetString("output")
	if out != "" {
		if err := writeProfile(out, answers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "answers written to %s\n", out)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(answers)
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Remote == "" {
		return errors.New("agent mode needs --remote or a remote address in the config")
	}
	interval, _ := cmd.Flags().GetDuration("interval")
	runs, _ := cmd.Flags().GetInt("runs")

	probe := collector.New(collector.WithLogger(logger))
	source := func(context.Context) (profile.Answers, error) {
		answers, err := readProfile(cfg.ProfilePath)
		if err != nil {
			return nil, err
		}
		b := profile.NewBuilder(answers, probe)
		if _, err := b.Build(); err != nil {
			return nil, err
		}
		return b.Answers(), nil
	}
	submit := func(ctx context.Context, answers profile.Answers) (*energyv1.EvaluateResponse, error) {
		return sender.Send(ctx, cfg.Remote, cfg.ClientSecret, answers, sender.WithStore(true))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx, daemon.Config{Interval: interval, MaxRuns: runs}, source, submit, logger)
}
