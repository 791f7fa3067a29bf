package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/developingchet/counted-sortedlist/internal/config"
	"github.com/developingchet/counted-sortedlist/internal/counter"
	"github.com/developingchet/counted-sortedlist/internal/logger"
	"github.com/developingchet/counted-sortedlist/internal/metrics"
	"github.com/developingchet/counted-sortedlist/internal/ops"
	"github.com/developingchet/counted-sortedlist/internal/session"
	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var registerOnce sync.Once

// Seams replaced in tests.
var (
	loadConfig      = config.Load
	openSession     = session.Open
	registerMetrics = func() { registerOnce.Do(metrics.Register) }
	logOutput       io.Writer = os.Stderr
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("fatal")
		os.Exit(1)
	}
}

// newRootCmd builds and returns the root cobra command. Extracted from main so
// that tests can invoke it directly without spawning a subprocess.
func newRootCmd() *cobra.Command {
	var variant string

	rootCmd := &cobra.Command{
		Use:   "countedlist",
		Short: "A sorted integer list that counts attempted insertions",
		Long: `countedlist keeps a persisted sorted list of integers and tallies every
attempted insertion, including duplicates the list rejects. The tally is kept
either by delegating to a private list or by embedding one (--variant).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "counting strategy: delegation or inheritance (overrides COUNTEDLIST_VARIANT)")

	// Value commands parse their own flags so negative operands such as -5
	// reach RunE as values instead of unknown shorthand flags.
	mutating := func(use, short string, kind ops.Kind, minArgs int) *cobra.Command {
		return &cobra.Command{
			Use:                use,
			Short:              short,
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, values, help, err := valueArgs(args)
				if err != nil {
					return err
				}
				if help {
					return cmd.Help()
				}
				if len(values) < minArgs {
					return fmt.Errorf("requires at least %d arg(s), only received %d", minArgs, len(values))
				}
				op, err := ops.Parse(string(kind) + "=" + strings.Join(values, ","))
				if err != nil {
					return err
				}
				return withSession(cmd, v, func(s *session.Session) error {
					res, l, err := s.Apply([]ops.Op{op})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "changed=%t size=%d total_added=%d\n", res[0].Changed, l.Size(), l.TotalAdded())
					return nil
				})
			},
		}
	}

	rootCmd.AddCommand(
		mutating("add <n>...", "Add each value, counting every attempt", ops.KindAdd, 1),
		mutating("add-all [n]...", "Add the values as one bulk insertion", ops.KindAddAll, 0),
		mutating("remove <n>...", "Remove each value", ops.KindRemove, 1),
		mutating("remove-all [n]...", "Remove every listed value", ops.KindRemoveAll, 0),
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:                "get <index>",
		Short:              "Print the element at a zero-based index",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, values, help, err := valueArgs(args)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}
			if len(values) != 1 {
				return fmt.Errorf("accepts 1 arg(s), received %d", len(values))
			}
			op, err := ops.Parse("get=" + values[0])
			if err != nil {
				return err
			}
			return withSession(cmd, v, func(s *session.Session) error {
				l, err := s.List()
				if err != nil {
					return err
				}
				res := ops.Apply(l, op)
				if res.Err != nil {
					return res.Err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Value)
				return nil
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "size",
		Short: "Print the number of elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, variant, func(l counter.Counted) {
				fmt.Fprintln(cmd.OutOrStdout(), l.Size())
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "total",
		Short: "Print the number of attempted insertions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, variant, func(l counter.Counted) {
				fmt.Fprintln(cmd.OutOrStdout(), l.TotalAdded())
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the variant, contents, size and tally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, variant, func(l counter.Counted) {
				fmt.Fprintf(cmd.OutOrStdout(), "variant=%s values=%s size=%d total_added=%d\n",
					l.Variant(), sortedlist.Format(l), l.Size(), l.TotalAdded())
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Discard the persisted list for the selected variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, variant, func(s *session.Session) error {
				if err := s.Reset(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", s.Variant())
				return nil
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <op>...",
		Short: "Apply a sequence of ops (add=1,2 addall=3,1 get=0 remove=1 removeall=2 size total)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := ops.ParseAll(args)
			if err != nil {
				return err
			}
			return withSession(cmd, variant, func(s *session.Session) error {
				res, l, err := s.Apply(in)
				if err != nil {
					return err
				}
				for _, r := range res {
					printResult(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "size=%d total_added=%d\n", l.Size(), l.TotalAdded())
				return nil
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "compare <op>...",
		Short: "Run ops against fresh lists of both variants and check they agree",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompare,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "countedlist %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	in, err := ops.ParseAll(args)
	if err != nil {
		return err
	}
	if _, err := setup(""); err != nil {
		return err
	}

	cmp, err := ops.Compare(in)
	if cmp != nil {
		for _, o := range cmp.Outcomes {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s values=%v total_added=%d\n", o.Variant, o.Values, o.TotalAdded)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
	return nil
}

// setup loads configuration, applies the --variant override and initialises
// logging and metrics.
func setup(variant string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if variant != "" {
		cfg.Variant = variant
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat, logOutput)
	registerMetrics()
	return cfg, nil
}

// withSession opens the configured session, runs fn and closes it. The
// metrics textfile is written afterwards when configured.
func withSession(cmd *cobra.Command, variant string, fn func(s *session.Session) error) error {
	cfg, err := setup(variant)
	if err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return fmt.Errorf("session init: %w", err)
	}
	log.Debug().Str("variant", string(s.Variant())).Str("db", s.DBPath()).Str("cmd", cmd.Name()).Msg("session opened")

	runErr := fn(s)
	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("session close failed")
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			log.Warn().Err(err).Msg("metrics textfile not written")
		}
	}
	return runErr
}

// withList is withSession for read-only commands.
func withList(cmd *cobra.Command, variant string, fn func(l counter.Counted)) error {
	return withSession(cmd, variant, func(s *session.Session) error {
		l, err := s.List()
		if err != nil {
			return err
		}
		fn(l)
		return nil
	})
}

// valueArgs splits the raw arguments of a value command into the --variant
// override, the operands and a help request. Integers, negative ones
// included, are operands; everything after "--" is an operand.
func valueArgs(args []string) (variant string, values []string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return variant, append(values, args[i+1:]...), help, nil
		case a == "-h" || a == "--help":
			help = true
		case a == "--variant":
			if i+1 >= len(args) {
				return "", nil, false, fmt.Errorf("flag needs an argument: --variant")
			}
			i++
			variant = args[i]
		case strings.HasPrefix(a, "--variant="):
			variant = strings.TrimPrefix(a, "--variant=")
		case strings.HasPrefix(a, "-") && !isInt(a):
			return "", nil, false, fmt.Errorf("unknown flag: %s", a)
		default:
			values = append(values, a)
		}
	}
	return variant, values, help, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func printResult(w io.Writer, r ops.Result) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "%s: error: %v\n", r.Op, r.Err)
	case r.Op.Kind == ops.KindGet || r.Op.Kind == ops.KindSize || r.Op.Kind == ops.KindTotal:
		fmt.Fprintf(w, "%s: %d\n", r.Op, r.Value)
	default:
		fmt.Fprintf(w, "%s: changed=%t\n", r.Op, r.Changed)
	}
}
