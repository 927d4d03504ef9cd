package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/cubeq/internal/logging"
	"github.com/gitrdm/cubeq/pkg/cube"
	"github.com/gitrdm/cubeq/pkg/grover"
	"github.com/gitrdm/cubeq/pkg/oracle"
	"github.com/gitrdm/cubeq/pkg/sim"
)

var (
	configPath string
	logLevel   string
	shots      int
	seed       int64
	topN       int
	oracleOnly bool

	rootCmd = &cobra.Command{
		Use:           "cubeq",
		Short:         "Amplitude-amplification search over cube move sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Check the move model's group properties and face tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(cmd.OutOrStdout())
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Run the search on the reference simulator and print the outcomes",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}

	solutionsCmd = &cobra.Command{
		Use:   "solutions",
		Short: "Enumerate every solving sequence classically",
		Args:  cobra.NoArgs,
		RunE:  runSolutions,
	}

	qasmCmd = &cobra.Command{
		Use:   "qasm",
		Short: "Print the search circuit as OpenQASM 3",
		Args:  cobra.NoArgs,
		RunE:  runQASM,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML or JSON search config (CUBEQ_* env vars override it)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from "+logging.EnvVar+")")

	searchCmd.Flags().IntVar(&shots, "shots", 0, "number of samples (overrides config)")
	searchCmd.Flags().Int64Var(&seed, "seed", 0, "sampling seed (overrides config)")
	searchCmd.Flags().IntVar(&topN, "top", 10, "number of outcomes to print")
	qasmCmd.Flags().BoolVar(&oracleOnly, "oracle", false, "print only the oracle fragment")

	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(solutionsCmd)
	rootCmd.AddCommand(qasmCmd)
}

func logger() *slog.Logger {
	if logLevel != "" {
		return logging.FromEnv(logLevel, os.Stderr)
	}
	return logging.Default()
}

func loadEngine(backend grover.Backend) (*grover.Engine, grover.Config, error) {
	cfg, err := grover.LoadConfig(configPath)
	if err != nil {
		return nil, cfg, err
	}
	e, err := grover.New(cfg, backend, grover.WithLogger(logger()))
	if err != nil {
		return nil, cfg, err
	}
	return e, cfg, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := grover.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if shots > 0 {
		cfg.Shots = shots
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var opts []sim.Option
	if cfg.Seed != 0 {
		opts = append(opts, sim.WithSeed(cfg.Seed))
	}
	opts = append(opts, sim.WithLogger(logger()))
	e, err := grover.New(cfg, sim.New(opts...), grover.WithLogger(logger()))
	if err != nil {
		return err
	}
	initial, err := cfg.Initial()
	if err != nil {
		return err
	}

	res, err := e.Run(cmd.Context(), initial, cfg.Shots)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run %s: %s, %d iterations, %d shots\n", res.RunID, e.Layout(), res.Iterations, res.Shots)
	for i, o := range res.Outcomes {
		if i == topN {
			break
		}
		moves := "(padding)"
		if o.Valid {
			moves = strings.Join(o.Moves, " ")
		}
		mark := ""
		if o.Solves {
			mark = " *"
		}
		fmt.Fprintf(w, "%6d  %s  %s%s\n", o.Count, o.Bits, moves, mark)
	}
	fmt.Fprintf(w, "solution rate %.3f\n", res.SolutionRate())
	return nil
}

func runSolutions(cmd *cobra.Command, _ []string) error {
	e, cfg, err := loadEngine(nil)
	if err != nil {
		return err
	}
	initial, err := cfg.Initial()
	if err != nil {
		return err
	}
	target, err := grover.InitialFromScramble(cfg.Target)
	if err != nil {
		return err
	}

	sols, err := oracle.Solutions(cmd.Context(), e.Layout(), initial, target)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, symbols := range sols {
		moves, err := e.Layout().Tokens(symbols)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.Join(moves, " "))
	}
	fmt.Fprintf(w, "%d of %d sequences\n", len(sols), e.Layout().SearchSpace())
	return nil
}

func runQASM(cmd *cobra.Command, _ []string) error {
	e, cfg, err := loadEngine(nil)
	if err != nil {
		return err
	}
	if oracleOnly {
		_, err = io.WriteString(cmd.OutOrStdout(), e.Oracle().QASM())
		return err
	}
	initial, err := cfg.Initial()
	if err != nil {
		return err
	}
	c, err := e.Circuit(initial)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), c.QASM())
	return err
}

// runSelftest checks the move model: inverse, order four and double turns
// for every face, sequence inversion on random scrambles, edge parity, and
// the face tables' geometry.
func runSelftest(w io.Writer) error {
	if err := cube.CheckFaceTables(); err != nil {
		return fmt.Errorf("face tables: %w", err)
	}
	fmt.Fprintln(w, "face tables ok")

	rng := rand.New(rand.NewSource(1))
	starts := []cube.State{cube.Solved(), randomState(rng, 25)}
	for _, f := range cube.Faces {
		q := cube.Move{Face: f, Turns: 1}
		for _, s := range starts {
			if s.Apply(q).Apply(q.Inverse()) != s {
				return fmt.Errorf("%s then %s is not the identity", q, q.Inverse())
			}
			if s.Apply(q).Apply(q).Apply(q).Apply(q) != s {
				return fmt.Errorf("%s does not have order 4", q)
			}
			if s.Apply(cube.Move{Face: f, Turns: 2}) != s.Apply(q).Apply(q) {
				return fmt.Errorf("%s2 differs from %s %s", f, q, q)
			}
		}
	}
	fmt.Fprintln(w, "face moves ok")

	for i := 0; i < 100; i++ {
		moves := randomMoves(rng, 1+rng.Intn(30))
		s := cube.ApplyMoves(cube.Solved(), moves)
		if cube.EdgeParity(cube.EncodeEdgeOrientation(s)) != 0 {
			return fmt.Errorf("odd edge parity after %s", cube.FormatSequence(moves))
		}
		if !cube.ApplyMoves(s, cube.InvertSequence(moves)).IsSolved() {
			return fmt.Errorf("inverse of %s does not solve", cube.FormatSequence(moves))
		}
	}
	fmt.Fprintln(w, "sequences ok")
	return nil
}

func randomMoves(rng *rand.Rand, n int) []cube.Move {
	moves := make([]cube.Move, n)
	for i := range moves {
		moves[i] = cube.Move{Face: cube.Faces[rng.Intn(len(cube.Faces))], Turns: 1 + rng.Intn(3)}
	}
	return moves
}

func randomState(rng *rand.Rand, n int) cube.State {
	return cube.ApplyMoves(cube.Solved(), randomMoves(rng, n))
}
