// Command pegc drives the check/transform/generate pipeline against a
// grammar AST fixture loaded from YAML. It stands in for the real
// front end (a ".peg" text parser feeding a target-language emitter),
// which is out of scope for this core; pegc exists so the pipeline has
// a runnable entry point end to end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/polkovnikov-ph/peggy/compiler"
	"github.com/polkovnikov-ph/peggy/diagnostics"
	"github.com/polkovnikov-ph/peggy/internal/fixture"
	"github.com/polkovnikov-ph/peggy/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		grammarPath string
		configPath  string
		startRules  []string
		output      string
		trace       bool
	)

	cmd := &cobra.Command{
		Use:   "pegc",
		Short: "Run the check/transform/generate pipeline against a grammar fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, grammarPath, configPath, startRules, output, trace)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&grammarPath, "grammar", "", "path to a YAML grammar fixture (required)")
	flags.StringVar(&configPath, "config", "", "path to a project config file merged under the flags above")
	flags.StringSliceVar(&startRules, "start", nil, "allowed start rule name (repeatable); \"*\" means every rule")
	flags.StringVar(&output, "output", "ast", `one of "ast" or "bytecode"`)
	flags.BoolVar(&trace, "trace", false, "log stage entry/exit at debug level")
	cmd.MarkPersistentFlagRequired("grammar")

	return cmd
}

func run(cmd *cobra.Command, grammarPath, configPath string, startRules []string, output string, trace bool) error {
	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("pegc: loading config: %w", err)
	}
	if len(startRules) == 0 {
		startRules = fileCfg.AllowedStartRules
	}
	if !trace {
		trace = fileCfg.Trace
	}

	data, err := os.ReadFile(grammarPath)
	if err != nil {
		return fmt.Errorf("pegc: reading grammar: %w", err)
	}
	fx, err := fixture.Load(data)
	if err != nil {
		return fmt.Errorf("pegc: %w", err)
	}
	g, err := fx.Build()
	if err != nil {
		return fmt.Errorf("pegc: %w", err)
	}

	var log logging.Logger = logging.NewNoOpLogger()
	if trace {
		log = logging.New()
		log.SetLevel(logging.Debug)
	}

	opts := compiler.Options{
		AllowedStartRules: startRules,
		Cache:             fileCfg.Cache,
		Trace:             trace,
		ReservedWords:     fileCfg.ReservedWords,
		Output:            compiler.Output(output),
		Logger:            log,
	}

	result, session, err := compiler.Generate(g, opts)
	if err != nil {
		if ce, ok := err.(*diagnostics.CompileError); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.FormatProblems(ce.Problems(), nil))
			return err
		}
		return err
	}

	if s, ok := result.(string); ok {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}

	dump, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("pegc: dumping compiled grammar: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(dump))
	if n := len(session.Problems()); n > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), diagnostics.FormatProblems(session.Problems(), nil))
	}
	return nil
}
