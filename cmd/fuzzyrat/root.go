package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fuzzyrat/fuzzyrat"
	"github.com/fuzzyrat/fuzzyrat/logging"
	"github.com/spf13/cobra"
)

// errReported marks failures whose diagnostic already went to the log
// sink, so Execute only has to set the exit status.
var errReported = errors.New("reported")

var generateFlags = struct {
	start   *string
	count   *int
	noSpace *bool
	space   *string
}{}

var rootCmd = &cobra.Command{
	Use:   "fuzzyrat [options] <grammar file>",
	Short: "Generate random sentences from a grammar",
	Long: `fuzzyrat compiles an EBNF-style grammar and emits random sentences
belonging to the grammar's language. It is primarily aimed at producing
random-but-syntactically-valid inputs for fuzz-testing parsers.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	generateFlags.start = rootCmd.Flags().StringP("start", "s", "", "start production (default: the first declared production)")
	generateFlags.count = rootCmd.Flags().IntP("count", "c", 1, "number of sentences to emit")
	generateFlags.noSpace = rootCmd.Flags().BoolP("no-space", "n", false, "disable whitespace insertion")
	generateFlags.space = rootCmd.Flags().String("space", "", "custom whitespace pattern")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

	ctx, err := fuzzyrat.NewContextFromFile(args[0])
	if err != nil {
		logger.Error(fmt.Sprintf("cannot read grammar file: %v", err))
		return errReported
	}
	ctx.SetLogger(logger)
	if *generateFlags.start != "" {
		ctx.SetStartProduction(*generateFlags.start)
	}
	switch {
	case *generateFlags.noSpace:
		ctx.SetSpacePattern("")
	case *generateFlags.space != "":
		ctx.SetSpacePattern(*generateFlags.space)
	}

	code, err := fuzzyrat.Compile(ctx)
	if err != nil {
		logger.Error(err.Error())
		return errReported
	}

	w := os.Stdout
	for i := 0; i < *generateFlags.count; i++ {
		result, err := code.Exec()
		if err != nil {
			logger.Error(err.Error())
			return errReported
		}
		w.Write(result.Data)
		fmt.Fprintln(w)
	}
	return nil
}
