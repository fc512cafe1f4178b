// Command llmskema repairs and checks LLM-produced JSON from the shell.
//
//	cat answer.txt | llmskema repair
//	llmskema repair --log answer.txt
//	llmskema check answer.json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/llmskema/repair"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "llmskema:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "llmskema",
		Short:         "Repair and check almost-JSON produced by LLMs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRepairCmd(), newCheckCmd())
	return root
}

func newRepairCmd() *cobra.Command {
	var (
		showLog   bool
		balance   bool
		stringify bool
	)
	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair input into strictly valid JSON and print it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			var opts []repair.Option
			if balance {
				opts = append(opts, repair.WithBalancedBrackets())
			}
			if stringify {
				opts = append(opts, repair.WithStringifiedSpecialNumbers())
			}
			res := repair.Repair(text, opts...)
			if showLog {
				for _, a := range res.Actions {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", a.Stage, a.Description)
				}
			}
			if !res.OK {
				return fmt.Errorf("could not repair input: %w", res.Err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showLog, "log", false, "print the repair actions taken to stderr")
	cmd.Flags().BoolVar(&balance, "balance", false, "also drop spurious closing brackets")
	cmd.Flags().BoolVar(&stringify, "stringify-special", false, "turn NaN/Infinity/undefined into strings instead of null")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Exit 0 when the input is already strictly valid JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			if !repair.IsValid(text) {
				return fmt.Errorf("input is not valid JSON")
			}
			return nil
		},
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
