package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/di"
)

var flags di.CLIFlags

func main() {
	rootCmd := &cobra.Command{
		Use:          "smishguard-cli",
		Short:        "Analyze SMS messages for smishing",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.Provider, "provider", "", "LLM provider (openai, gemini, bedrock)")
	rootCmd.PersistentFlags().StringVar(&flags.StoreType, "store", "", "verdict store (memory, sqlite, mysql, badger)")
	rootCmd.PersistentFlags().BoolVar(&flags.NoStore, "no-store", false, "do not read or write stored verdicts")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flags.JSONLog, "json-log", false, "output logs in JSON format")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(randomCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withService builds the CLI container and hands the analysis service to fn,
// closing the store and language model client afterwards
func withService(fn func(service *core.AnalysisService) error) error {
	container, err := di.BuildCLIContainer(&flags)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	return container.Invoke(func(
		service *core.AnalysisService,
		judge core.LanguageModelJudge,
		repo core.VerdictRepository,
	) error {
		defer func() {
			if closer, ok := judge.(interface{ Close() error }); ok {
				closer.Close()
			}
			if repo != nil {
				repo.Close()
			}
		}()
		return fn(service)
	})
}

func analyzeCmd() *cobra.Command {
	var (
		inputFile   string
		phoneNumber string
		jsonOutput  bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze [message]",
		Short: "Analyze a message (reads stdin when no message is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args, inputFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			return withService(func(service *core.AnalysisService) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()

				start := time.Now()
				result, err := service.Analyze(ctx, core.AnalyzeRequest{
					Message:     message,
					PhoneNumber: phoneNumber,
				})
				if err != nil {
					return err
				}

				if jsonOutput {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(result.Verdict)
				}
				printResult(cmd.OutOrStdout(), result, time.Since(start))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the message from a file")
	cmd.Flags().StringVar(&phoneNumber, "phone", "", "sender phone number")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the verdict as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis deadline")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of stored verdicts per risk tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(service *core.AnalysisService) error {
				counts, err := service.Stats(cmd.Context())
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), counts)
				return nil
			})
		},
	}
}

func randomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Show a random stored verdict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(service *core.AnalysisService) error {
				verdict, err := service.RandomVerdict(cmd.Context())
				if err != nil {
					return err
				}
				printVerdict(cmd.OutOrStdout(), verdict)
				return nil
			})
		},
	}
}

func readMessage(args []string, inputFile string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	r := stdin
	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			return "", fmt.Errorf("open input file: %w", err)
		}
		defer file.Close()
		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read message: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
