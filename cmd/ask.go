package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/grounded/config"
	"github.com/mohammad-safakhou/grounded/internal/answer"
	"github.com/mohammad-safakhou/grounded/internal/creds"
	"github.com/mohammad-safakhou/grounded/internal/telemetry"
)

func askCMD() *cobra.Command {
	var cfgPath string
	var webSearch bool
	var ask = &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			question := strings.Join(args, " ")

			c, err := creds.Resolve("", "")
			if err != nil {
				// Render as a plain message; this is a user problem, not a crash.
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			llm, err := answer.NewLLMProvider(cfg.LLM, c)
			if err != nil {
				return err
			}
			searcher, err := answer.NewSearcher(cfg.Search, c)
			if err != nil {
				return err
			}
			tele := telemetry.NewTelemetry(cfg.Telemetry)

			logger := log.New(os.Stderr, "[ASK] ", log.LstdFlags)
			orch, err := answer.NewOrchestrator(cfg, logger, tele, searcher, llm)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.General.DefaultTimeout)
			defer cancel()

			res, err := orch.Answer(ctx, question, webSearch)
			if err != nil {
				return err
			}

			fmt.Println(res.Text)
			if res.Warning != "" {
				fmt.Fprintf(os.Stderr, "warning: %s\n", res.Warning)
			}
			if len(res.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, s := range res.Sources {
					fmt.Printf("  [%d] %s — %s\n", s.Index, s.Title, s.URL)
				}
			}
			return nil
		},
	}
	ask.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config)")
	ask.Flags().BoolVarP(&webSearch, "search", "s", false, "ground the answer in live web search results")

	return ask
}
