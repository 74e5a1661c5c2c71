package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyaya-legal/nyaya/internal/caselaw"
	"github.com/nyaya-legal/nyaya/internal/display"
	"github.com/nyaya-legal/nyaya/internal/prompts"
)

var (
	askFeature string
	casesJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <scenario or question>",
	Short: "Ask for an IPC analysis or a general legal answer",
	Long: `Sends the query through the legal-analysis prompt (default) or the general
chat prompt and prints the model's Markdown answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var casesCmd = &cobra.Command{
	Use:   "cases <legal issue>",
	Short: "Find relevant Indian case law",
	Long: `Asks the model for relevant precedents and extracts them as structured
results (title, citation, summary, relevance).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCases,
}

func init() {
	askCmd.Flags().StringVarP(&askFeature, "feature", "f", string(prompts.Legal), "Prompt to use: legal or chat")
	casesCmd.Flags().BoolVar(&casesJSON, "json", false, "Print the results as JSON")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(casesCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	feature := prompts.Feature(askFeature)
	if feature != prompts.Legal && feature != prompts.Chat {
		return fmt.Errorf("unknown feature %q (want %s or %s)", askFeature, prompts.Legal, prompts.Chat)
	}

	cfg, svc, err := loadAssistant()
	if err != nil {
		return err
	}

	display.Step(1, 2, "Asking "+cfg.LLM.Model+"...")
	answer, err := svc.Ask(cmd.Context(), feature, strings.Join(args, " "))
	if err != nil {
		return err
	}
	display.Step(2, 2, "Answer")
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, answer)
	return nil
}

func runCases(cmd *cobra.Command, args []string) error {
	cfg, svc, err := loadAssistant()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if !casesJSON {
		display.Step(1, 2, "Asking "+cfg.LLM.Model+" for precedents...")
	}
	results, err := svc.FindCases(cmd.Context(), query)
	if err != nil {
		return err
	}

	if casesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]caselaw.CaseResult{"results": results})
	}

	display.Step(2, 2, "Extracting cases")
	display.StepResult("Found", len(results))
	printCases(results)
	return nil
}

func printCases(results []caselaw.CaseResult) {
	if len(results) == 0 {
		display.Warn("No cases could be extracted from the answer")
		return
	}
	display.Header("Relevant Case Law")
	for i, r := range results {
		display.SubHeader(fmt.Sprintf("%d. %s", i+1, r.Title))
		display.KeyValue("Citation", r.Citation, display.BrightMagenta)
		display.KeyValue("Summary", r.Summary, display.White)
		display.KeyValue("Relevance", r.Relevance, display.Green)
	}
	fmt.Fprintln(os.Stdout)
}
