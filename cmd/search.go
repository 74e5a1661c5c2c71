package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyaya-legal/nyaya/internal/display"
)

var searchPage int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Indian Kanoon case database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "Result page (0-based)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, svc, err := loadAssistant()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	display.Step(1, 1, fmt.Sprintf("Searching Indian Kanoon for %q (page %d)...", query, searchPage))
	docs, err := svc.SearchDatabase(cmd.Context(), query, searchPage)
	if err != nil {
		return err
	}
	display.StepResult("Documents", len(docs))
	if len(docs) == 0 {
		return nil
	}

	display.Header("Search Results")
	for i, d := range docs {
		display.SubHeader(fmt.Sprintf("%d. %s", i+1, d.Title))
		if d.DocSource != "" {
			display.KeyValue("Court", d.DocSource, display.BrightWhite)
		}
		if d.PublishDate != "" {
			display.KeyValue("Date", d.PublishDate, display.White)
		}
		display.KeyValue("URL", d.URL, display.Cyan)
		if d.Headline != "" {
			display.StepDetail(d.Headline)
		}
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
