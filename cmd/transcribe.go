package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nyaya-legal/nyaya/internal/display"
	"github.com/nyaya-legal/nyaya/internal/llm"
)

var (
	transcribeLanguage  string
	transcribeTranslate bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio file>",
	Short: "Convert a voice note to text",
	Long: `Uploads an audio file to the transcription API. With --translate the text
is returned in English regardless of the spoken language.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeLanguage, "language", "l", "", "Spoken language as an ISO-639-1 code (e.g. hi)")
	transcribeCmd.Flags().BoolVar(&transcribeTranslate, "translate", false, "Translate the speech to English")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	_, svc, err := loadAssistant()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	display.Step(1, 1, "Transcribing "+filepath.Base(args[0])+"...")
	t, err := svc.Transcribe(cmd.Context(), llm.Audio{
		Name:     filepath.Base(args[0]),
		Reader:   f,
		Language: transcribeLanguage,
	}, transcribeTranslate)
	if err != nil {
		return err
	}
	if t.Translated {
		display.StepDetail("translated to English")
	}
	display.Success(t.Text)
	return nil
}
