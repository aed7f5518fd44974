package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwise/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the quiz template catalog",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all quiz templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := templates.Default().All()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, all)
		}

		fmt.Fprintf(out, "%-10s  %-26s  %4s  %4s  %4s  %s\n", "ID", "Name", "MC", "TF", "SA", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, t := range all {
			qt := t.QuestionTypes
			fmt.Fprintf(out, "%-10s  %-26s  %3d%%  %3d%%  %3d%%  %s\n",
				t.ID, t.Name, qt.MultipleChoice, qt.TrueFalse, qt.ShortAnswer, t.Description)
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one quiz template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := templates.Default().ByID(args[0])
		if t == nil {
			return fmt.Errorf("template %q not found", args[0])
		}
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, t)
		}

		count, _ := cmd.Flags().GetInt("count")
		printTemplate(out, t, count)
		return nil
	},
}

func printTemplate(out io.Writer, t *templates.QuizTemplate, count int) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "%s (%s)\n", t.Name, t.ID)
	fmt.Fprintln(out, t.Description)
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "Icon:        %s\n", t.Icon)
	if t.ID == templates.FallbackID {
		fmt.Fprintf(out, "Documents:   any unmatched file (e.g. %s)\n", strings.Join(t.DocumentTypes, ", "))
	} else {
		fmt.Fprintf(out, "Documents:   %s\n", strings.Join(t.DocumentTypes, ", "))
	}
	fmt.Fprintf(out, "Mix:         %d%% multiple choice, %d%% true/false, %d%% short answer\n",
		t.QuestionTypes.MultipleChoice, t.QuestionTypes.TrueFalse, t.QuestionTypes.ShortAnswer)
	if count > 0 {
		split := t.QuestionTypes.Split(count)
		fmt.Fprintf(out, "%d questions: %d multiple choice, %d true/false, %d short answer\n",
			count, split[templates.TypeMultipleChoice], split[templates.TypeTrueFalse], split[templates.TypeShortAnswer])
	}

	fmt.Fprintln(out, "\nFocus areas:")
	for _, fa := range t.FocusAreas {
		fmt.Fprintf(out, "  - %s\n", fa)
	}
	fmt.Fprintln(out, "\nExample questions:")
	for _, q := range t.ExampleQuestions {
		fmt.Fprintf(out, "  - %s\n", q)
	}
	fmt.Fprintln(out, "\nGuidance:")
	fmt.Fprintf(out, "  %s\n", t.PromptModifier)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	templatesListCmd.Flags().Bool("json", false, "Print JSON")
	templatesShowCmd.Flags().Bool("json", false, "Print JSON")
	templatesShowCmd.Flags().IntP("count", "n", 10, "Show how this many questions would be split (0 to hide)")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
}
