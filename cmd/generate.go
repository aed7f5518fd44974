package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwise/internal/quizzes"
	"github.com/abhisek/quizwise/internal/templates"
	"github.com/abhisek/quizwise/internal/ui/components"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz for an uploaded document",
	RunE: func(cmd *cobra.Command, args []string) error {
		docID, _ := cmd.Flags().GetString("document")
		templateID, _ := cmd.Flags().GetString("template")
		file, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")

		var content string
		if file != "" {
			b, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			content = string(b)
		}

		e, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		objects, err := e.objectStore(ctx)
		if err != nil {
			return err
		}
		docs := e.documents(objects)

		if templateID == "" {
			_, recs, _, err := docs.Recommend(ctx, docID)
			if err != nil {
				return err
			}
			templateID = recs[0].ID
			fmt.Fprintf(cmd.ErrOrStderr(), "Using recommended template %q\n", templateID)
		}
		if count == 0 {
			count = e.cfg.Quiz.DefaultQuestions
		}

		gen, err := e.generator(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		res, err := e.quizService(docs, gen, nil).Generate(ctx, quizzes.Request{
			DocumentID:    docID,
			TemplateID:    templateID,
			QuestionCount: count,
			Content:       content,
		})
		if err != nil {
			return err
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		printQuiz(cmd.OutOrStdout(), res)
		return nil
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <id>",
	Short: "Print a previously generated quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.quizService(nil, nil, nil).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		printQuiz(cmd.OutOrStdout(), res)
		return nil
	},
}

func printQuiz(out io.Writer, res *quizzes.Result) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(out, res.Title)
	fmt.Fprintf(out, "Quiz %s · template %s · %d questions\n", res.ID, res.TemplateID, len(res.Questions))
	fmt.Fprintln(out, sep)

	for i, q := range res.Questions {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, components.TypeLabel(q.Type), q.Text)
		if q.Type == templates.TypeMultipleChoice {
			for j, c := range q.Choices {
				fmt.Fprintf(out, "   %c) %s\n", 'a'+j, c)
			}
		}
		fmt.Fprintf(out, "   Answer: %s\n", q.Answer)
		if q.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
}

func init() {
	generateCmd.Flags().StringP("document", "d", "", "Document ID returned by upload")
	generateCmd.Flags().StringP("template", "t", "", "Template ID (default: the recommended template)")
	generateCmd.Flags().StringP("file", "f", "", "Read the document text from this file")
	generateCmd.Flags().IntP("count", "n", 0, "Number of questions (default from quiz.default_questions)")
	generateCmd.Flags().Bool("json", false, "Print JSON")
	_ = generateCmd.MarkFlagRequired("document")

	quizCmd.Flags().Bool("json", false, "Print JSON")
}
