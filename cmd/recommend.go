package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwise/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <filename>...",
	Short: "Suggest quiz templates for document filenames",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := recommend.NewDefault()
		for _, name := range args {
			printRecommendation(cmd.OutOrStdout(), r, name)
		}
		return nil
	},
}

func printRecommendation(out io.Writer, r *recommend.Recommender, filename string) {
	m := r.Classify(filename)
	var ids []string
	for _, t := range r.Templates(m) {
		ids = append(ids, t.ID)
	}

	reason := "no keyword matched"
	if m.Matched() {
		reason = fmt.Sprintf("matched %q", m.Keyword)
	}
	fmt.Fprintf(out, "%s\t%s\t(%s)\n", filename, strings.Join(ids, ", "), reason)
}
