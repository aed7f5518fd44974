package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplatesList(t *testing.T) {
	out, err := execute(t, "templates", "list")
	require.NoError(t, err)

	for _, id := range []string{"academic", "technical", "business", "narrative", "general"} {
		assert.Contains(t, out, id)
	}
	assert.Less(t, strings.Index(out, "academic"), strings.Index(out, "general"))
}

func TestTemplatesShow(t *testing.T) {
	out, err := execute(t, "templates", "show", "business", "--count", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "Business Analysis (business)")
	assert.Contains(t, out, "7 questions: 3 multiple choice, 2 true/false, 2 short answer")
	assert.Contains(t, out, "Financial figures")
}

func TestTemplatesShow_FallbackDocuments(t *testing.T) {
	out, err := execute(t, "templates", "show", "general")
	require.NoError(t, err)
	assert.Contains(t, out, "Documents:   any unmatched file (e.g. general, document, notes)")

	out, err = execute(t, "templates", "show", "narrative")
	require.NoError(t, err)
	assert.Contains(t, out, "Documents:   story, essay, novel")
}

func TestTemplatesShow_JSON(t *testing.T) {
	out, err := execute(t, "templates", "show", "narrative", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"icon": "book-open"`)
}

func TestTemplatesShow_Unknown(t *testing.T) {
	_, err := execute(t, "templates", "show", "poetry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"poetry" not found`)
}

func TestRecommend(t *testing.T) {
	out, err := execute(t, "recommend", "thesis.pdf", "scan.png")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "thesis.pdf\tacademic, general\t(matched \"thesis\")", lines[0])
	assert.Equal(t, "scan.png\tgeneral\t(no keyword matched)", lines[1])
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quizwise (devel)\n", out)
}

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		"notes.md":         "text/markdown",
		"README.MARKDOWN":  "text/markdown",
		"paper.pdf":        "application/pdf",
		"essay.txt":        "text/plain",
		"report.docx":      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"archive.unknownx": "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, contentTypeFor(name), name)
	}
}
