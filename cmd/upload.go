package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/storage"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Register a document and upload it to object storage",
	Long: "Registers a document, uploads the file to its presigned URL and confirms the upload.\n" +
		"With --presign-only the URL is printed and the upload is left to the caller.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		presignOnly, _ := cmd.Flags().GetBool("presign-only")
		contentType, _ := cmd.Flags().GetString("content-type")
		if contentType == "" {
			contentType = contentTypeFor(path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
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
		if _, inMemory := objects.(*storage.MemoryStore); inMemory && !presignOnly {
			return fmt.Errorf("object storage is not configured; set QUIZWISE_STORAGE_ENDPOINT or use --presign-only")
		}
		docs := e.documents(objects)

		up, err := docs.CreateUpload(ctx, documents.UploadInput{
			Filename:    filepath.Base(path),
			ContentType: contentType,
			SizeBytes:   info.Size(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Document:  %s\n", up.Document.ID)
		if presignOnly {
			fmt.Fprintf(out, "Upload:    PUT %s\n", up.URL)
			fmt.Fprintf(out, "Expires:   %s\n", up.ExpiresAt.Local().Format(time.DateTime))
			return nil
		}

		if err := putFile(ctx, up.URL, path, contentType, info.Size()); err != nil {
			return err
		}
		doc, err := docs.CompleteUpload(ctx, up.Document.ID)
		if err != nil {
			return fmt.Errorf("complete upload: %w", err)
		}
		fmt.Fprintf(out, "Status:    %s\n", doc.Status)

		_, recs, match, err := docs.Recommend(ctx, doc.ID)
		if err != nil {
			return err
		}
		var ids []string
		for _, t := range recs {
			ids = append(ids, t.ID)
		}
		fmt.Fprintf(out, "Templates: %s", strings.Join(ids, ", "))
		if match.Matched() {
			fmt.Fprintf(out, " (matched %q)", match.Keyword)
		}
		fmt.Fprintln(out)
		return nil
	},
}

// putFile uploads the file at path to a presigned URL.
func putFile(ctx context.Context, url, path, contentType string, size int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, f)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

// contentTypeFor guesses the MIME type from the file extension.
func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(path))); err == nil {
		return mt
	}
	return "application/octet-stream"
}

func init() {
	uploadCmd.Flags().Bool("presign-only", false, "Print the presigned URL instead of uploading")
	uploadCmd.Flags().String("content-type", "", "Override the detected content type")
}
