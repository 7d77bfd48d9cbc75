package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_blog/internal/blog"
)

var errNoArticle = errors.New("article not generated")

func newGenerateCommand(app *appContext) *cobra.Command {
	var (
		video    string
		repo     string
		save     bool
		outDir   string
		htmlPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the pipeline once and print the article",
		Example: `  blogctl generate --video https://www.youtube.com/watch?v=abc123 --repo owner/name
  blogctl generate --video https://youtu.be/abc123 --repo owner/name --save --out posts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.setup()
			if err != nil {
				return err
			}
			state, err := app.runner().Generate(cmd.Context(), video, repo)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			for _, name := range []string{blog.StageTranscript, blog.StageCode, blog.StageSummary, blog.StageFormat} {
				if reason, failed := state.Failures()[name]; failed {
					fmt.Fprintf(stderr, "stage %s failed: %s\n", name, reason)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), state.ContentText())

			if !state.Content.OK() {
				if save || htmlPath != "" {
					return errNoArticle
				}
				return nil
			}

			if save {
				dir := outDir
				if dir == "" {
					dir = cfg.OutputDir
				}
				path, err := blog.Save(dir, state.Content.Value, app.now())
				if err != nil {
					return err
				}
				fmt.Fprintf(stderr, "Blog saved to %s\n", path)
			}
			if htmlPath != "" {
				html, err := blog.RenderHTML(blog.Unwrap(state.Content.Value))
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil { //nolint:gosec // preview is world-readable
					return fmt.Errorf("write html preview: %w", err)
				}
				fmt.Fprintf(stderr, "HTML preview written to %s\n", htmlPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&video, "video", "", "YouTube video URL")
	cmd.Flags().StringVar(&repo, "repo", "", "GitHub repository (owner/name or URL)")
	cmd.Flags().BoolVar(&save, "save", false, "Write the article to blog_<timestamp>.md")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for --save (default OUTPUT_DIR)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML preview to this file")
	_ = cmd.MarkFlagRequired("video")
	_ = cmd.MarkFlagRequired("repo")
	return cmd
}
