package main

import (
	"context"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_blog/internal/blog"
	"github.com/anatolykoptev/go_blog/internal/engine"
)

type generator interface {
	Generate(ctx context.Context, videoURL, repo string) (blog.State, error)
}

// appContext holds the collaborators commands need; tests replace them.
type appContext struct {
	setup  func() (engine.Config, error)
	runner func() generator
	now    func() time.Time
}

func defaultApp() *appContext {
	return &appContext{
		setup: func() (engine.Config, error) {
			if err := engine.Setup(engine.ConfigFromEnv(), env.Str("WEBSHARE_API_KEY", "")); err != nil {
				return engine.Config{}, err
			}
			return *engine.Cfg, nil
		},
		runner: func() generator { return blog.NewFromConfig() },
		now:    time.Now,
	}
}

func newRootCommand(app *appContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "blogctl",
		Short:         "Generate technical blog posts from a YouTube video and a GitHub repository",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.AddCommand(newGenerateCommand(app))
	return rootCmd
}
