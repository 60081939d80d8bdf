package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notesum/internal/api"
	"notesum/internal/logging"
	"notesum/internal/preflight"
	"notesum/internal/server"
	"notesum/internal/summary"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if bind = strings.TrimSpace(bind); bind != "" {
				cfg.Paths.APIBind = bind
			}
			logger := ctx.loggerValue()

			return ctx.withStore(func(store *summary.Store) error {
				deps := server.Deps{
					Summaries: api.NewSummaryService(store),
					Status:    statusProvider(ctx, store),
				}
				if svc, err := ctx.newSummarizer(store); err != nil {
					logger.Warn("summarization disabled", logging.Error(err))
				} else {
					deps.Summarizer = svc
				}

				srv := server.New(cfg, deps, logger)
				if err := srv.Start(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s (pid %d)\n", srv.Addr(), os.Getpid())
				<-cmd.Context().Done()
				srv.Stop()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default paths.api_bind)")
	return cmd
}

func statusProvider(ctx *commandContext, store *summary.Store) func(context.Context) api.Status {
	cfg := ctx.configValue()
	return func(reqCtx context.Context) api.Status {
		status := api.Status{
			DatabasePath: store.Path(),
			Model:        cfg.LLM.Model,
			LLMReady:     cfg.RequireLLM() == nil,
		}
		if count, err := store.Count(reqCtx); err == nil {
			status.Summaries = count
		}
		for _, dep := range preflight.CheckDependencies(cfg) {
			status.Dependencies = append(status.Dependencies, api.DependencyStatus{
				Name:        dep.Name,
				Command:     dep.Command,
				Description: dep.Description,
				Optional:    dep.Optional,
				Available:   dep.Available,
				Detail:      dep.Detail,
			})
		}
		return status
	}
}
