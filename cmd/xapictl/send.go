package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/xapi-connect/internal/api/v1"
	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/core/storage/source"
	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/spf13/cobra"
)

func sendCmd(g *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "send <event.json>",
		Short: "Build the statement for one learning event and send it to the LRS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var evt v1.Event
			if err := json.Unmarshal(raw, &evt); err != nil {
				return fmt.Errorf("failed to parse event: %w", err)
			}
			if err := evt.Validate(); err != nil {
				return err
			}
			learningEvent, err := evt.ToLearningEvent()
			if err != nil {
				return err
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			settings, err := cfg.XAPI.Settings()
			if err != nil {
				return err
			}
			dir, err := source.Open(cfg)
			if err != nil {
				return err
			}
			defer dir.Close()

			ctx := cmd.Context()
			data, err := storage.NewResolver(dir).Resolve(ctx, learningEvent)
			if err != nil {
				return err
			}

			builder := xapi.NewBuilder(settings)
			if dryRun {
				stmt, err := builder.Build(learningEvent, data)
				if err != nil {
					return err
				}
				body, err := stmt.Marshal()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}

			client, err := lrs.NewClient(cfg.LRS.ClientConfig())
			if err != nil {
				return err
			}
			res, err := xapi.NewReporter(builder, client).Submit(ctx, learningEvent, data, evt.LRSCredentials())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", res.Status)
			if res.StatusCode != 0 {
				fmt.Fprintf(out, "status_code: %d\n", res.StatusCode)
			}
			if id, err := lrs.StatementID(res.Raw); err == nil {
				fmt.Fprintf(out, "statement_id: %s\n", id)
			}
			if !res.OK() {
				return fmt.Errorf("statement not accepted: %s", strings.TrimSpace(res.String()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statement instead of sending it")
	return cmd
}

func aggregateCmd(g *globalFlags) *cobra.Command {
	var (
		verb      string
		projectID string
		exclude   []string
		pipeline  bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate <email>...",
		Short: "Run the aggregate statement query for a list of learners",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := xapi.AggregateRequest{
				Emails:           args,
				Verb:             verb,
				ProjectID:        numericID(projectID),
				ExcludeObjectIDs: exclude,
			}

			if pipeline {
				q, err := xapi.BuildAggregateQuery(req)
				if err != nil {
					return err
				}
				b, err := q.Pipeline()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			client, err := lrs.NewClient(cfg.LRS.ClientConfig())
			if err != nil {
				return err
			}
			body, err := xapi.Aggregate(cmd.Context(), client, req, lrs.Credentials{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&verb, "verb", "completed", "Verb display to match")
	cmd.Flags().StringVar(&projectID, "project-id", "0", "Value projected as _id")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Object ids to leave out")
	cmd.Flags().BoolVar(&pipeline, "pipeline", false, "Print the pipeline instead of running it")
	return cmd
}

// numericID keeps numeric project ids numeric in the projected rows.
func numericID(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
