package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/spf13/cobra"
)

func durationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <seconds>",
		Short: "Encode a number of seconds as an ISO 8601 duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), xapi.EncodeDuration(seconds))
			return nil
		},
	}
}

func statementIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement-id <response-file>",
		Short: "Print the statement id from a saved raw LRS response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			id, err := lrs.StatementID(string(raw))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func requestCmd(g *globalFlags) *cobra.Command {
	var (
		method          string
		headers         []string
		form            []string
		data            string
		includeRequest  bool
		includeResponse bool
	)

	cmd := &cobra.Command{
		Use:   "request <url>",
		Short: "Send a raw HTTP request with the connector's transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := lrs.ParseEndpoint(args[0])
			if err != nil {
				return err
			}

			req := lrs.NewRequest(strings.ToUpper(method), ep.Host, ep.Port, ep.Path)
			req.TLS = ep.TLS
			req.IncludeRequestHeaders = includeRequest
			req.IncludeResponseHeaders = includeResponse
			for _, h := range headers {
				name, value, ok := strings.Cut(h, ":")
				if !ok {
					return fmt.Errorf("invalid header %q, want Name: value", h)
				}
				req.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
			}
			for _, kv := range form {
				k, v, _ := strings.Cut(kv, "=")
				if req.Form == nil {
					req.Form = url.Values{}
				}
				req.Form.Add(k, v)
			}
			if data != "" {
				req.Body = []byte(data)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			client, err := lrs.NewClient(cfg.LRS.ClientConfig())
			if err != nil {
				return err
			}
			req.Timeout = cfg.LRS.RequestTimeout

			fmt.Fprint(cmd.OutOrStdout(), client.Request(cmd.Context(), req))
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header, as \"Name: value\"")
	cmd.Flags().StringArrayVarP(&form, "form", "F", nil, "Form field sent url-encoded, as key=value")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Raw request body")
	cmd.Flags().BoolVar(&includeRequest, "include-request", false, "Prefix the output with the request framing")
	cmd.Flags().BoolVarP(&includeResponse, "include", "i", false, "Prefix the output with the response head")
	return cmd
}
