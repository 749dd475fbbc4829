package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/willibrandon/msgtmpl"
	"github.com/willibrandon/msgtmpl/configuration"
	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/parser"
	"github.com/willibrandon/msgtmpl/selflog"
)

type options struct {
	selflog  bool
	jsonArgs bool
	output   string
	config   string
	level    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "msgtmpl",
		Short:         "Render and inspect message templates",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.selflog {
				selflog.Enable(selflog.Sync(cmd.ErrOrStderr()))
			}
		},
	}
	root.PersistentFlags().BoolVar(&opts.selflog, "selflog", false, "Write internal diagnostics to stderr")

	root.AddCommand(newRenderCmd(opts), newTokensCmd(opts), newLogCmd(opts))
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render TEMPLATE [ARG...]",
		Short: "Render a template with positional arguments",
		Long: `Render a template with positional arguments.

Examples:
  # Plain strings
  msgtmpl render "No data found for id {id}" abc123

  # Structured arguments
  msgtmpl render --json-args "Order {@order} placed" '{"id":7,"items":["apple"]}'

  # Show bound properties
  msgtmpl render -o json "{a} and {b}" 1 2 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := decodeArgs(args[1:], opts.jsonArgs)
			if err != nil {
				return err
			}

			res, err := msgtmpl.Process(args[0], values...)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, opts.output)
		},
	}
	cmd.Flags().BoolVar(&opts.jsonArgs, "json-args", false, "Decode each argument as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	return cmd
}

func newTokensCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens TEMPLATE",
		Short: "Print the tokens of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := parser.Parse(args[0])
			if err != nil {
				return err
			}
			return writeTokens(cmd.OutOrStdout(), tmpl, opts.output)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	return cmd
}

func newLogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log TEMPLATE [ARG...]",
		Short: "Write one event through a configured logger",
		Long: `Write one event through a logger built from a YAML or JSON
configuration file. Without --config the event is written to stdout as text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := configuration.ParseLevel(opts.level)
			if err != nil {
				return err
			}
			values, err := decodeArgs(args[1:], opts.jsonArgs)
			if err != nil {
				return err
			}

			logger, err := buildLogger(cmd.OutOrStdout(), opts.config)
			if err != nil {
				return err
			}
			defer logger.Close()

			logger.Write(level, args[0], values...)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Logger configuration file")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "Information", "Event level")
	cmd.Flags().BoolVar(&opts.jsonArgs, "json-args", false, "Decode each argument as JSON")
	return cmd
}

func buildLogger(w io.Writer, path string) (*msgtmpl.Logger, error) {
	if path == "" {
		return msgtmpl.New(
			msgtmpl.WithMinimumLevel(core.VerboseLevel),
			msgtmpl.WithConsole(w),
		), nil
	}

	config, err := configuration.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return configuration.NewLoggerBuilder().Build(config)
}

func decodeArgs(args []string, asJSON bool) ([]any, error) {
	values := make([]any, len(args))
	for i, arg := range args {
		if !asJSON {
			values[i] = arg
			continue
		}
		if err := json.Unmarshal([]byte(arg), &values[i]); err != nil {
			return nil, fmt.Errorf("argument %d is not valid JSON: %w", i, err)
		}
	}
	return values, nil
}

type resultJSON struct {
	RenderedMessage string         `json:"renderedMessage"`
	RawTemplate     string         `json:"rawTemplate"`
	BoundProperties map[string]any `json:"boundProperties"`
}

func writeResult(w io.Writer, res *msgtmpl.Result, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, res.RenderedMessage)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(resultJSON{
			RenderedMessage: res.RenderedMessage,
			RawTemplate:     res.RawTemplate,
			BoundProperties: res.BoundProperties,
		})
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

type tokenJSON struct {
	Kind        string `json:"kind"`
	Text        string `json:"text,omitempty"`
	Name        string `json:"name,omitempty"`
	Destructure bool   `json:"destructure,omitempty"`
}

func writeTokens(w io.Writer, tmpl *parser.MessageTemplate, format string) error {
	out := make([]tokenJSON, 0, len(tmpl.Tokens))
	for _, token := range tmpl.Tokens {
		switch t := token.(type) {
		case *parser.TextToken:
			out = append(out, tokenJSON{Kind: "text", Text: t.Text})
		case *parser.PropertyToken:
			out = append(out, tokenJSON{Kind: "property", Text: t.Raw, Name: t.PropertyName, Destructure: t.Destructure})
		}
	}

	switch format {
	case "text":
		for _, t := range out {
			line := t.Kind + " " + strconv.Quote(t.Text)
			if t.Kind == "property" {
				line += " name=" + t.Name + " destructure=" + strconv.FormatBool(t.Destructure)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
