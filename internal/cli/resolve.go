package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/PipeOpsHQ/support-chat/widget"
)

type resolution struct {
	Connection widget.ConnectionConfig `json:"connection" yaml:"connection"`
	Mount      widget.Mount            `json:"mount" yaml:"mount"`
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	var (
		output  string
		showKey bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the connection the widget would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.loadSettings()
			if err != nil {
				return err
			}
			cfg := widget.Resolve(settings.Connection)
			res := resolution{
				Connection: cfg,
				Mount:      widget.NewMount(cfg, widget.DefaultLabels()),
			}
			if !showKey {
				res.Connection.PublicAPIKey = maskKey(res.Connection.PublicAPIKey)
				res.Mount.Provider.PublicAPIKey = maskKey(res.Mount.Provider.PublicAPIKey)
			}
			return writeResolution(cmd.OutOrStdout(), output, res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&showKey, "show-key", false, "Print the public API key unmasked")
	return cmd
}

func writeResolution(w io.Writer, format string, res resolution) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(res), "encode json")
	case "yaml", "yml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		return writeText(w, res.Connection)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, cfg widget.ConnectionConfig) error {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", bold("mode:    "), green(string(cfg.Mode)))
	switch cfg.Mode {
	case widget.ModeDirectAgentURL:
		fmt.Fprintf(&sb, "%s %s\n", bold("agent:   "), cfg.DirectURL)
	case widget.ModeCloudWithExplicitRuntime:
		fmt.Fprintf(&sb, "%s %s\n", bold("runtime: "), cfg.RuntimeURL)
		fmt.Fprintf(&sb, "%s %s\n", bold("api key: "), keyOrNone(cfg.PublicAPIKey, gray))
	default:
		fmt.Fprintf(&sb, "%s %s\n", bold("runtime: "), gray("(sdk default)"))
		fmt.Fprintf(&sb, "%s %s\n", bold("api key: "), keyOrNone(cfg.PublicAPIKey, gray))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func keyOrNone(key string, gray func(a ...interface{}) string) string {
	if key == "" {
		return gray("(none)")
	}
	return key
}

// maskKey keeps a short prefix so operators can tell keys apart.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:4] + "****"
}
