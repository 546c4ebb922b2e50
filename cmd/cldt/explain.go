package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cldt/internal/cldt"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <url>",
	Short: "Break a delivery URL into its components",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().String("format", "text", "output format (text|json)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	u, ok := cldt.DecomposeURL(strings.TrimSpace(args[0]))
	if !ok {
		return fmt.Errorf("explain: not a recognizable delivery URL")
	}

	switch outputFormat {
	case "text":
		renderExplainText(u)
	case "json":
		return renderExplainJSON(u)
	default:
		return fmt.Errorf("explain: unsupported output format %q", outputFormat)
	}
	return nil
}

func renderExplainText(u cldt.BoundURL) {
	label := color.New(color.FgCyan, color.Bold)

	fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("prefix:        "), u.Prefix)
	if len(u.Transformations) == 0 {
		fmt.Fprintf(os.Stdout, "%s (none)\n", label.Sprint("transformations:"))
	}
	for i, tr := range u.Transformations {
		fmt.Fprintf(os.Stdout, "%s #%d %s\n", label.Sprint("transformation:"), i+1, tr)
		for _, param := range strings.Split(tr, ",") {
			fmt.Fprintf(os.Stdout, "                    %s\n", param)
		}
	}
	if u.Version != "" {
		fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("version:       "), u.Version)
	}
	fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("public id:     "), strings.Join(u.PublicID, "/"))
}

func renderExplainJSON(u cldt.BoundURL) error {
	payload := struct {
		Prefix          string   `json:"prefix"`
		Transformations []string `json:"transformations"`
		Version         string   `json:"version,omitempty"`
		PublicID        string   `json:"public_id"`
	}{
		Prefix:          u.Prefix,
		Transformations: u.Transformations,
		Version:         u.Version,
		PublicID:        strings.Join(u.PublicID, "/"),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
