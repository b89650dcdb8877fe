package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KJohnson82/MMPD/internal/service"
)

type exportOptions struct {
	format string
	out    string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a one-shot export of the active directory",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(opts.format)
			if err != nil {
				return err
			}
			opts.format = format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return runExport(cmd.Context(), a.services(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "json", "Export format: json or xlsx")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func parseFormat(raw string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case "json", "xlsx":
		return f, nil
	default:
		return "", fmt.Errorf("invalid --format %q: expected json or xlsx", raw)
	}
}

func runExport(ctx context.Context, svc *service.Service, opts exportOptions) error {
	data, err := renderExport(ctx, svc, opts.format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported directory (%s) to %s\n", opts.format, opts.out)
	return nil
}

// renderExport 先取数再落盘，存储失败时不留下空文件
func renderExport(ctx context.Context, svc *service.Service, format string) ([]byte, error) {
	if format == "xlsx" {
		buf, _, err := svc.Export.ExportWorkbook(ctx)
		if err != nil {
			return nil, fmt.Errorf("export workbook: %w", err)
		}
		return buf.Bytes(), nil
	}

	snap := svc.Directory.FullSnapshot(ctx)
	if !snap.Success {
		return nil, fmt.Errorf("export snapshot: %s", snap.Message)
	}
	return json.MarshalIndent(snap, "", "  ")
}
