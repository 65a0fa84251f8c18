package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"portfolio-backend/internal/analyses"
	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/shared/config"
)

type options struct {
	file string
	out  string
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "analyze",
		Short:         "Run the heuristic analysis tools locally",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, tool := range analyses.Tools() {
		root.AddCommand(newToolCmd(tool, cfg.MaxInputBytes))
	}
	return root
}

func newToolCmd(tool analyses.Tool, maxInputBytes int) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   string(tool) + " [input]",
		Short: fmt.Sprintf("Run the %s tool on an argument, a file or stdin", tool),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd.Context(), cmd.InOrStdin(), opts.file, args)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), tool, input, maxInputBytes, opts.out)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read input from a file (pdf, docx or text)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "also write the JSON result to this path")
	return cmd
}

func readInput(ctx context.Context, stdin io.Reader, path string, args []string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch {
	case path != "" && len(args) > 0:
		return "", errors.New("pass either an argument or --file, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		text, err := extract.TextFromBytes(ctx, data, "", filepath.Base(path))
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		return text, nil
	case len(args) > 0:
		return args[0], nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func run(w io.Writer, tool analyses.Tool, input string, maxInputBytes int, outPath string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input is empty")
	}
	if maxInputBytes > 0 && len(input) > maxInputBytes {
		return fmt.Errorf("input is %d bytes; limit is %d (MAX_INPUT_BYTES)", len(input), maxInputBytes)
	}

	result, err := analyses.Run(tool, input)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	pretty, err := prettyJSON(raw)
	if err != nil {
		return fmt.Errorf("format json: %w", err)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, pretty, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	_, err = w.Write(pretty)
	return err
}

func prettyJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
