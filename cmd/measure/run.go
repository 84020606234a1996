package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/stewartad1/RapidEdge/internal/dxf/service"
)

// run reads a DXF file, executes one analysis operation, and prints the
// result as JSON to stdout. No cache or history store is wired here.
func run(op, path string, rest []string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts := service.MeasureOptions{Filename: filepath.Base(path)}
	if len(rest) > 0 {
		opts.UnitOverride = rest[0]
	}
	if len(rest) > 1 {
		tol, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("bad joinTol %q: %w", rest[1], err)
		}
		opts.JoinTolerance = tol
	}

	svc := service.New(nil, nil)
	ctx := context.Background()

	var out any
	switch op {
	case "measure":
		out, err = svc.Measure(ctx, content, opts)
	case "inspect":
		out, err = svc.Inspect(ctx, content, opts)
	case "parse":
		out, err = svc.Parse(ctx, content, opts.Filename)
	default:
		return fmt.Errorf("unknown command: %s", op)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
