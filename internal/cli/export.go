package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/unwind/internal/export"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

type ExportCmd struct {
	Format string `help:"Output format (csv, json)." default:"csv" enum:"csv,json"`
	Out    string `help:"Output file. Use - for stdout." short:"o"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	records, err := ctx.Store.QueryRecords(context.Background(), store.RecordFilter{Ascending: true})
	if err != nil {
		return err
	}

	if c.Out == "-" {
		if c.Format == "json" {
			return export.WriteJSON(ctx.out(), records)
		}
		return export.WriteCSV(ctx.out(), records)
	}

	path := c.Out
	if path == "" {
		path = fmt.Sprintf("unwind-export-%s.%s", time.Now().Format("2006-01-02"), c.Format)
	}
	switch c.Format {
	case "json":
		err = export.ToJSON(records, path)
	case "csv":
		err = export.ToCSV(records, path)
	default:
		return &wellness.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", c.Format)}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "Exported %d check-ins to %s\n", len(records), path)
	return nil
}
