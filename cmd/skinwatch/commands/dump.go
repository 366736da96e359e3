package commands

import (
	"fmt"
	"os"

	"skinwatch/internal/savedata"
)

// DumpCmd implements the 'dump' command.
type DumpCmd struct {
	SaveFile string `arg:"" name:"save-file" help:"Save file to decode"`
}

func (d *DumpCmd) Run(global *Global) error {
	rawData, err := os.ReadFile(d.SaveFile)
	if err != nil {
		return fmt.Errorf("read save file: %w", err)
	}

	record, err := savedata.DecodeErr(rawData)
	if err != nil {
		return fmt.Errorf("decode %s: %w", d.SaveFile, err)
	}

	out := global.out()
	_, _ = fmt.Fprintf(out, "mode:           %s\n", record.Mode)
	_, _ = fmt.Fprintf(out, "stopwatch time: %s\n", record.StopwatchTime)
	_, _ = fmt.Fprintf(out, "saved time:     %g\n", record.SavedTime)
	return nil
}
