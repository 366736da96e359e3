package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"skinwatch/internal/core/model"
	"skinwatch/internal/storage"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Settings string `arg:"" optional:"" name:"settings-file" help:"Settings file to validate" default:"skinwatch.yaml"`
}

func (c *CheckCmd) Run(global *Global) error {
	settings, config, err := loadWatchConfig(c.Settings)
	if err != nil {
		return err
	}

	skins := settings.SkinsByID()

	out := global.out()
	_, _ = fmt.Fprintf(out, "settings:     %s\n", c.Settings)
	_, _ = fmt.Fprintf(out, "default mode: %s\n", config.DefaultMode)
	_, _ = fmt.Fprintf(out, "save file:    %s\n", settings.SaveDataPath())
	_, _ = fmt.Fprintf(out, "window:       %gx%g\n", settings.WindowSize.Width, settings.WindowSize.Height)
	_, _ = fmt.Fprintf(out, "skins:        %d\n", len(skins))
	_, _ = fmt.Fprintf(out, "switches:     %d stopwatch, %d clock\n", config.Stopwatch.Len(), config.Clock.Len())

	writeTable(out, "stopwatch", config.Stopwatch, skins)
	writeTable(out, "clock", config.Clock, skins)
	return nil
}

// writeTable lists a skin table from the latest threshold down, the order
// in which Resolve scans it.
func writeTable(out io.Writer, domain string, table model.SkinTable, skins map[uint64]storage.Skin) {
	_, _ = fmt.Fprintf(out, "\n%s skins:\n", domain)
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "  FROM\tSKIN\tID")
	for _, event := range table.Events() {
		_, _ = fmt.Fprintf(writer, "  %s\t%s\t%016x\n", event.From, skins[event.SkinID].Name, event.SkinID)
	}
	_, _ = fmt.Fprintf(writer, "  (default)\t%s\t%016x\n", skins[table.DefaultID()].Name, table.DefaultID())
	_ = writer.Flush()
}
