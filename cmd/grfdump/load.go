package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grftext"
)

var loadCmd = &cobra.Command{
	Use:   "load <file.grf>...",
	Short: "Load files and dump the resulting tables",
	Long: `Drive the given files through all loading stages, in argument order,
and dump the entity tables they filled: engines, cargoes, track types and
sound effects. Parameter values given with --param apply to every file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

var flagParams []uint

func init() {
	loadCmd.Flags().UintSliceVar(&flagParams, "param", nil,
		"parameter values, in slot order")
}

func runLoad(cmd *cobra.Command, args []string) error {
	l, tables, strings, err := newLoader()
	if err != nil {
		return err
	}

	params := make([]uint32, len(flagParams))
	for i, v := range flagParams {
		params[i] = uint32(v)
	}

	configs := scanAll(l, args)
	for _, c := range configs {
		c.Params = append([]uint32(nil), params...)
	}
	if err := l.Load(configs); err != nil {
		return err
	}

	for _, c := range configs {
		fmt.Printf("%s: %08X %q, %s", c.Path, c.GRFID, c.GetName(), c.Status)
		if c.Error != nil {
			fmt.Printf(" (%s)", c.Error)
		}
		fmt.Println()
	}

	dumpEngines(tables, strings)
	dumpCargoes(tables, strings)
	dumpTrackTypes("rail types", tables.RailTypes, strings)
	dumpTrackTypes("road types", tables.RoadTypes, strings)
	dumpSounds(tables)
	fmt.Printf("\n%d strings registered\n", strings.Len())
	return nil
}

// stringOrBlank resolves a table string for display.
func stringOrBlank(strings *grftext.Table, id grftext.StringID) string {
	if id == grftext.STR_UNDEFINED || id == 0 {
		return ""
	}
	if s, ok := strings.GetString(id, 0x7F); ok {
		return s
	}
	return ""
}

// dumpEngines lists every engine some file claimed.
func dumpEngines(tables *entities.Tables, strings *grftext.Table) {
	claimed := 0
	for _, e := range tables.Engines.All() {
		if e.Props.HasGRF() {
			claimed++
		}
	}
	fmt.Printf("\nengines: %d in pool, %d claimed\n", tables.Engines.Len(), claimed)

	for _, e := range tables.Engines.All() {
		if !e.Props.HasGRF() {
			continue
		}
		fmt.Printf("  %5d  %s %d from %08X", e.ID, e.Kind, e.InternalID, e.Props.GRFID)
		if name := stringOrBlank(strings, e.Info.Name); name != "" {
			fmt.Printf(" %q", name)
		}
		if e.Kind == entities.VEH_TRAIN {
			fmt.Printf("  speed %d power %d", e.Rail.Speed, e.Rail.Power)
		}
		if e.Props.BoundKeys() > 0 {
			fmt.Printf("  %d graphics chains", e.Props.BoundKeys())
		}
		fmt.Println()
	}
}

// dumpCargoes lists the valid cargo slots, marking redefined ones.
func dumpCargoes(tables *entities.Tables, strings *grftext.Table) {
	fmt.Println("\ncargoes:")
	for t := entities.CargoType(0); t < entities.NUM_CARGO; t++ {
		cs := tables.Cargo.Spec(t)
		if !cs.IsValid() {
			continue
		}
		fmt.Printf("  %3d  %s bit %d", t, cs.Label, cs.BitNum)
		if name := stringOrBlank(strings, cs.Name); name != "" {
			fmt.Printf(" %q", name)
		}
		if cs.GRFID != 0 {
			fmt.Printf(" (from %08X)", cs.GRFID)
		}
		fmt.Println()
	}
}

func dumpTrackTypes(heading string, t *entities.TrackTypeTable, strings *grftext.Table) {
	fmt.Printf("\n%s: %d\n", heading, t.Len())
	for id := 0; id < t.Len(); id++ {
		info := t.Info(entities.TrackTypeID(id))
		fmt.Printf("  %3d  %s", id, info.Label)
		if name := stringOrBlank(strings, info.Name); name != "" {
			fmt.Printf(" %q", name)
		}
		if info.MaxSpeed != 0 {
			fmt.Printf("  max speed %d", info.MaxSpeed)
		}
		fmt.Println()
	}
}

// dumpSounds lists the file-supplied sound effects after the stock samples.
func dumpSounds(tables *entities.Tables) {
	n := tables.Sounds.Len()
	if n <= entities.ORIGINAL_SAMPLE_COUNT {
		return
	}
	fmt.Printf("\nsound effects: %d beyond the stock set\n", n-entities.ORIGINAL_SAMPLE_COUNT)
	for id := entities.SoundID(entities.ORIGINAL_SAMPLE_COUNT); int(id) < n; id++ {
		e := tables.Sounds.Entry(id)
		fmt.Printf("  %5d  from %08X, %d bytes", id, e.GRFID, e.Size)
		if e.Name != "" {
			fmt.Printf(" %q", e.Name)
		}
		fmt.Println()
	}
}
