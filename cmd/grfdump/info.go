package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"badc0de.net/pkg/go-newgrf/newgrf"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.grf>...",
	Short: "Identify files from their header records",
	Long: `Identify each file from its action 8 and action 14 records.

Only the identification scan runs; no entity tables are touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	l, _, _, err := newLoader()
	if err != nil {
		return err
	}

	for i, c := range scanAll(l, args) {
		if i > 0 {
			fmt.Println()
		}
		printConfig(c)
	}
	return nil
}

func printConfig(c *newgrf.Config) {
	fmt.Printf("%s\n", c.Path)
	fmt.Printf("  grfid:    %08X\n", c.GRFID)
	fmt.Printf("  name:     %s\n", c.GetName())
	if c.Info != "" {
		fmt.Printf("  info:     %s\n", c.Info)
	}
	if c.URL != "" {
		fmt.Printf("  url:      %s\n", c.URL)
	}
	if c.Version != 0 || c.MinLoadableVersion != 0 {
		fmt.Printf("  version:  %d (loads saves from %d)\n", c.Version, c.MinLoadableVersion)
	}
	fmt.Printf("  palette:  %s\n", paletteName(c.Palette))
	if c.NumParams != 0xFF {
		fmt.Printf("  params:   %d\n", c.NumParams)
	}
	for i, p := range c.ParamInfo {
		if p == nil {
			continue
		}
		printParamInfo(i, p)
	}
	fmt.Printf("  status:   %s\n", c.Status)
	if c.Error != nil {
		fmt.Printf("  error:    %s\n", c.Error)
	}
}

func paletteName(palette uint8) string {
	switch palette & newgrf.GRFP_GRF_MASK {
	case newgrf.GRFP_GRF_DOS:
		return "DOS"
	case newgrf.GRFP_GRF_WINDOWS:
		return "Windows"
	case newgrf.GRFP_GRF_ANY:
		return "any"
	}
	return "undeclared"
}

func printParamInfo(i int, p *newgrf.ParamInfo) {
	fmt.Printf("  param %d:  %s", i, p.Name)
	if p.Type == 1 {
		fmt.Printf(" (bit mask, slot %d bits %d..%d)", p.Param, p.FirstBit, p.FirstBit+p.NumBits-1)
	} else if p.MinValue != 0 || p.MaxValue != 0xFFFFFFFF {
		fmt.Printf(" (%d..%d, default %d)", p.MinValue, p.MaxValue, p.DefaultValue)
	}
	fmt.Println()

	values := make([]uint32, 0, len(p.ValueNames))
	for v := range p.ValueNames {
		values = append(values, v)
	}
	sort.Slice(values, func(a, b int) bool { return values[a] < values[b] })
	for _, v := range values {
		fmt.Printf("            %d: %s\n", v, p.ValueNames[v])
	}
}
