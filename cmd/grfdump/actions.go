package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"badc0de.net/pkg/go-newgrf/grf"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <file.grf>",
	Short: "List the records of a file",
	Long: `Walk the container records of one file and list each pseudo-sprite
with its action, plus the real sprites between them. Nothing is decoded
beyond the framing, so disabled or damaged files list too.`,
	Args: cobra.ExactArgs(1),
	RunE: runActions,
}

var actionNames = [0x15]string{
	0x00: "change properties",
	0x01: "define sprite sets",
	0x02: "define sprite group",
	0x03: "map sprite groups",
	0x04: "define strings",
	0x05: "replace base sprites",
	0x06: "modify records",
	0x07: "conditional skip",
	0x08: "file header",
	0x09: "conditional skip (init)",
	0x0A: "replace sprites",
	0x0B: "report error",
	0x0C: "comment",
	0x0D: "assign parameter",
	0x0E: "deactivate files",
	0x0F: "define town names",
	0x10: "define label",
	0x11: "define sounds",
	0x12: "load font glyphs",
	0x13: "translate strings",
	0x14: "meta information",
}

func runActions(cmd *cobra.Command, args []string) error {
	f, err := grf.Open(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: container version %d\n", f.Path(), f.ContainerVersion())

	line := 0
	realSprites := 0
	for {
		size, typ, err := f.ReadRecordHeader()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		line++

		if typ != grf.RECORD_PSEUDO {
			realSprites++
			if err := skipRealSprite(f, size, typ); err != nil {
				return err
			}
			continue
		}

		data, err := f.ReadPseudo(size)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			fmt.Printf("%5d  empty record\n", line)
			continue
		}

		action := data[0]
		switch {
		case action == 0xFF:
			fmt.Printf("%5d  data block, %d bytes\n", line, size)
		case action == 0xFE:
			fmt.Printf("%5d  import block, %d bytes\n", line, size)
		case int(action) < len(actionNames):
			fmt.Printf("%5d  action 0x%02X %-22s %d bytes\n", line, action, actionNames[action], size)
		default:
			fmt.Printf("%5d  action 0x%02X %-22s %d bytes\n", line, action, "(unknown)", size)
		}
	}

	fmt.Printf("%d records, %d real sprites\n", line, realSprites)
	return nil
}

func skipRealSprite(f *grf.File, size uint32, typ uint8) error {
	if f.ContainerVersion() >= grf.CONTAINER_V2 && typ == grf.RECORD_REFERENCE {
		return f.SkipBytes(int(size))
	}
	if err := f.SkipBytes(7); err != nil {
		return err
	}
	return f.SkipSpriteData(typ, int(size)-8)
}
