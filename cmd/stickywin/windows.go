package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/stickywin/internal/ipc"
)

const defaultTableWidth = 100

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stickywin list [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List managed windows, bottom of the stack first.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	windows, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	writeWindowTable(os.Stdout, windows, terminalWidth(os.Stdout))
	return 0
}

func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultTableWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTableWidth
	}
	return w
}

// writeWindowTable prints one row per window. Titles are cut so a row fits
// in width columns.
func writeWindowTable(w io.Writer, windows []ipc.WindowInfo, width int) {
	if len(windows) == 0 {
		fmt.Fprintln(w, "no managed windows")
		return
	}

	// ID, TYPE, STATE, ANCHOR, GEOMETRY and CLASS columns take about this
	// much before the title.
	const fixed = 70
	titleWidth := width - fixed
	if titleWidth < 10 {
		titleWidth = 10
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSTATE\tANCHOR\tGEOMETRY\tCLASS\tTITLE")
	for _, win := range windows {
		anchor := "-"
		if win.Anchor != 0 {
			anchor = fmt.Sprintf("0x%x", win.Anchor)
		}
		geom := fmt.Sprintf("%dx%d+%d+%d", win.Bounds.Width, win.Bounds.Height, win.Bounds.X, win.Bounds.Y)
		typ := win.Type
		if win.Pinned {
			typ += "*"
		}
		state := win.State
		if win.Hidden && state == "idle" {
			state = "hidden"
		}
		fmt.Fprintf(tw, "0x%x\t%s\t%s\t%s\t%s\t%s\t%s\n",
			win.ID, typ, state, anchor, geom, win.Class, truncate(win.Title, titleWidth))
	}
	tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// parseWindowID accepts hex ("0x1a00003") or decimal ids.
func parseWindowID(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return uint32(id), nil
}

func runSet(args []string) int {
	p, err := parseSetArgs(args)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	info, err := ipc.NewClient().SetWindow(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writeWindowTable(os.Stdout, []ipc.WindowInfo{*info}, terminalWidth(os.Stdout))
	return 0
}

// parseSetArgs builds a payload from "set [flags] <id>". Only flags given
// on the command line are sent, so the rest keep their current values.
func parseSetArgs(args []string) (ipc.SetWindowPayload, error) {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	typ := fs.String("type", "", "Window type: none, anchor, grabby, sticky, cohesive")
	gravity := fs.Int("gravity", 0, "Snap distance in pixels")
	moveKey := fs.String("move-key", "", "Client-area move key: none, or the global client_area_move_key")
	bools := map[string]*bool{
		"stick-on-move":    fs.Bool("stick-on-move", false, "Snap while moving"),
		"stick-on-resize":  fs.Bool("stick-on-resize", false, "Snap while resizing"),
		"stick-to-screen":  fs.Bool("stick-to-screen", false, "Snap to monitor edges"),
		"stick-to-other":   fs.Bool("stick-to-other", false, "Snap to other windows"),
		"stick-to-inside":  fs.Bool("stick-to-inside", false, "Align with the inside of other windows"),
		"stick-to-outside": fs.Bool("stick-to-outside", false, "Abut the outside of other windows"),
		"stick-to-corners": fs.Bool("stick-to-corners", false, "Align corners when abutting"),
	}
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stickywin set [flags] <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Change a window's type or snapping settings. Unset flags are left")
		fmt.Fprintln(os.Stderr, "unchanged; boolean flags take =false to disable.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ipc.SetWindowPayload{}, err
	}
	if fs.NArg() != 1 {
		return ipc.SetWindowPayload{}, fmt.Errorf("set requires exactly one <window-id>")
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		return ipc.SetWindowPayload{}, err
	}

	p := ipc.SetWindowPayload{ID: id}
	set := 0
	fs.Visit(func(f *flag.Flag) {
		set++
		switch f.Name {
		case "type":
			p.Type = typ
		case "gravity":
			p.Gravity = gravity
		case "move-key":
			p.ClientAreaMoveKey = moveKey
		case "stick-on-move":
			p.StickOnMove = bools[f.Name]
		case "stick-on-resize":
			p.StickOnResize = bools[f.Name]
		case "stick-to-screen":
			p.StickToScreen = bools[f.Name]
		case "stick-to-other":
			p.StickToOther = bools[f.Name]
		case "stick-to-inside":
			p.StickToInside = bools[f.Name]
		case "stick-to-outside":
			p.StickToOutside = bools[f.Name]
		case "stick-to-corners":
			p.StickToCorners = bools[f.Name]
		}
	})
	if set == 0 {
		return ipc.SetWindowPayload{}, fmt.Errorf("set: nothing to change")
	}
	return p, nil
}

func runStick(args []string) int {
	fs := flag.NewFlagSet("stick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: stickywin stick <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Attach the window to the anchor it touches, or detach it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "stick requires exactly one <window-id>")
		fs.Usage()
		return 2
	}
	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := ipc.NewClient().Stick(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if res.Attached {
		fmt.Printf("0x%x attached to 0x%x\n", res.ID, res.Anchor)
	} else {
		fmt.Printf("0x%x not attached\n", res.ID)
	}
	return 0
}
