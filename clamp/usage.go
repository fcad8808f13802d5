package clamp

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// HelpTarget returns the deepest non-pseudo command along the active chain,
// which is the context a help or usage request was made for.
func (c *Command) HelpTarget() *Command {
	cur := c
	for cur.activeSubCmd != nil && !cur.activeSubCmd.pseudo {
		cur = cur.activeSubCmd
	}
	return cur
}

// Usage writes the one-line synopsis for this command.
func (c *Command) Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s%s\n", c.Name, c.synopsis())
}

func (c *Command) synopsis() string {
	var b strings.Builder
	if len(c.opts) > 0 {
		b.WriteString(" [options]")
	}
	if real := c.realSubCmds(); len(real) > 0 {
		if c.SubCmdsMandatory == MandatoryOn {
			b.WriteString(" <command>")
		} else {
			b.WriteString(" [command]")
		}
	}
	for _, v := range c.vals {
		lb, rb := "[", "]"
		if c.ValsMandatory == MandatoryOn && !v.HasDefault() {
			lb, rb = "<", ">"
		}
		b.WriteString(" " + lb + v.Name() + rb)
		if v.MaxArgs() > 1 {
			b.WriteString("...")
		}
	}
	return b.String()
}

// Help writes the full help text for this command: synopsis, description,
// then aligned sections for sub-commands, options, and values.
func (c *Command) Help(w io.Writer) {
	c.Usage(w)
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}

	if real := c.realSubCmds(); len(real) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		writeAligned(w, commandRows(real))
	}
	if len(c.opts) > 0 {
		fmt.Fprintf(w, "\nOptions:\n")
		writeAligned(w, c.optionRows())
	}
	if len(c.vals) > 0 {
		fmt.Fprintf(w, "\nValues:\n")
		writeAligned(w, c.valueRows())
	}
}

type helpRow struct {
	left  string
	right string
}

func commandRows(cmds []*Command) []helpRow {
	rows := make([]helpRow, 0, len(cmds))
	for _, s := range cmds {
		rows = append(rows, helpRow{s.Name, s.Description})
	}
	return rows
}

func (c *Command) optionRows() []helpRow {
	rows := make([]helpRow, 0, len(c.opts))
	for _, o := range c.opts {
		rows = append(rows, helpRow{c.formatOption(o), o.Description})
	}
	return rows
}

func (c *Command) valueRows() []helpRow {
	rows := make([]helpRow, 0, len(c.vals))
	for _, v := range c.vals {
		left := fmt.Sprintf(c.cfg.ValueUsageFmt, v.Name(), v.Kind())
		desc := v.Description()
		if v.HasDefault() {
			desc += " (default: " + v.defaultLabel() + ")"
		}
		rows = append(rows, helpRow{left, desc})
	}
	return rows
}

// formatOption renders one option's invocation forms. Boolean options show
// bare forms; valued options go through the configured format string.
func (c *Command) formatOption(o *Option) string {
	short, long := "", ""
	if o.Short != 0 && c.cfg.shortOptsEnabled() {
		short = string(c.cfg.ShortPrefix) + string(o.Short)
	}
	if o.Long != "" && c.cfg.longOptsEnabled() {
		long = c.cfg.LongPrefix + o.Long
	}

	if !o.requiresValue() {
		switch {
		case short != "" && long != "":
			return short + ", " + long
		case short != "":
			return short
		default:
			return long
		}
	}
	if short == "" {
		short = " "
	}
	if long == "" {
		long = " "
	}
	return strings.TrimSpace(fmt.Sprintf(c.cfg.OptionUsageFmt, short, long, o.Val.Name(), o.Val.Kind()))
}

// writeAligned pads the left column so descriptions line up. Widths count
// runes, not bytes, so non-ASCII names keep the column straight.
func writeAligned(w io.Writer, rows []helpRow) {
	width := 0
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.left); n > width {
			width = n
		}
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(r.left))
		fmt.Fprintf(w, "  %s%s  %s\n", r.left, pad, r.right)
	}
}
