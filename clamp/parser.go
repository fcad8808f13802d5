package clamp

import (
	"strings"
)

// parser walks one token stream against an initialized Command tree in a
// single forward pass. Each matched sub-command pushes a new context by
// recursion; the remaining token supply is owned outright by the deepest
// context until it returns.
type parser struct {
	cfg      *Config
	root     *Command
	tokens   []string
	pos      int
	optsDone bool // a bare long-prefix token ends option classification
	done     bool // a reserved pseudo-command ends the whole parse
}

// Parse consumes tokens against the command, mutating option and value
// storage in place and threading the active sub-command cursor down through
// matched sub-commands. The command must have been initialized. On failure
// the parse aborts immediately; partially filled storage is left as is.
func (c *Command) Parse(tokens []string) error {
	if !c.initialized {
		return newSchemaError("command %q must be initialized before parsing", c.Name)
	}
	p := &parser{cfg: c.cfg, root: c, tokens: tokens}
	return p.run(c)
}

// run is one parsing context. Per-token classification priority: option,
// sub-command, positional value, failure. Mandatory-presence enforcement
// happens once this context's token supply ends, after any deeper context
// has returned, so the checks apply bottom-up.
func (p *parser) run(cmd *Command) error {
	for p.pos < len(p.tokens) && !p.done {
		tok := p.tokens[p.pos]

		if tok == "" {
			p.pos++
			continue
		}

		if !p.optsDone && p.cfg.longOptsEnabled() && tok == p.cfg.LongPrefix {
			p.optsDone = true
			p.pos++
			continue
		}

		switch {
		case !p.optsDone && p.isLongOptToken(tok):
			if err := p.parseLongOpt(cmd, tok); err != nil {
				return err
			}

		case !p.optsDone && p.isShortOptToken(tok):
			if err := p.parseShortOpt(cmd, tok); err != nil {
				return err
			}

		default:
			if sub := cmd.SubCmd(tok); sub != nil {
				cmd.activeSubCmd = sub
				p.pos++
				if sub.pseudo {
					// Reserved help/usage pseudo-command: the caller checks
					// for it after the parse; remaining tokens are ignored.
					p.done = true
					return nil
				}
				if err := p.run(sub); err != nil {
					return err
				}
				break
			}
			if err := p.parseValueToken(cmd, tok); err != nil {
				return err
			}
			p.pos++
		}
	}

	return p.checkMandatory(cmd)
}

func (p *parser) isLongOptToken(tok string) bool {
	return p.cfg.longOptsEnabled() &&
		len(tok) > len(p.cfg.LongPrefix) &&
		strings.HasPrefix(tok, p.cfg.LongPrefix)
}

func (p *parser) isShortOptToken(tok string) bool {
	return p.cfg.shortOptsEnabled() &&
		len(tok) > 1 &&
		strings.HasPrefix(tok, string(p.cfg.ShortPrefix))
}

// parseLongOpt handles one long-option token: --name, --name=value, or an
// abbreviation of a declared long name when enabled.
func (p *parser) parseLongOpt(cmd *Command, tok string) error {
	body := tok[len(p.cfg.LongPrefix):]
	name, inline, hasInline := splitInline(body, p.cfg.OptValSeps)

	opt := p.findLongOpt(cmd, name)
	if opt == nil {
		return unknownOptionError(cmd, name)
	}

	switch {
	case hasInline:
		if err := opt.Set(inline); err != nil {
			return err
		}
		p.pos++
	case !opt.requiresValue():
		if err := opt.Set("true"); err != nil {
			return err
		}
		p.pos++
	default:
		if p.pos+1 >= len(p.tokens) {
			return p.missingValue(cmd, opt, tok)
		}
		if err := opt.Set(p.tokens[p.pos+1]); err != nil {
			return err
		}
		p.pos += 2
	}
	return nil
}

// findLongOpt resolves a long name exactly first, then, when abbreviation is
// enabled, to the first option in declaration order whose long name has the
// given prefix. Uniqueness is deliberately not verified.
func (p *parser) findLongOpt(cmd *Command, name string) *Option {
	if name == "" {
		return nil
	}
	for _, o := range cmd.opts {
		if o.Long != "" && o.Long == name {
			return o
		}
	}
	if p.cfg.AllowAbbreviatedLongOpts {
		for _, o := range cmd.opts {
			if o.Long != "" && strings.HasPrefix(o.Long, name) {
				return o
			}
		}
	}
	return nil
}

// parseShortOpt handles one short-option token: -f, a chain -abc of boolean
// options, -t=5, -t 5, or -t5 when no-space attachment is enabled. Chaining
// stops at the first non-boolean option.
func (p *parser) parseShortOpt(cmd *Command, tok string) error {
	chain := []rune(tok)[1:]

	for i := 0; i < len(chain); i++ {
		opt := p.findShortOpt(cmd, chain[i])
		if opt == nil {
			return unknownOptionError(cmd, string(chain[i]))
		}

		rest := chain[i+1:]

		// Inline separator directly after the character: -t=5.
		if len(rest) > 0 && strings.ContainsRune(p.cfg.OptValSeps, rest[0]) {
			if err := opt.Set(string(rest[1:])); err != nil {
				return err
			}
			p.pos++
			return nil
		}

		if !opt.requiresValue() {
			if err := opt.Set("true"); err != nil {
				return err
			}
			continue
		}

		// Non-boolean option: the value is the next token when this is the
		// last character, the token remainder when no-space is enabled.
		if len(rest) == 0 {
			if p.pos+1 >= len(p.tokens) {
				return p.missingValue(cmd, opt, tok)
			}
			if err := opt.Set(p.tokens[p.pos+1]); err != nil {
				return err
			}
			p.pos += 2
			return nil
		}
		if p.cfg.AllowOptValNoSpace {
			if err := opt.Set(string(rest)); err != nil {
				return err
			}
			p.pos++
			return nil
		}
		return p.missingValue(cmd, opt, tok)
	}

	p.pos++
	return nil
}

func (p *parser) findShortOpt(cmd *Command, short rune) *Option {
	for _, o := range cmd.opts {
		if o.Short != 0 && o.Short == short {
			return o
		}
	}
	return nil
}

// parseValueToken feeds a positional token to the next unfilled value in
// declaration order; values already at their arity cap are skipped.
func (p *parser) parseValueToken(cmd *Command, tok string) error {
	for _, v := range cmd.vals {
		if !v.IsMaxed() {
			return v.Set(tok)
		}
	}
	if len(cmd.vals) == 0 && len(cmd.realSubCmds()) > 0 {
		return unknownCommandError(cmd, tok)
	}
	return &ParseError{
		Type:    ErrorTypeTooManyValues,
		Message: "unexpected argument: " + tok,
		Token:   tok,
		Command: cmd.Name,
	}
}

func (p *parser) missingValue(cmd *Command, opt *Option, tok string) error {
	return &ParseError{
		Type:    ErrorTypeMissingValue,
		Message: "option " + opt.Name + " requires a value",
		Token:   tok,
		Arg:     opt.Name,
		Command: cmd.Name,
	}
}

// checkMandatory enforces mandatory presence once cmd's token supply ended.
// A reserved help/usage request anywhere along the active chain, ancestors
// included, suppresses the checks so the caller can render them from a
// parse that otherwise succeeds.
func (p *parser) checkMandatory(cmd *Command) error {
	if p.root.HelpRequested() || p.root.UsageRequested() {
		return nil
	}

	real := cmd.realSubCmds()
	if cmd.SubCmdsMandatory == MandatoryOn && len(real) > 0 &&
		(cmd.activeSubCmd == nil || cmd.activeSubCmd.pseudo) {
		return &ParseError{
			Type:    ErrorTypeMissingSubCmd,
			Message: "command " + cmd.Name + " expects a sub-command",
			Command: cmd.Name,
		}
	}

	if cmd.ValsMandatory == MandatoryOn {
		for _, v := range cmd.vals {
			if !v.IsSet() && !v.HasDefault() {
				return &ParseError{
					Type:    ErrorTypeMissingVals,
					Message: "command " + cmd.Name + " is missing required value " + v.Name(),
					Arg:     v.Name(),
					Command: cmd.Name,
				}
			}
		}
	}

	return nil
}

// splitInline splits a token body at the first configured separator.
func splitInline(s, seps string) (name, val string, ok bool) {
	if i := strings.IndexAny(s, seps); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
