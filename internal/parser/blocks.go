package parser

import (
	"regexp"
	"strings"
)

// blockRule says how tradeline blocks are cut out of an accounts section.
type blockRule struct {
	// anchor is matched against each line; every match starts a block.
	anchor *regexp.Regexp
	// lookBehind lines above the anchor belong to the block window.
	lookBehind int
	// lookAhead lines past the block end are searched for trailing fields.
	lookAhead int
	// notName rejects lines that cannot be the creditor name.
	notName func(string) bool
	// labelsAbove allows field labels between the creditor name and the
	// anchor line.
	labelsAbove bool
	// leadLabel marks a field line above the anchor that opens the block
	// on its own, such as "Account Name:".
	leadLabel *regexp.Regexp
}

// accountBlock is one tradeline's slice of the section lines.
//
// start..anchor is the look-behind window, cut off after the previous
// anchor. lead is the first line that belongs to this tradeline (its
// creditor name or leading label, else the anchor); the block ends where
// the next tradeline's lead begins.
type accountBlock struct {
	lines  []string
	anchor int
	start  int
	lead   int
	name   int
	end    int
	extEnd int
}

// Window is the raw block including the look-behind lines.
func (b accountBlock) Window() string {
	return strings.Join(b.lines[b.start:b.end], "\n")
}

// Body is the tradeline's own lines, from its lead to the next lead.
func (b accountBlock) Body() string {
	return strings.Join(b.lines[b.lead:b.end], "\n")
}

// Extended is Body plus the look-ahead lines.
func (b accountBlock) Extended() string {
	return strings.Join(b.lines[b.lead:b.extEnd], "\n")
}

// Above returns the creditor name line found above the anchor, or "".
func (b accountBlock) Above() string {
	if b.name < 0 {
		return ""
	}
	return strings.TrimSpace(b.lines[b.name])
}

// split cuts section into blocks, one per anchor line, in document order.
func (r blockRule) split(section string) []accountBlock {
	lines := splitLines(section)
	var anchors []int
	for i, ln := range lines {
		if r.anchor.MatchString(ln) {
			anchors = append(anchors, i)
		}
	}

	blocks := make([]accountBlock, 0, len(anchors))
	floor := 0
	for _, i := range anchors {
		b := accountBlock{
			lines:  lines,
			anchor: i,
			start:  max(floor, i-r.lookBehind),
		}
		b.lead, b.name = r.leadOf(lines, b.start, i)
		blocks = append(blocks, b)
		floor = i + 1
	}

	for k := range blocks {
		end := len(lines)
		if k+1 < len(blocks) {
			end = blocks[k+1].lead
		}
		blocks[k].end = end
		blocks[k].extEnd = min(end+r.lookAhead, len(lines))
	}
	return blocks
}

// leadOf walks up from the anchor through the window and returns the lead
// line and the creditor name line (-1 when none).
func (r blockRule) leadOf(lines []string, start, anchor int) (lead, name int) {
	lead, name = anchor, -1
	for j := anchor - 1; j >= start; j-- {
		ln := strings.TrimSpace(lines[j])
		switch {
		case ln == "":
			continue
		case r.leadLabel != nil && r.leadLabel.MatchString(ln):
			lead = j
		case r.notName != nil && r.notName(ln):
			if !r.labelsAbove {
				return lead, name
			}
		default:
			return j, j
		}
	}
	return lead, name
}
