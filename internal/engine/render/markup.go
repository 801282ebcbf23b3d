package render

import "strings"

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockSubheading
	blockBullet
)

type block struct {
	kind blockKind
	text string
}

// parseMarkup reads the lightweight proposal markup: "# " and "## "
// headings, "- " or "* " bullets, and paragraphs separated by blank lines.
// Consecutive plain lines join into one paragraph. "**" emphasis markers
// are dropped.
func parseMarkup(s string) []block {
	var blocks []block
	var para []string

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, raw := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, block{kind: blockSubheading, text: strings.TrimSpace(line[3:])})
		case strings.HasPrefix(line, "# "):
			flush()
			blocks = append(blocks, block{kind: blockHeading, text: strings.TrimSpace(line[2:])})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			flush()
			blocks = append(blocks, block{kind: blockBullet, text: strings.TrimSpace(line[2:])})
		default:
			para = append(para, line)
		}
	}
	flush()
	return blocks
}
