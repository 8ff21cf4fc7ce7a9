// Package qualparse extracts structured answers from a participant's
// written-answer log. A log is a sequence of blocks, each opened by a
// "Set Index: N" marker and holding two answer/reason pairs.
package qualparse

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// Block and label markers. Labels accept ASCII and full-width colons and
// both the Japanese and English field names seen across log revisions.
var (
	blockMarker = regexp.MustCompile(`Set Index[:\s]+(\d+)`)
	q1Label     = regexp.MustCompile(`A\.Q1\s*(?:解答欄|answer field)[:：\s]*`)
	q2Label     = regexp.MustCompile(`A\.Q2\s*(?:解答欄|answer field)[:：\s]*`)
	reasonLabel = regexp.MustCompile(`\n\s*(?:理由|reason)[:：\s]*`)
	separator   = regexp.MustCompile(`\n-{3,}`)
)

// ParseFile reads and parses one log file. A missing or unreadable file
// yields an empty mapping together with the read error so the caller can
// log it; parse problems inside the content never produce an error.
func ParseFile(path string) (map[int]types.QualitativeBlock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return map[int]types.QualitativeBlock{}, err
	}
	return Parse(string(content)), nil
}

// Parse splits content into "Set Index" blocks and extracts the four text
// fields of each. A block runs from its marker to the next marker or end
// of content. Fields whose pattern does not match default to "".
func Parse(content string) map[int]types.QualitativeBlock {
	blocks := make(map[int]types.QualitativeBlock)

	marks := blockMarker.FindAllStringSubmatchIndex(content, -1)
	for i, m := range marks {
		setIdx, err := strconv.Atoi(content[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(content)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		blocks[setIdx] = parseBlock(content[m[1]:end])
	}
	return blocks
}

// parseBlock extracts the two answer/reason pairs from one block. The Q1
// region ends where the Q2 label begins, so the Q1 reason cannot swallow
// the second pair; the Q2 reason ends at a trailing separator line.
func parseBlock(block string) types.QualitativeBlock {
	var qb types.QualitativeBlock

	q1Region := block
	q2Region := ""
	if loc := q2Label.FindStringIndex(block); loc != nil {
		q1Region = block[:loc[0]]
		q2Region = block[loc[0]:]
	}

	qb.Q1Answer, qb.Q1Reason = parsePair(q1Region, q1Label)
	qb.Q2Answer, qb.Q2Reason = parsePair(q2Region, q2Label)
	if sep := separator.FindStringIndex(qb.Q2Reason); sep != nil {
		qb.Q2Reason = strings.TrimSpace(qb.Q2Reason[:sep[0]])
	}
	return qb
}

// parsePair extracts an answer and its reason from a region that holds at
// most one labeled pair. Either field may come back empty.
func parsePair(region string, label *regexp.Regexp) (answer, reason string) {
	loc := label.FindStringIndex(region)
	if loc == nil {
		return "", ""
	}
	rest := region[loc[1]:]

	rloc := reasonLabel.FindStringIndex(rest)
	if rloc == nil {
		return strings.TrimSpace(rest), ""
	}
	return strings.TrimSpace(rest[:rloc[0]]), strings.TrimSpace(rest[rloc[1]:])
}
