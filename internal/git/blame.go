package git

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ztk-sh/ztk/internal/model"
)

// Blame runs line-range blame over the given ref (usually HEAD, since the
// old side of a staged diff is HEAD content) and returns which commit owns
// each line in [start, start+count).
func (c *Client) Blame(file string, start int, count int, ref string) (model.BlameResult, error) {
	result := model.BlameResult{File: file, LineOwners: make(map[int]string)}
	if count <= 0 {
		return result, nil
	}

	end := start + count - 1
	output, err := c.run(
		"blame", "--porcelain",
		"-L", fmt.Sprintf("%d,%d", start, end),
		ref, "--", file,
	)
	if err != nil {
		return result, fmt.Errorf("failed to blame %s:%d,%d: %w", file, start, end, err)
	}

	owners, err := parseBlamePorcelain(output)
	if err != nil {
		return result, err
	}
	result.LineOwners = owners
	return result, nil
}

// parseBlamePorcelain reads porcelain blame output. Each line group starts
// with "<sha> <orig-line> <final-line> [<group-size>]"; everything else is
// header metadata or tab-prefixed content and is skipped.
func parseBlamePorcelain(output string) (map[int]string, error) {
	owners := make(map[int]string)

	for _, line := range strings.Split(output, "\n") {
		if line == "" || strings.HasPrefix(line, "\t") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields) > 4 || !isHexSHA(fields[0]) {
			continue
		}
		finalLine, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, &ParseError{Op: "git blame", Detail: "bad line number in: " + line}
		}
		owners[finalLine] = fields[0]
	}

	if len(owners) == 0 {
		return nil, &ParseError{Op: "git blame", Detail: "no line groups in porcelain output"}
	}
	return owners, nil
}

func isHexSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
