package git

import (
	"fmt"
	"strings"
)

// RawCommit is one commit as listed by git log, before any domain
// interpretation.
type RawCommit struct {
	Hash    string
	Subject string
	Body    string
}

// logFormat emits hash, subject and body as NUL-terminated fields.
const logFormat = "--format=%H%x00%s%x00%b%x00"

// CommitsInRange lists the commits in base..head, oldest first, with
// NUL-delimited machine-parseable fields. An empty range yields an empty
// slice, not an error.
func (c *Client) CommitsInRange(base string, head string) ([]RawCommit, error) {
	output, err := c.run("log", "--reverse", logFormat, fmt.Sprintf("%s..%s", base, head))
	if err != nil {
		return nil, fmt.Errorf("failed to list commits in %s..%s: %w", base, head, err)
	}
	return parseCommitFields(output)
}

// parseCommitFields splits NUL-framed log output into commits. Each commit
// contributes exactly three fields; git inserts a newline between entries
// which ends up glued to the front of the next hash.
func parseCommitFields(output string) ([]RawCommit, error) {
	if strings.TrimSpace(output) == "" {
		return []RawCommit{}, nil
	}

	fields := strings.Split(output, "\x00")
	// The final NUL leaves one trailing field (empty or a bare newline)
	last := len(fields) - 1
	if strings.TrimSpace(fields[last]) != "" || last%3 != 0 {
		return nil, &ParseError{Op: "git log", Detail: "malformed NUL-delimited commit framing"}
	}

	commits := make([]RawCommit, 0, last/3)
	for i := 0; i < last; i += 3 {
		hash := strings.TrimSpace(fields[i])
		if hash == "" {
			return nil, &ParseError{Op: "git log", Detail: "empty commit hash field"}
		}
		commits = append(commits, RawCommit{
			Hash:    hash,
			Subject: strings.TrimSpace(fields[i+1]),
			Body:    strings.TrimRight(fields[i+2], "\n"),
		})
	}
	return commits, nil
}

// CommitMessage represents a structured commit message
type CommitMessage struct {
	Title    string
	Body     string
	Trailers map[string]string
}

// String renders the message in git's canonical layout: title, blank line,
// body, blank line, trailers.
func (m CommitMessage) String() string {
	var b strings.Builder
	b.WriteString(m.Title)
	if m.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Body)
	}
	if len(m.Trailers) > 0 {
		b.WriteString("\n")
		for key, value := range m.Trailers {
			b.WriteString(fmt.Sprintf("\n%s: %s", key, value))
		}
	}
	return b.String()
}

// Trailer extracts the value of the first trailer line of the form
// "key: value" found in a commit body.
func Trailer(body string, key string) string {
	prefix := key + ":"
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

// AddTrailer appends a trailer line to a commit message
func AddTrailer(message string, key string, value string) string {
	message = strings.TrimRight(message, "\n")
	return fmt.Sprintf("%s\n\n%s: %s\n", message, key, value)
}
