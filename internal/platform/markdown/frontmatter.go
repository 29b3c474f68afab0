// Package markdown reads notes that open with a YAML frontmatter block.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// SplitFrontmatter returns the decoded frontmatter and the body after it. A
// note without an opening fence is all body. CRLF line endings are accepted.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, " \t") != fence {
		return map[string]any{}, content, nil
	}

	var raw []string
	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t") != fence {
			raw = append(raw, line)
			continue
		}
		meta := map[string]any{}
		if err := yaml.Unmarshal([]byte(strings.Join(raw, "\n")), &meta); err != nil {
			return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
		return meta, strings.Join(lines[i+1:], "\n"), nil
	}
	return nil, "", fmt.Errorf("invalid frontmatter: missing closing fence")
}
