package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/wicli/internal/search"
)

// maxPreviewLines bounds the content shown per match in markdown output.
const maxPreviewLines = 40

// FormatSearchResults formats matches as markdown. total is the match count
// before any limit was applied.
func FormatSearchResults(term string, matches []search.Match, total int) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No files contain \"%s\"", term)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Files containing \"%s\"\n\n", term)
	fmt.Fprintf(&sb, "Found %d file", total)
	if total != 1 {
		sb.WriteString("s")
	}
	if total > len(matches) {
		fmt.Fprintf(&sb, " (showing %d)", len(matches))
	}
	sb.WriteString("\n\n")

	for i, m := range matches {
		fmt.Fprintf(&sb, "### %d. %s\n", i+1, m.Path)
		fmt.Fprintf(&sb, "**Root:** `%s`\n\n", m.Root)
		fmt.Fprintf(&sb, "```\n%s\n```\n\n", preview(m.Content, maxPreviewLines))
	}

	return sb.String()
}

// FormatSources formats the registered roots as a markdown list.
func FormatSources(roots []string) string {
	if len(roots) == 0 {
		return "No sources configured. Add one with `wicli sources add <path-or-git-url>`."
	}

	var sb strings.Builder
	sb.WriteString("## Sources\n\n")
	for _, r := range roots {
		fmt.Fprintf(&sb, "- `%s`\n", r)
	}
	return sb.String()
}

// preview returns the first n lines of content, noting how many were cut.
func preview(content string, n int) string {
	content = strings.TrimRight(content, "\n")
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-n)
}

// clampLimit ensures limit is within bounds.
func clampLimit(limit, defaultVal, min, max int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
