package markdown

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// frontMatter holds the recognised keys of a leading metadata block.
// Zero values mean "not given".
type frontMatter struct {
	Title        string
	Description  string
	Tags         []string
	Order        *int
	Difficulty   string
	LastModified time.Time
	Extra        map[string]any
}

// delimiters maps an opening fence to its format.
var delimiters = map[string]string{
	"---": "yaml",
	"+++": "toml",
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// splitFrontMatter separates a leading metadata block from the body.
// It returns the block's format ("yaml", "toml" or "" when there is none),
// the block text, and the remaining body. An unterminated block is not
// front matter.
func splitFrontMatter(content string) (format, block, body string) {
	firstLine, rest, found := strings.Cut(content, "\n")
	if !found {
		return "", "", content
	}
	fence := strings.TrimRight(firstLine, " \t\r")
	format, ok := delimiters[fence]
	if !ok {
		return "", "", content
	}

	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimRight(line, " \t\r\n")
		if trimmed == fence || (format == "yaml" && trimmed == "...") {
			return format, rest[:offset], rest[offset+len(line):]
		}
		offset += len(line)
	}
	return "", "", content
}

// parseFrontMatter decodes a block into recognised fields.
func parseFrontMatter(format, block string) (*frontMatter, error) {
	raw := make(map[string]any)
	switch format {
	case "yaml":
		if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
			return nil, fmt.Errorf("yaml front matter: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal([]byte(block), &raw); err != nil {
			return nil, fmt.Errorf("toml front matter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown front matter format %q", format)
	}

	fm := &frontMatter{}
	for key, value := range raw {
		switch strings.ToLower(key) {
		case "title":
			fm.Title = scalarString(value)
		case "description", "summary":
			if fm.Description == "" {
				fm.Description = scalarString(value)
			}
		case "tags":
			fm.Tags = parseTags(value)
		case "order", "weight":
			if n, ok := parseOrder(value); ok && fm.Order == nil {
				fm.Order = &n
			}
		case "difficulty":
			fm.Difficulty = scalarString(value)
		case "last_modified", "lastmodified", "updated":
			if t, ok := parseTime(value); ok {
				fm.LastModified = t
			}
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string]any)
			}
			fm.Extra[key] = value
		}
	}
	return fm, nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any, map[string]any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// parseTags accepts a list or a comma separated string.
// The result is trimmed, deduplicated and sorted.
func parseTags(v any) []string {
	var items []string
	switch val := v.(type) {
	case string:
		items = strings.Split(val, ",")
	case []any:
		for _, item := range val {
			items = append(items, scalarString(item))
		}
	case []string:
		items = val
	}

	seen := make(map[string]bool, len(items))
	tags := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		tags = append(tags, item)
	}
	if len(tags) == 0 {
		return nil
	}
	sort.Strings(tags)
	return tags
}

func parseOrder(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		return int(val), true
	case float64:
		if val == math.Trunc(val) {
			return int(val), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func parseTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case toml.LocalDate:
		return val.AsTime(time.UTC), true
	case toml.LocalDateTime:
		return val.AsTime(time.UTC), true
	case string:
		val = strings.TrimSpace(val)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
