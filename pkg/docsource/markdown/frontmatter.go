package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatter is the optional YAML block at the top of a markdown document,
// delimited by "---" lines. Newsletter documents use it for presentation
// metadata (e.g. Subject) that is not part of the rendered body.
type frontmatter struct {
	Metadata map[string]any
	Body     []byte
}

var delimiter = []byte("---")

// splitFrontmatter separates YAML frontmatter from the markdown body.
// Content without a leading delimiter is returned whole with empty metadata.
func splitFrontmatter(content []byte) (*frontmatter, error) {
	if !bytes.HasPrefix(content, delimiter) {
		return &frontmatter{Metadata: map[string]any{}, Body: content}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidDocument)
	}

	meta := map[string]any{}
	if raw := bytes.TrimSpace(rest[:end]); len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}

	body := rest[end+len(delimiter):]
	body = bytes.TrimLeft(body, "\r\n")

	return &frontmatter{Metadata: meta, Body: body}, nil
}
