package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the documentation index in sync with the topic files:
// every topic listed in readme.md must load, and every .md file (except the
// readme itself) must be listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	if len(listed) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("topic %q is listed in readme.md but cannot be loaded: %v", topic, err)
		}
	}

	all, err := AllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic file %s.md is not listed in readme.md", topic)
		}
	}
}

// TestTopicStructure parses each topic as markdown and requires it to open
// with a level-1 heading named after the topic.
func TestTopicStructure(t *testing.T) {
	all, err := AllTopics()
	if err != nil {
		t.Fatal(err)
	}
	md := goldmark.New()
	for _, topic := range all {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatal(err)
		}
		source := []byte(content)
		doc := md.Parser().Parse(text.NewReader(source))

		first := doc.FirstChild()
		heading, ok := first.(*ast.Heading)
		if !ok || heading.Level != 1 {
			t.Errorf("topic %q does not start with a level-1 heading", topic)
			continue
		}
		var title strings.Builder
		for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.Text); ok {
				title.Write(txt.Segment.Value(source))
			}
		}
		if got := strings.TrimSpace(title.String()); got != topic {
			t.Errorf("topic %q heading is %q, want the topic name", topic, got)
		}
	}
}
