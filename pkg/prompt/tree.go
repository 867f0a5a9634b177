// File: pkg/prompt/tree.go
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// treeNode is a directory or file in the rendered tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

// RenderTree renders slash-separated relative paths as an ASCII tree rooted
// at rootName. Directories come first, then files, each group sorted
// case-insensitively.
func RenderTree(rootName string, relPaths []string) string {
	root := &treeNode{name: rootName, children: map[string]*treeNode{}}
	for _, rel := range relPaths {
		node := root
		parts := strings.Split(rel, "/")
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part}
				node.children[part] = child
			}
			if i < len(parts)-1 && child.children == nil {
				child.children = map[string]*treeNode{}
			}
			node = child
		}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s/", root.name))
	lines = appendTreeLines(lines, root, "")
	return strings.Join(lines, "\n") + "\n"
}

// appendTreeLines appends the lines for the children of node with the given prefix.
func appendTreeLines(lines []string, node *treeNode, prefix string) []string {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir() {
			lines = append(lines, fmt.Sprintf("%s%s%s/", prefix, connector, entry.name))
			lines = appendTreeLines(lines, entry, prefix+extension)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s%s", prefix, connector, entry.name))
	}
	return lines
}
