package notion

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// renderBlocks converts a list of Notion block objects (the API's
// block-children payload) into markdown. Unsupported block types degrade
// to their plain-text content rather than being dropped.
func renderBlocks(blocks []gjson.Result) string {
	var b strings.Builder
	numbered := 0

	for _, block := range blocks {
		blockType := block.Get("type").String()
		text := richText(block.Get(blockType + ".rich_text"))

		if blockType != "numbered_list_item" {
			numbered = 0
		}

		switch blockType {
		case "heading_1":
			fmt.Fprintf(&b, "# %s\n\n", text)
		case "heading_2":
			fmt.Fprintf(&b, "## %s\n\n", text)
		case "heading_3":
			fmt.Fprintf(&b, "### %s\n\n", text)
		case "paragraph":
			if text != "" {
				fmt.Fprintf(&b, "%s\n\n", text)
			}
		case "bulleted_list_item":
			fmt.Fprintf(&b, "- %s\n", text)
		case "numbered_list_item":
			numbered++
			fmt.Fprintf(&b, "%d. %s\n", numbered, text)
		case "to_do":
			marker := " "
			if block.Get("to_do.checked").Bool() {
				marker = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", marker, text)
		case "quote":
			fmt.Fprintf(&b, "> %s\n\n", text)
		case "code":
			lang := block.Get("code.language").String()
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", lang, text)
		case "divider":
			b.WriteString("---\n\n")
		case "table_row":
			cells := block.Get("table_row.cells").Array()
			row := make([]string, 0, len(cells))
			for _, cell := range cells {
				row = append(row, richText(cell))
			}
			fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
		default:
			if text != "" {
				fmt.Fprintf(&b, "%s\n\n", text)
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// renderDatabaseRows flattens database query results into a markdown table:
// one header row from the first entry's property names, then one row per
// entry.
func renderDatabaseRows(rows []gjson.Result) string {
	if len(rows) == 0 {
		return ""
	}

	var names []string
	rows[0].Get("properties").ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})

	var b strings.Builder
	fmt.Fprintf(&b, "| %s |\n", strings.Join(names, " | "))
	separators := make([]string, len(names))
	for i := range separators {
		separators[i] = "---"
	}
	fmt.Fprintf(&b, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range rows {
		// Property names can contain gjson path metacharacters, so they
		// are collected by iteration instead of path lookup.
		props := make(map[string]gjson.Result, len(names))
		row.Get("properties").ForEach(func(key, value gjson.Result) bool {
			props[key.String()] = value
			return true
		})
		cells := make([]string, 0, len(names))
		for _, name := range names {
			cells = append(cells, propertyText(props[name]))
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}

	return strings.TrimSpace(b.String())
}

// propertyText extracts a display string from one database property value.
func propertyText(prop gjson.Result) string {
	switch prop.Get("type").String() {
	case "title":
		return richText(prop.Get("title"))
	case "rich_text":
		return richText(prop.Get("rich_text"))
	case "number":
		return prop.Get("number").String()
	case "select":
		return prop.Get("select.name").String()
	case "multi_select":
		var names []string
		for _, v := range prop.Get("multi_select").Array() {
			names = append(names, v.Get("name").String())
		}
		return strings.Join(names, ", ")
	case "date":
		return prop.Get("date.start").String()
	case "checkbox":
		if prop.Get("checkbox").Bool() {
			return "yes"
		}
		return "no"
	case "url":
		return prop.Get("url").String()
	case "email":
		return prop.Get("email").String()
	case "status":
		return prop.Get("status.name").String()
	default:
		return ""
	}
}

// richText concatenates the plain_text fields of a rich-text array.
func richText(value gjson.Result) string {
	var parts []string
	for _, v := range value.Array() {
		parts = append(parts, v.Get("plain_text").String())
	}
	return strings.Join(parts, "")
}
