// ABOUTME: Markdown export of the shopping list
// ABOUTME: Renders a dated table with line totals and a grand total

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/models"
)

// ExportToMarkdown renders every item as a markdown table.
func ExportToMarkdown(ctx context.Context, repo Repository, f *locale.Format, now time.Time) ([]byte, error) {
	items, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return RenderMarkdown(items, f, now), nil
}

// RenderMarkdown formats items as markdown. Output depends only on its
// arguments; the header date is read in the location of now.
func RenderMarkdown(items []models.Item, f *locale.Format, now time.Time) []byte {
	if f == nil {
		f = locale.Default()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Shopping List - %s\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format(time.RFC3339))

	if len(items) == 0 {
		sb.WriteString("No items on the list.\n")
		return []byte(sb.String())
	}

	sb.WriteString("| Description | Qty | Unit price | Line total |\n")
	sb.WriteString("|-------------|----:|-----------:|-----------:|\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n",
			escapeCell(item.Description),
			item.Quantity,
			f.FormatMoney(item.UnitPrice),
			f.FormatMoney(item.LineTotal()),
		)
	}

	noun := "items"
	if len(items) == 1 {
		noun = "item"
	}
	fmt.Fprintf(&sb, "\n**Total: %s** (%d %s)\n", f.FormatMoney(models.Total(items)), len(items), noun)

	return []byte(sb.String())
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
