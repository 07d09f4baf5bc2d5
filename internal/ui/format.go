// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for list items and totals

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/models"
	"github.com/shopspring/decimal"
)

// FormatItem formats an item as one list line:
// id, description, quantity x unit price, line total, and age.
func FormatItem(item *models.Item, f *locale.Format) string {
	if item == nil {
		return color.New(color.Faint).Sprint("(invalid item)")
	}
	return fmt.Sprintf("%s %s  %s x %s = %s %s",
		color.New(color.Faint).Sprintf("#%d", item.ID),
		color.GreenString(item.Description),
		locale.FormatQuantity(item.Quantity),
		f.FormatMoney(item.UnitPrice),
		color.CyanString(f.FormatMoney(item.LineTotal())),
		color.New(color.Faint).Sprintf("(%s)", FormatRelativeTime(item.RegisteredAt)),
	)
}

// FormatItemList formats items one per line, or a hint when there are none.
func FormatItemList(items []models.Item, f *locale.Format) string {
	if len(items) == 0 {
		return color.New(color.Faint).Sprint("(no items)")
	}
	lines := make([]string, len(items))
	for i := range items {
		lines[i] = FormatItem(&items[i], f)
	}
	return strings.Join(lines, "\n")
}

// FormatTotal formats the running total line.
func FormatTotal(total decimal.Decimal, count int, f *locale.Format) string {
	noun := "items"
	if count == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%s %s %s",
		color.New(color.Bold).Sprint("Total:"),
		color.New(color.Bold, color.FgYellow).Sprint(f.FormatMoney(total)),
		color.New(color.Faint).Sprintf("(%d %s)", count, noun),
	)
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
