// ABOUTME: Tests for export and import functionality
// ABOUTME: Covers the YAML backup format and restore into any backend

package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/shoplist/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func TestExportToYAML(t *testing.T) {
	db := testDB(t)
	mustInsert(t, db, "Arroz 5kg", 1, "27.90")

	data, err := ExportToYAML(context.Background(), db)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	yamlStr := string(data)

	if !strings.Contains(yamlStr, "version: \"1.0\"") {
		t.Error("missing version header")
	}
	if !strings.Contains(yamlStr, "tool: shoplist") {
		t.Error("missing tool header")
	}
	if !strings.Contains(yamlStr, "exported_at:") {
		t.Error("missing exported_at header")
	}

	if !strings.Contains(yamlStr, "description: Arroz 5kg") {
		t.Error("missing item description")
	}
	if !strings.Contains(yamlStr, "unit_price: \"27.9\"") {
		t.Errorf("unit price should be a quoted exact decimal:\n%s", yamlStr)
	}

	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if _, err := uuid.Parse(backup.ID); err != nil {
		t.Errorf("backup id %q is not a uuid: %v", backup.ID, err)
	}
}

func TestImportFromYAML(t *testing.T) {
	db := testDB(t)

	data := `version: "1.0"
exported_at: "2026-01-31T12:00:00Z"
tool: shoplist
id: "11111111-1111-1111-1111-111111111111"

items:
  - id: 7
    description: "Feijão"
    quantity: 2
    unit_price: "8.50"
    registered_at: "2026-01-30T10:00:00Z"
  - id: 3
    description: "Arroz 5kg"
    quantity: 1
    unit_price: "27.90"
    registered_at: "2026-01-29T10:00:00Z"
`

	n, err := ImportFromYAML(context.Background(), db, []byte(data))
	if err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d items, want 2", n)
	}

	// Fresh IDs are assigned in file order.
	feijao, err := db.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to get first imported item: %v", err)
	}
	if feijao.Description != "Feijão" || feijao.Quantity != 2 {
		t.Errorf("unexpected first item %+v", feijao)
	}
	if !feijao.UnitPrice.Equal(decimal.RequireFromString("8.5")) {
		t.Errorf("unit price = %s, want 8.5", feijao.UnitPrice)
	}
	if feijao.RegisteredAt.UTC().Format("2006-01-02") != "2026-01-30" {
		t.Errorf("registered at = %v", feijao.RegisteredAt)
	}
}

func TestExportToYAML_KeepsRegisteredOffset(t *testing.T) {
	ctx := context.Background()
	brt := time.FixedZone("BRT", -3*3600)
	src := testBadger(t)
	item := newTestItem("Pão", 1, "8")
	item.RegisteredAt = time.Date(2026, 1, 31, 22, 0, 0, 0, brt)
	if _, err := src.Insert(ctx, item); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	data, err := ExportToYAML(ctx, src)
	if err != nil {
		t.Fatalf("failed to export: %v", err)
	}
	if !strings.Contains(string(data), "2026-01-31T22:00:00-03:00") {
		t.Errorf("expected the registered offset in the backup:\n%s", data)
	}

	dst := testBadger(t)
	if _, err := ImportFromYAML(ctx, dst, data); err != nil {
		t.Fatalf("failed to import: %v", err)
	}
	got, err := dst.Get(ctx, 1)
	if err != nil {
		t.Fatalf("failed to get imported item: %v", err)
	}
	if !got.RegisteredAt.Equal(item.RegisteredAt) {
		t.Errorf("registered at = %v, want %v", got.RegisteredAt, item.RegisteredAt)
	}
	if y, m, d := got.RegisteredAt.In(brt).Date(); y != 2026 || m != time.January || d != 31 {
		t.Errorf("calendar date moved to %d-%02d-%02d", y, m, d)
	}
}

func TestImportFromYAML_WrongVersion(t *testing.T) {
	db := testDB(t)

	data := `version: "2.0"
tool: shoplist
items: []
`
	if _, err := ImportFromYAML(context.Background(), db, []byte(data)); err == nil {
		t.Error("expected error for wrong version")
	}
}

func TestImportFromYAML_WrongTool(t *testing.T) {
	db := testDB(t)

	data := `version: "1.0"
tool: position
items: []
`
	_, err := ImportFromYAML(context.Background(), db, []byte(data))
	if err == nil || !strings.Contains(err.Error(), "wrong tool") {
		t.Errorf("expected wrong tool error, got %v", err)
	}
}

func TestImportFromYAML_InvalidRowsWriteNothing(t *testing.T) {
	db := testDB(t)

	data := `version: "1.0"
tool: shoplist
items:
  - description: "Arroz"
    quantity: 1
    unit_price: "20"
  - description: "   "
    quantity: 1
    unit_price: "1"
`
	_, err := ImportFromYAML(context.Background(), db, []byte(data))
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	items, err := db.ListAll(context.Background())
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected nothing imported, got %d items", len(items))
	}
}

func TestImportFromYAML_BadPrice(t *testing.T) {
	db := testDB(t)

	data := `version: "1.0"
tool: shoplist
items:
  - description: "Arroz"
    quantity: 1
    unit_price: "vinte"
`
	if _, err := ImportFromYAML(context.Background(), db, []byte(data)); err == nil {
		t.Error("expected error for unparseable price")
	}
}

func TestImportFromYAML_InvalidYAML(t *testing.T) {
	db := testDB(t)

	if _, err := ImportFromYAML(context.Background(), db, []byte("version: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, src Repository) {
		mustInsert(t, src, "Arroz 5kg", 1, "27.90")
		mustInsert(t, src, "Parafuso", 1000, "0.0125")

		data, err := ExportToYAML(context.Background(), src)
		if err != nil {
			t.Fatalf("failed to export: %v", err)
		}

		dst := testBadger(t)
		if _, err := ImportFromYAML(context.Background(), dst, data); err != nil {
			t.Fatalf("failed to import: %v", err)
		}

		before, _ := src.ListAll(context.Background())
		after, err := dst.ListAll(context.Background())
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(before) != len(after) {
			t.Fatalf("got %d items, want %d", len(after), len(before))
		}
		for i := range before {
			if before[i].Description != after[i].Description ||
				before[i].Quantity != after[i].Quantity ||
				!before[i].UnitPrice.Equal(after[i].UnitPrice) ||
				!before[i].RegisteredAt.Equal(after[i].RegisteredAt) {
				t.Errorf("item %d differs: %+v vs %+v", i, before[i], after[i])
			}
		}
	})
}
