package repositories

import (
	"testing"

	"cms/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func promotionTestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "site_id", "title", "banner", "link_url", "priority", "status",
		"starts_at", "ends_at", "created_at", "updated_at",
	})
}

func TestPromotionListActiveWindowPredicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	scope := query.Scope{SiteID: 4, Deleted: "DELETED"}
	now := "2025-05-01 12:00:00"

	// open-window rows (NULL bounds) must match too, so each bound only
	// applies when its column is set
	mock.ExpectQuery(`FROM promotions WHERE site_id = \? AND status <> \? AND status = \? AND \(starts_at IS NULL OR starts_at<=\?\) AND \(ends_at IS NULL OR ends_at>=\?\) ORDER BY priority DESC, id DESC LIMIT 50`).
		WithArgs(int64(4), "DELETED", "ACTIVE", now, now).
		WillReturnRows(promotionTestRows().
			AddRow(2, 4, "Diskon Mei", "mei.png", "", 9, "ACTIVE", "2025-05-01 00:00:00", "2025-05-31 23:59:59", "2025-04-20 10:00:00", "2025-04-20 10:00:00").
			AddRow(1, 4, "Banner Tetap", "", "", 1, "ACTIVE", "", "", "2025-01-01 00:00:00", "2025-01-01 00:00:00"))

	repo := PromotionRepository{DB: db}
	list, err := repo.ListActive(scope, now)
	if err != nil {
		t.Fatalf("list active error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("rows = %d, want 2", len(list))
	}
	if list[0].Title != "Diskon Mei" || list[0].Priority != 9 {
		t.Fatalf("unexpected first row: %+v", list[0])
	}
	if list[1].Title != "Banner Tetap" || list[1].StartsAt != "" || list[1].EndsAt != "" {
		t.Fatalf("open-window row should come back: %+v", list[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
