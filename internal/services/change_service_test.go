package services

import (
	"context"
	"testing"
	"time"

	"todoey/internal/models"
	"todoey/internal/testutil"
)

func TestRevision(t *testing.T) {
	ctx := context.Background()

	t.Run("every_mutation_advances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewStore(db)

		rev0, err := store.Revision(ctx)
		testutil.AssertNoError(t, err)

		cat, err := store.CreateCategory(ctx, "Work", "")
		testutil.AssertNoError(t, err)
		item, err := store.CreateItem(ctx, cat.ID, "Email boss")
		testutil.AssertNoError(t, err)
		_, err = store.ToggleDone(ctx, item.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, store.DeleteItem(ctx, item.ID))
		testutil.AssertNoError(t, store.DeleteCategory(ctx, cat.ID))

		rev, err := store.Revision(ctx)
		testutil.AssertNoError(t, err)
		if rev != rev0+5 {
			t.Errorf("expected revision %d, got %d", rev0+5, rev)
		}
	})

	t.Run("failed_precondition_records_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := NewStore(db)

		_, err := store.CreateItem(ctx, "missing", "Orphan")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		rev, err := store.Revision(ctx)
		testutil.AssertNoError(t, err)
		if rev != 0 {
			t.Errorf("expected revision 0, got %d", rev)
		}
	})
}

func TestIsStale(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewStore(db)

	cat, err := store.CreateCategory(ctx, "Work", "")
	testutil.AssertNoError(t, err)

	held, err := store.ListItems(ctx, cat.ID, "")
	testutil.AssertNoError(t, err)

	stale, err := store.IsStale(ctx, held.Revision)
	testutil.AssertNoError(t, err)
	if stale {
		t.Fatal("expected fresh result to be current")
	}

	_, err = store.CreateItem(ctx, cat.ID, "New")
	testutil.AssertNoError(t, err)

	stale, err = store.IsStale(ctx, held.Revision)
	testutil.AssertNoError(t, err)
	if !stale {
		t.Fatal("expected result to be stale after a mutation")
	}

	refetched, err := store.ListItems(ctx, cat.ID, "")
	testutil.AssertNoError(t, err)
	testutil.AssertTitles(t, refetched.Data, "New")
}

func TestChangesSince(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewStore(db)

	cat, err := store.CreateCategory(ctx, "Work", "")
	testutil.AssertNoError(t, err)
	item, err := store.CreateItem(ctx, cat.ID, "Email boss")
	testutil.AssertNoError(t, err)
	_, err = store.ToggleDone(ctx, item.ID)
	testutil.AssertNoError(t, err)

	t.Run("all", func(t *testing.T) {
		changes, err := store.ChangesSince(ctx, 0, 0)
		testutil.AssertNoError(t, err)

		if len(changes) != 3 {
			t.Fatalf("expected 3 changes, got %d", len(changes))
		}
		want := []struct {
			action       models.ChangeAction
			resourceType string
			resourceID   string
		}{
			{models.ChangeActionCreate, models.ResourceCategory, cat.ID},
			{models.ChangeActionCreate, models.ResourceItem, item.ID},
			{models.ChangeActionToggle, models.ResourceItem, item.ID},
		}
		for i, w := range want {
			c := changes[i]
			if c.Action != w.action || c.ResourceType != w.resourceType || c.ResourceID != w.resourceID {
				t.Errorf("change %d: expected %v, got %+v", i, w, c)
			}
		}
	})

	t.Run("since_and_limit", func(t *testing.T) {
		changes, err := store.ChangesSince(ctx, 1, 1)
		testutil.AssertNoError(t, err)

		if len(changes) != 1 || changes[0].Seq != 2 {
			t.Fatalf("expected only seq 2, got %+v", changes)
		}
	})

	t.Run("none_newer", func(t *testing.T) {
		changes, err := store.ChangesSince(ctx, 3, 10)
		testutil.AssertNoError(t, err)

		if changes == nil || len(changes) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", changes)
		}
	})
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := NewStore(db)

	cat, err := store.CreateCategory(ctx, "Work", "")
	testutil.AssertNoError(t, err)
	for _, title := range []string{"Plan sprint", "Email boss"} {
		_, err := store.CreateItem(ctx, cat.ID, title)
		testutil.AssertNoError(t, err)
	}

	t.Run("nothing_older_than_cutoff", func(t *testing.T) {
		removed, err := store.Prune(ctx, time.Now().Add(-time.Hour))
		testutil.AssertNoError(t, err)
		if removed != 0 {
			t.Errorf("expected nothing pruned, got %d", removed)
		}
	})

	t.Run("keeps_the_latest_entry", func(t *testing.T) {
		removed, err := store.Prune(ctx, time.Now().Add(time.Hour))
		testutil.AssertNoError(t, err)
		if removed != 2 {
			t.Errorf("expected 2 pruned, got %d", removed)
		}

		rev, err := store.Revision(ctx)
		testutil.AssertNoError(t, err)
		if rev != 3 {
			t.Errorf("expected revision to stay 3, got %d", rev)
		}

		changes, err := store.ChangesSince(ctx, 0, 0)
		testutil.AssertNoError(t, err)
		if len(changes) != 1 || changes[0].Seq != 3 {
			t.Errorf("expected only seq 3 left, got %+v", changes)
		}
	})

	t.Run("next_write_continues_the_sequence", func(t *testing.T) {
		_, err := store.CreateItem(ctx, cat.ID, "Book room")
		testutil.AssertNoError(t, err)

		rev, err := store.Revision(ctx)
		testutil.AssertNoError(t, err)
		if rev != 4 {
			t.Errorf("expected revision 4, got %d", rev)
		}
	})
}
