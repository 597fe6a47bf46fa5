package repository

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPuppyReserveOnlyOnce(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPuppyRepository(db)
	puppy := createTestPuppy(t, db, "Max")

	ok, err := repo.Reserve(puppy.ID)
	if err != nil || !ok {
		t.Fatalf("first reserve should succeed: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Reserve(puppy.ID)
	if err != nil {
		t.Fatalf("second reserve failed: %v", err)
	}
	if ok {
		t.Fatalf("second reserve should report unavailable")
	}

	got, err := repo.GetByID(puppy.ID)
	if err != nil || got == nil {
		t.Fatalf("reload puppy failed: %v", err)
	}
	if got.IsAvailable {
		t.Fatalf("puppy should be unavailable after reserve")
	}
}

func TestPuppyReserveConcurrent(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPuppyRepository(db)
	puppy := createTestPuppy(t, db, "Bella")

	const workers = 16
	var wins int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			ok, err := repo.Reserve(puppy.ID)
			if err != nil {
				t.Errorf("reserve failed: %v", err)
				return
			}
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("exactly one reserve should win, got %d", wins)
	}
}

func TestPuppyReserveMissing(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPuppyRepository(db)
	ok, err := repo.Reserve(404)
	if err != nil || ok {
		t.Fatalf("missing puppy should not reserve: ok=%v err=%v", ok, err)
	}
}

func TestPuppyListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPuppyRepository(db)
	a := createTestPuppy(t, db, "A")
	createTestPuppy(t, db, "B")
	if _, err := repo.Reserve(a.ID); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if _, err := repo.SetBestSeller(a.ID, true); err != nil {
		t.Fatalf("set best seller failed: %v", err)
	}

	available, total, err := repo.List(PuppyListFilter{OnlyAvailable: true})
	if err != nil || total != 1 || available[0].Name != "B" {
		t.Fatalf("unexpected available list: %+v total=%d err=%v", available, total, err)
	}
	best, total, err := repo.List(PuppyListFilter{OnlyBestSeller: true})
	if err != nil || total != 1 || best[0].ID != a.ID {
		t.Fatalf("unexpected best seller list: %+v total=%d err=%v", best, total, err)
	}
}
