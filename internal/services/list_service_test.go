package services

import (
	"testing"

	"github.com/lunavic/tidylist-be/internal/models"
)

func TestCreateListRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	_, err := svc.CreateList(userID, "", "desc", nil)
	assertErrType(t, err, "MISSING_PARAMETERS")

	if lists := loadLists(t, db, userID); len(lists) != 0 {
		t.Fatalf("lists = %d, want 0", len(lists))
	}
}

func TestCreateListAssignsItemIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Groceries", "weekly run", []models.TodoItem{
		{Title: "Milk"},
		{Title: "Eggs"},
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.ID == "" {
		t.Fatal("expected list id")
	}
	for _, todo := range list.Todos {
		if todo.ID == "" {
			t.Fatalf("todo %q has no id", todo.Title)
		}
	}

	lists := loadLists(t, db, userID)
	if len(lists) != 1 || lists[0].ID != list.ID {
		t.Fatalf("persisted lists = %+v, want the created list", lists)
	}
	if len(lists[0].Todos) != 2 {
		t.Fatalf("persisted todos = %d, want 2", len(lists[0].Todos))
	}
}

func TestStarToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Groceries", "", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	found, err := svc.SetStar(userID, list.ID, true)
	if err != nil || !found {
		t.Fatalf("star: found=%v err=%v", found, err)
	}
	if lists := loadLists(t, db, userID); !lists[0].Star {
		t.Fatal("expected starred list")
	}

	found, err = svc.SetStar(userID, list.ID, false)
	if err != nil || !found {
		t.Fatalf("unstar: found=%v err=%v", found, err)
	}
	if lists := loadLists(t, db, userID); lists[0].Star {
		t.Fatal("expected list back to unstarred")
	}
}

func TestArchiveToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Old projects", "", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if _, err := svc.SetArchive(userID, list.ID, true); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if lists := loadLists(t, db, userID); !lists[0].Archive {
		t.Fatal("expected archived list")
	}
	if _, err := svc.SetArchive(userID, list.ID, false); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if lists := loadLists(t, db, userID); lists[0].Archive {
		t.Fatal("expected list back to unarchived")
	}
}

func TestCompleteToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Groceries", "", []models.TodoItem{{Title: "Milk"}})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	taskID := list.Todos[0].ID

	found, err := svc.SetCompleted(userID, list.ID, taskID, true)
	if err != nil || !found {
		t.Fatalf("complete: found=%v err=%v", found, err)
	}
	if lists := loadLists(t, db, userID); !lists[0].Todos[0].Completed {
		t.Fatal("expected completed task")
	}

	found, err = svc.SetCompleted(userID, list.ID, taskID, false)
	if err != nil || !found {
		t.Fatalf("uncomplete: found=%v err=%v", found, err)
	}
	if lists := loadLists(t, db, userID); lists[0].Todos[0].Completed {
		t.Fatal("expected task back to uncompleted")
	}
}

func TestUpdateListReplacesTodos(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Groceries", "weekly run", []models.TodoItem{
		{Title: "Milk"},
		{Title: "Eggs"},
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	found, err := svc.UpdateList(userID, list.ID, "Errands", "updated", []models.TodoItem{{Title: "Post office"}})
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}

	lists := loadLists(t, db, userID)
	if lists[0].Title != "Errands" || lists[0].Description != "updated" {
		t.Fatalf("list = %q/%q", lists[0].Title, lists[0].Description)
	}
	// Full replace, not a merge.
	if len(lists[0].Todos) != 1 || lists[0].Todos[0].Title != "Post office" {
		t.Fatalf("todos = %+v, want single replacement", lists[0].Todos)
	}

	_, err = svc.UpdateList(userID, "", "Errands", "", nil)
	assertErrType(t, err, "MISSING_PARAMETERS")
	_, err = svc.UpdateList(userID, list.ID, "", "", nil)
	assertErrType(t, err, "MISSING_PARAMETERS")
}

func TestDeleteListLeavesSiblings(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	var ids []string
	for _, title := range []string{"First", "Second", "Third"} {
		list, err := svc.CreateList(userID, title, "", nil)
		if err != nil {
			t.Fatalf("create list %q: %v", title, err)
		}
		ids = append(ids, list.ID)
	}

	found, err := svc.DeleteList(userID, ids[1])
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	lists := loadLists(t, db, userID)
	if len(lists) != 2 {
		t.Fatalf("lists = %d, want 2", len(lists))
	}
	if lists[0].ID != ids[0] || lists[1].ID != ids[2] {
		t.Fatalf("sibling order changed: %+v", lists)
	}
	if lists[0].Title != "First" || lists[1].Title != "Third" {
		t.Fatalf("sibling content changed: %+v", lists)
	}
}

func TestUnmatchedIDIsSilentNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	userID := insertTestUser(t, db)

	list, err := svc.CreateList(userID, "Groceries", "", []models.TodoItem{{Title: "Milk"}})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	before := loadLists(t, db, userID)

	checks := []struct {
		name string
		call func() (bool, error)
	}{
		{"star", func() (bool, error) { return svc.SetStar(userID, "nonexistent", true) }},
		{"archive", func() (bool, error) { return svc.SetArchive(userID, "nonexistent", true) }},
		{"update", func() (bool, error) { return svc.UpdateList(userID, "nonexistent", "X", "", nil) }},
		{"delete", func() (bool, error) { return svc.DeleteList(userID, "nonexistent") }},
		{"complete wrong list", func() (bool, error) { return svc.SetCompleted(userID, "nonexistent", list.Todos[0].ID, true) }},
		{"complete wrong task", func() (bool, error) { return svc.SetCompleted(userID, list.ID, "nonexistent", true) }},
	}
	for _, check := range checks {
		found, err := check.call()
		if err != nil {
			t.Fatalf("%s: %v", check.name, err)
		}
		if found {
			t.Fatalf("%s: matched a nonexistent id", check.name)
		}
	}

	after := loadLists(t, db, userID)
	if len(after) != len(before) || after[0].Star || after[0].Archive || after[0].Todos[0].Completed {
		t.Fatalf("state changed by no-op mutations: %+v", after)
	}
}

func TestListsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	owner := insertTestUser(t, db)
	other := insertTestUser(t, db)

	list, err := svc.CreateList(owner, "Private", "", nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	// Another user's mutation with a valid id from the owner's tree
	// cannot match anything.
	found, err := svc.SetStar(other, list.ID, true)
	if err != nil {
		t.Fatalf("star as other user: %v", err)
	}
	if found {
		t.Fatal("foreign list id matched")
	}
	if lists := loadLists(t, db, owner); lists[0].Star {
		t.Fatal("owner's list mutated by another user")
	}
}
