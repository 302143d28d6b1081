package history

import (
	"context"
	"errors"
	"strconv"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeDeleter struct {
	deleted []string
	failOn  map[string]bool
}

func (f *fakeDeleter) Delete(msg tele.Editable) error {
	id, _ := msg.MessageSig()
	if f.failOn[id] {
		return errors.New("message can't be deleted")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestTrackerRecordsAndDrains(t *testing.T) {
	tr := NewTracker()
	tr.Record(10, 1)
	tr.Record(10, 2)
	tr.Record(10, 2) // duplicate
	tr.Record(20, 7)

	if got := tr.Len(10); got != 2 {
		t.Fatalf("Len(10) = %d, want 2", got)
	}

	ids := tr.Drain(10)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("Drain(10) = %v, want [1 2]", ids)
	}
	if got := tr.Len(10); got != 0 {
		t.Fatalf("Len(10) after drain = %d, want 0", got)
	}

	// Other chats are untouched.
	if got := tr.Len(20); got != 1 {
		t.Fatalf("Len(20) = %d, want 1", got)
	}
}

func TestTrackerIgnoresZeroID(t *testing.T) {
	tr := NewTracker()
	tr.Record(10, 0)
	if got := tr.Len(10); got != 0 {
		t.Fatalf("Len(10) = %d, want 0", got)
	}
}

func TestCleanerDeletesTrackedMessages(t *testing.T) {
	tr := NewTracker()
	for id := 1; id <= 4; id++ {
		tr.Record(10, id)
	}

	del := &fakeDeleter{}
	cleaner := NewCleaner(del, tr)

	res := cleaner.Clear(context.Background(), 10)
	if res.Tracked != 4 || res.Deleted != 4 || res.Failed != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(del.deleted) != 4 {
		t.Fatalf("deleted %d messages, want 4", len(del.deleted))
	}
	if tr.Len(10) != 0 {
		t.Fatalf("tracker not drained after clear")
	}
}

func TestCleanerCountsFailures(t *testing.T) {
	tr := NewTracker()
	tr.Record(10, 1)
	tr.Record(10, 2)
	tr.Record(10, 3)

	del := &fakeDeleter{failOn: map[string]bool{strconv.Itoa(2): true}}
	cleaner := NewCleaner(del, tr)

	res := cleaner.Clear(context.Background(), 10)
	if res.Tracked != 3 || res.Deleted != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCleanerStopsOnCancelledContext(t *testing.T) {
	tr := NewTracker()
	tr.Record(10, 1)
	tr.Record(10, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	del := &fakeDeleter{}
	res := NewCleaner(del, tr).Clear(ctx, 10)
	if res.Deleted != 0 || res.Failed != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
