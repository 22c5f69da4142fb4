package session

import (
	"errors"
	"sort"
	"testing"
)

func TestFilePersistence_RoundTrip(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	sess := createStartedSession(t, "a", "b")
	ticket, _ := sess.StageRoll("a", 5)
	if _, _, err := sess.CommitRoll(ticket.ID); err != nil {
		t.Fatalf("CommitRoll failed: %v", err)
	}
	sess.SetBoardMessageRef("msg-42")

	if err := persistence.Save(sess.Persisted()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	record, err := persistence.Load("room-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	restored, err := FromPersisted(record)
	if err != nil {
		t.Fatalf("FromPersisted failed: %v", err)
	}

	want := sess.Status()
	got := restored.Status()
	if got.RoomID != want.RoomID || got.BoardID != want.BoardID || got.Started != want.Started {
		t.Errorf("Restored session mismatch: got %+v want %+v", got, want)
	}
	if len(got.Players) != 2 || got.Players[0].Position != 5 {
		t.Errorf("Restored roster wrong: %+v", got.Players)
	}
	if got.Turn == nil || got.Turn.ID != "b" {
		t.Errorf("Restored turn-holder wrong: %+v", got.Turn)
	}
	if !got.LastMove.Equal(want.LastMove) {
		t.Errorf("Restored lastMove %s, want %s", got.LastMove, want.LastMove)
	}
	if ref, _ := restored.BoardMessageRef(); ref != "msg-42" {
		t.Errorf("Restored board message ref %q, want msg-42", ref)
	}

	// The restored board still carries its hazards.
	if restored.Board().HazardTable()[16] != 6 {
		t.Error("Restored board lost hazard 16 -> 6")
	}
}

func TestFilePersistence_LoadMissing(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	if _, err := persistence.Load("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if err := persistence.Delete("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on delete, got %v", err)
	}
	if persistence.Exists("missing") {
		t.Error("Exists reported a missing room")
	}
}

func TestFilePersistence_ListAll(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	rooms := []string{"room-1", "room-2", "group/42"}
	for _, room := range rooms {
		sess, err := NewSession(room, "test", createTestBoard(), "admin", Settings{})
		if err != nil {
			t.Fatalf("NewSession(%s) failed: %v", room, err)
		}
		if err := persistence.Save(sess.Persisted()); err != nil {
			t.Fatalf("Save(%s) failed: %v", room, err)
		}
	}

	listed, err := persistence.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	sort.Strings(listed)
	sort.Strings(rooms)
	if len(listed) != len(rooms) {
		t.Fatalf("Expected %d rooms, got %d: %v", len(rooms), len(listed), listed)
	}
	for i := range rooms {
		if listed[i] != rooms[i] {
			t.Errorf("Room %d: got %q, want %q", i, listed[i], rooms[i])
		}
	}
}

func TestFilePersistence_RoomIDEncoding(t *testing.T) {
	persistence, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	// Room ids with path separators must not escape the sessions directory.
	sess, err := NewSession("../escape", "test", createTestBoard(), "admin", Settings{})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := persistence.Save(sess.Persisted()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !persistence.Exists("../escape") {
		t.Error("Encoded room not found")
	}
	record, err := persistence.Load("../escape")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if record.RoomID != "../escape" {
		t.Errorf("Round-tripped room id %q", record.RoomID)
	}
}
