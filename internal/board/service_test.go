package board

import (
	"errors"
	"testing"

	"github.com/pillboard/pillboard/internal/auth"
	"github.com/pillboard/pillboard/internal/engine"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hub := NewHub(engine.DefaultRules())
	t.Cleanup(hub.Stop)
	return NewService(auth.NewService("test-secret"), hub)
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Create("standup", "", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.Board.Name != "standup" || result.Board.Protected {
		t.Errorf("board = %+v", result.Board)
	}
	if result.Token == "" {
		t.Errorf("creator got no token")
	}

	got, err := svc.Get(result.Board.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != result.Board.ID {
		t.Errorf("Get returned %+v", got)
	}

	if _, err := svc.Get("board_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestServiceListOrdered(t *testing.T) {
	svc := newTestService(t)
	first, _ := svc.Create("one", "", "")
	second, _ := svc.Create("two", "", "")

	boards := svc.List()
	if len(boards) != 2 {
		t.Fatalf("List returned %d boards", len(boards))
	}
	if boards[0].ID != first.Board.ID || boards[1].ID != second.Board.ID {
		t.Errorf("List not in creation order: %+v", boards)
	}
}

func TestServiceJoinProtectedBoard(t *testing.T) {
	svc := newTestService(t)
	result, err := svc.Create("secret board", "open sesame", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !result.Board.Protected {
		t.Fatalf("board with passphrase not marked protected")
	}

	if _, err := svc.Join(result.Board.ID, "wrong", "Bob"); !errors.Is(err, auth.ErrInvalidPassphrase) {
		t.Errorf("Join with wrong passphrase = %v", err)
	}
	token, err := svc.Join(result.Board.ID, "open sesame", "Bob")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if token == "" {
		t.Fatalf("Join returned empty token")
	}
}

func TestServiceDeleteRequiresOwner(t *testing.T) {
	svc := newTestService(t)
	result, _ := svc.Create("doomed", "", "Ada")
	boardID := result.Board.ID

	editor := &auth.Grant{BoardID: boardID, Role: auth.RoleEditor}
	if err := svc.Delete(boardID, editor); !errors.Is(err, ErrForbidden) {
		t.Errorf("editor delete = %v, want ErrForbidden", err)
	}

	otherOwner := &auth.Grant{BoardID: "board_other", Role: auth.RoleOwner}
	if err := svc.Delete(boardID, otherOwner); !errors.Is(err, ErrForbidden) {
		t.Errorf("cross-board delete = %v, want ErrForbidden", err)
	}

	owner := &auth.Grant{BoardID: boardID, Role: auth.RoleOwner}
	if err := svc.Delete(boardID, owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(boardID); !errors.Is(err, ErrNotFound) {
		t.Errorf("board still present after delete")
	}
}

func TestServiceShapesEmptyBoard(t *testing.T) {
	svc := newTestService(t)
	result, _ := svc.Create("empty", "", "")

	shapes, err := svc.Shapes(result.Board.ID)
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if len(shapes) != 0 {
		t.Errorf("fresh board has %d shapes", len(shapes))
	}
}

func TestServiceAuthorizeConn(t *testing.T) {
	svc := newTestService(t)
	open, _ := svc.Create("open", "", "")
	locked, _ := svc.Create("locked", "hunter2", "Ada")

	// Open board: anonymous is fine.
	name, err := svc.AuthorizeConn(open.Board.ID, "")
	if err != nil || name != "Anonymous" {
		t.Errorf("anonymous open-board conn = (%q, %v)", name, err)
	}

	// Protected board: token required.
	if _, err := svc.AuthorizeConn(locked.Board.ID, ""); !errors.Is(err, ErrForbidden) {
		t.Errorf("tokenless protected conn = %v, want ErrForbidden", err)
	}
	token, _ := svc.Join(locked.Board.ID, "hunter2", "Bob")
	name, err = svc.AuthorizeConn(locked.Board.ID, token)
	if err != nil || name != "Bob" {
		t.Errorf("tokened conn = (%q, %v)", name, err)
	}

	// Token for one board does not open another.
	if _, err := svc.AuthorizeConn(open.Board.ID, "garbage"); !errors.Is(err, ErrForbidden) {
		t.Errorf("garbage token on open board = %v, want ErrForbidden", err)
	}

	if _, err := svc.AuthorizeConn("board_missing", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing board conn = %v, want ErrNotFound", err)
	}
}
