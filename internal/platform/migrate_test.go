package platform

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The schema ships inside the binary, so a bad filename or an empty file
// only surfaces at daemon startup. Walk the embedded source the same way
// the migrator does and fail fast here instead.
func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("open migration source: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("first migration: %v", err)
	}
	if first != 1 {
		t.Errorf("first migration version = %d, want 1", first)
	}

	for v := first; ; {
		up, name, err := src.ReadUp(v)
		if err != nil {
			t.Fatalf("read up migration %d: %v", v, err)
		}
		body, err := io.ReadAll(up)
		up.Close()
		if err != nil {
			t.Fatalf("read up migration %d (%s): %v", v, name, err)
		}
		if len(body) == 0 {
			t.Errorf("up migration %d (%s) is empty", v, name)
		}

		down, _, err := src.ReadDown(v)
		if err != nil {
			t.Errorf("migration %d has no down counterpart: %v", v, err)
		} else {
			down.Close()
		}

		next, err := src.Next(v)
		if err != nil {
			break
		}
		v = next
	}
}
