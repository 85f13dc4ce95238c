package actor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/models"
)

func TestContextRoundTrip(t *testing.T) {
	a := Actor{UserID: uuid.New(), Username: "jdoe", FullName: "Jane Doe", Role: models.RoleITAdmin}
	ctx := NewContext(context.Background(), a)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext returned ok=false for a context carrying an actor")
	}
	if got != a {
		t.Errorf("FromContext = %+v, want %+v", got, a)
	}
}

func TestFromContextAnonymous(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext returned ok=true for a bare context")
	}
}

func TestContextsDoNotLeak(t *testing.T) {
	base := context.Background()
	first := NewContext(base, Actor{Username: "first"})
	second := NewContext(base, Actor{Username: "second"})

	a, _ := FromContext(first)
	b, _ := FromContext(second)
	if a.Username != "first" || b.Username != "second" {
		t.Errorf("actor leaked across contexts: got %q and %q", a.Username, b.Username)
	}
	if _, ok := FromContext(base); ok {
		t.Error("base context unexpectedly carries an actor")
	}
}

func TestElevated(t *testing.T) {
	if (Actor{Role: models.RoleITAdmin}).Elevated() {
		t.Error("it_admin reported as elevated")
	}
	if !(Actor{Role: models.RoleSuperAdmin}).Elevated() {
		t.Error("super_admin not reported as elevated")
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Actor{Username: "jdoe", FullName: "Jane Doe"}).DisplayName(); got != "Jane Doe" {
		t.Errorf("DisplayName = %q, want %q", got, "Jane Doe")
	}
	if got := (Actor{Username: "jdoe"}).DisplayName(); got != "jdoe" {
		t.Errorf("DisplayName = %q, want %q", got, "jdoe")
	}
}
