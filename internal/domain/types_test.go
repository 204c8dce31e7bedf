package domain

import "testing"

func TestRoleAtLeastTotalOrder(t *testing.T) {
	order := []string{RoleViewer, RoleEditor, RoleAdmin, RoleOwner}
	for i, role := range order {
		for j, min := range order {
			got := RoleAtLeast(role, min)
			want := i >= j
			if got != want {
				t.Fatalf("RoleAtLeast(%s, %s) = %v, want %v", role, min, got, want)
			}
		}
	}
}

func TestRoleAtLeastUnknownRoleNeverPasses(t *testing.T) {
	if RoleAtLeast("superuser", RoleViewer) {
		t.Fatalf("unknown role must never pass")
	}
	if RoleAtLeast("", RoleViewer) {
		t.Fatalf("empty role must never pass")
	}
}

func TestRoleAtLeastNormalizesInput(t *testing.T) {
	if !RoleAtLeast("  Admin ", RoleEditor) {
		t.Fatalf("role comparison should trim and lowercase")
	}
	if !RoleAtLeast("OWNER", RoleOwner) {
		t.Fatalf("uppercase role should still rank")
	}
}
