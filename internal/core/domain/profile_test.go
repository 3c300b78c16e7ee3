package domain

import "testing"

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestNewProfileVariantMatchesRole(t *testing.T) {
	cases := []struct {
		role  string
		check func(Profile) bool
	}{
		{RoleClient, func(p Profile) bool {
			return p.Client != nil && p.Client.RequestHistory != nil &&
				p.LabTech == nil && p.Admin == nil && p.SuperAdmin == nil
		}},
		{RoleLabTech, func(p Profile) bool { return p.LabTech != nil && p.Client == nil }},
		{RoleAdmin, func(p Profile) bool { return p.Admin != nil && p.Admin.AccessLevel == 1 }},
		{RoleSuperAdmin, func(p Profile) bool {
			return p.SuperAdmin != nil && p.SuperAdmin.ActionLog != nil
		}},
		{"auditor_externo", func(p Profile) bool {
			return p.Client == nil && p.LabTech == nil && p.Admin == nil && p.SuperAdmin == nil
		}},
	}
	for _, tc := range cases {
		if p := NewProfile(tc.role, ProfilePatch{}); !tc.check(p) {
			t.Fatalf("NewProfile(%q) built wrong variant: %+v", tc.role, p)
		}
	}
}

func TestNewProfileAppliesPatch(t *testing.T) {
	p := NewProfile(RoleLabTech, ProfilePatch{Specialty: strPtr("hematología")})
	if p.LabTech.Specialty != "hematología" {
		t.Fatalf("specialty not seeded: %+v", p.LabTech)
	}

	p = NewProfile(RoleAdmin, ProfilePatch{AccessLevel: intPtr(3)})
	if p.Admin.AccessLevel != 3 {
		t.Fatalf("access level not seeded: %+v", p.Admin)
	}

	p = NewProfile(RoleSuperAdmin, ProfilePatch{SecurityCode: strPtr("s3cret")})
	if p.SuperAdmin.SecurityCode != "s3cret" {
		t.Fatalf("security code not seeded: %+v", p.SuperAdmin)
	}
}

func TestProfileMerge(t *testing.T) {
	p := NewProfile(RoleAdmin, ProfilePatch{AccessLevel: intPtr(2)})

	// Nil fields persist, non-nil fields overwrite.
	p.Merge(RoleAdmin, ProfilePatch{})
	if p.Admin.AccessLevel != 2 {
		t.Fatalf("empty patch clobbered access level: %d", p.Admin.AccessLevel)
	}
	p.Merge(RoleAdmin, ProfilePatch{AccessLevel: intPtr(5)})
	if p.Admin.AccessLevel != 5 {
		t.Fatalf("patch not applied: %d", p.Admin.AccessLevel)
	}

	// Fields for other roles are ignored.
	p.Merge(RoleAdmin, ProfilePatch{Specialty: strPtr("x")})
	if p.LabTech != nil {
		t.Fatalf("merge created a variant foreign to the role")
	}
}

func TestProfileMergeNeverTouchesActionLog(t *testing.T) {
	p := NewProfile(RoleSuperAdmin, ProfilePatch{})
	p.SuperAdmin.ActionLog = append(p.SuperAdmin.ActionLog, ActionEntry{Action: "seeded roles"})

	p.Merge(RoleSuperAdmin, ProfilePatch{SecurityCode: strPtr("rotated")})
	if len(p.SuperAdmin.ActionLog) != 1 {
		t.Fatalf("merge disturbed action log: %+v", p.SuperAdmin.ActionLog)
	}
	if p.SuperAdmin.SecurityCode != "rotated" {
		t.Fatalf("security code not merged")
	}
}
