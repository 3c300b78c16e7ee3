package domain

import "time"

// Profile is the role-specific payload attached to a user. It is a tagged
// union keyed by the user's role name: at most one variant is set, and the
// set variant matches the role. Roles created at runtime beyond the seed
// catalog carry an empty profile.
type Profile struct {
	Client     *ClientProfile     `json:"client,omitempty" bson:"client,omitempty"`
	LabTech    *LabTechProfile    `json:"lab_tech,omitempty" bson:"lab_tech,omitempty"`
	Admin      *AdminProfile      `json:"admin,omitempty" bson:"admin,omitempty"`
	SuperAdmin *SuperAdminProfile `json:"super_admin,omitempty" bson:"super_admin,omitempty"`
}

// ClientProfile carries a client's request history.
type ClientProfile struct {
	RequestHistory []string `json:"request_history" bson:"request_history"`
}

// LabTechProfile carries a lab technician's specialty.
type LabTechProfile struct {
	Specialty string `json:"specialty" bson:"specialty"`
}

// AdminProfile carries an administrator's access level.
type AdminProfile struct {
	AccessLevel int `json:"access_level" bson:"access_level"`
}

// SuperAdminProfile carries the super admin's security code and an
// append-only log of privileged actions.
type SuperAdminProfile struct {
	SecurityCode string        `json:"security_code,omitempty" bson:"security_code,omitempty"`
	ActionLog    []ActionEntry `json:"action_log" bson:"action_log"`
}

// ActionEntry is one record in the super admin's action log.
type ActionEntry struct {
	Action string    `json:"action" bson:"action"`
	At     time.Time `json:"at" bson:"at"`
}

// ProfilePatch is the role-specific payload accepted on register and update.
// Nil fields are left untouched on merge; non-nil fields overwrite.
type ProfilePatch struct {
	Specialty    *string `json:"specialty,omitempty"`
	AccessLevel  *int    `json:"access_level,omitempty"`
	SecurityCode *string `json:"security_code,omitempty"`
}

const defaultAdminAccessLevel = 1

// NewProfile builds the profile variant for the given role, seeded with the
// patch values that apply to it.
func NewProfile(roleName string, patch ProfilePatch) Profile {
	switch roleName {
	case RoleClient:
		return Profile{Client: &ClientProfile{RequestHistory: []string{}}}
	case RoleLabTech:
		p := &LabTechProfile{}
		if patch.Specialty != nil {
			p.Specialty = *patch.Specialty
		}
		return Profile{LabTech: p}
	case RoleAdmin:
		p := &AdminProfile{AccessLevel: defaultAdminAccessLevel}
		if patch.AccessLevel != nil {
			p.AccessLevel = *patch.AccessLevel
		}
		return Profile{Admin: p}
	case RoleSuperAdmin:
		p := &SuperAdminProfile{ActionLog: []ActionEntry{}}
		if patch.SecurityCode != nil {
			p.SecurityCode = *patch.SecurityCode
		}
		return Profile{SuperAdmin: p}
	default:
		return Profile{}
	}
}

// Merge applies a patch to the variant matching roleName. Fields the patch
// does not carry persist unchanged; fields that do not apply to the role are
// ignored. The action log is never writable through a merge.
func (p *Profile) Merge(roleName string, patch ProfilePatch) {
	switch roleName {
	case RoleLabTech:
		if p.LabTech == nil {
			p.LabTech = &LabTechProfile{}
		}
		if patch.Specialty != nil {
			p.LabTech.Specialty = *patch.Specialty
		}
	case RoleAdmin:
		if p.Admin == nil {
			p.Admin = &AdminProfile{AccessLevel: defaultAdminAccessLevel}
		}
		if patch.AccessLevel != nil {
			p.Admin.AccessLevel = *patch.AccessLevel
		}
	case RoleSuperAdmin:
		if p.SuperAdmin == nil {
			p.SuperAdmin = &SuperAdminProfile{ActionLog: []ActionEntry{}}
		}
		if patch.SecurityCode != nil {
			p.SuperAdmin.SecurityCode = *patch.SecurityCode
		}
	}
}
