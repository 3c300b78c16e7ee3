package domain

// Role names known to the seed catalog. Additional roles may be created at
// runtime through the role endpoints.
const (
	RoleClient     = "cliente"
	RoleLabTech    = "laboratorista"
	RoleAdmin      = "administrador"
	RoleSuperAdmin = "super_admin"
)

// Permission tags. Access checks test set intersection, never string prefixes.
const (
	PermOwnProfile     = "perfil_propio"
	PermManageTests    = "gestionar_pruebas"
	PermViewResults    = "ver_resultados"
	PermSampleIntake   = "registro_muestras"
	PermEditClient     = "editar_cliente"
	PermViewUsers      = "ver_usuarios"
	PermEditUsers      = "editar_usuarios"
	PermCreateUsers    = "crear_usuarios"
	PermDeleteUsers    = "eliminar_usuarios"
	PermManageLabTechs = "gestionar_laboratoristas"
	PermDeleteLabTechs = "eliminar_laboratoristas"
	PermDeleteClients  = "eliminar_clientes"
	PermCreateLabTechs = "crear_laboratoristas"
	PermCreateClients  = "crear_clientes"
	PermSystemConfig   = "configuracion_sistema"
)

// Role maps a role name to its permission set.
type Role struct {
	Name        string   `json:"name" bson:"name"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// SeedRoles returns the fixed catalog inserted on first boot. The slice is
// rebuilt on every call so callers may not mutate shared state.
func SeedRoles() []Role {
	return []Role{
		{
			Name:        RoleClient,
			Permissions: []string{PermOwnProfile},
		},
		{
			Name: RoleLabTech,
			Permissions: []string{
				PermOwnProfile, PermManageTests, PermViewResults,
				PermSampleIntake, PermEditClient,
			},
		},
		{
			Name: RoleAdmin,
			Permissions: []string{
				PermOwnProfile, PermViewUsers, PermEditUsers,
				PermManageLabTechs, PermDeleteLabTechs, PermDeleteClients,
				PermCreateLabTechs, PermCreateClients, PermSampleIntake,
			},
		},
		{
			Name: RoleSuperAdmin,
			Permissions: []string{
				PermOwnProfile, PermViewUsers, PermEditUsers,
				PermCreateUsers, PermDeleteUsers, PermSystemConfig,
			},
		},
	}
}

// ScopedDeletePermission returns the permission that authorizes deleting a
// user of the given role without holding the blanket eliminar_usuarios.
// Admin-tier roles have no scoped permission; deleting them always requires
// the blanket one.
func ScopedDeletePermission(roleName string) (string, bool) {
	switch roleName {
	case RoleClient:
		return PermDeleteClients, true
	case RoleLabTech:
		return PermDeleteLabTechs, true
	default:
		return "", false
	}
}
