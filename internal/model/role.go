package model

// Role identifies the duty a person holds within a team for one day.
// Every team member holds exactly one role; the equipment-carrier flag is
// an attribute carried separately and never a role.
type Role string

const (
	RoleInvestigator  Role = "investigator"
	RoleSectionLeader Role = "section_leader"
	RoleFiller        Role = "filler"
)

func (r Role) String() string { return string(r) }
