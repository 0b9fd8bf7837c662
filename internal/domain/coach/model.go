package coach

const (
	RoleHead      = "HEAD"
	RoleAssistant = "ASSISTANT"
	RoleKeeper    = "GK_COACH"
)

// Coach is one of the celebrity coaches rotating through the league teams.
type Coach struct {
	ID   string
	Name string
}
