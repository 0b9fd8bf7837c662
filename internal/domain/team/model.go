package team

// Team is one of the league's sides.
type Team struct {
	ID      string
	Name    string
	Short   string
	Captain string
}
