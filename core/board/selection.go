package board

// Selection tracks the route currently selected on the board.
type Selection struct {
	routeID string
}

// Toggle selects id, or clears the selection when id is already selected.
func (s *Selection) Toggle(id string) {
	if s.routeID == id {
		s.routeID = ""
		return
	}
	s.routeID = id
}

// Clear removes the selection.
func (s *Selection) Clear() { s.routeID = "" }

// RouteID returns the selected route and whether one is selected.
func (s Selection) RouteID() (string, bool) { return s.routeID, s.routeID != "" }

// Select returns a selection of id. An empty id selects nothing.
func Select(id string) Selection { return Selection{routeID: id} }
