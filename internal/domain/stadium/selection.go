package stadium

// Selection tracks which stadium the user picked and whether they pressed
// "Proceed to Booking". Choosing a different stadium withdraws the proceed.
type Selection struct {
	stadiumID int64
	proceeded bool
}

func NewSelection() *Selection {
	return &Selection{}
}

func ReconstructSelection(stadiumID int64, proceeded bool) *Selection {
	if stadiumID <= 0 {
		return &Selection{}
	}
	return &Selection{stadiumID: stadiumID, proceeded: proceeded}
}

func (s *Selection) SelectedID() int64  { return s.stadiumID }
func (s *Selection) HasSelection() bool { return s.stadiumID > 0 }
func (s *Selection) Proceeded() bool    { return s.proceeded }

// Select reports whether the selection changed.
func (s *Selection) Select(catalog *Catalog, id int64) (*Stadium, bool, error) {
	st, err := catalog.Find(id)
	if err != nil {
		return nil, false, err
	}
	if s.stadiumID == st.ID() {
		return st, false, nil
	}
	s.stadiumID = st.ID()
	s.proceeded = false
	return st, true, nil
}

func (s *Selection) Proceed() error {
	if !s.HasSelection() {
		return ErrNoStadiumSelected
	}
	s.proceeded = true
	return nil
}

func (s *Selection) Clear() {
	s.stadiumID = 0
	s.proceeded = false
}
