package model

// State is the persisted shape of a session: both collections, in order
type State struct {
	Tasks      []Task     `json:"tasks"`
	Categories []Category `json:"categories"`
}

// Clone returns a deep copy that shares nothing with s
func (s State) Clone() State {
	out := State{
		Tasks:      make([]Task, len(s.Tasks)),
		Categories: make([]Category, len(s.Categories)),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.Categories, s.Categories)
	return out
}
