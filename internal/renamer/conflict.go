package renamer

// Conflicts replays the plan against the captured listing and returns every
// rename whose target exists at the moment it runs and is not the entry
// being renamed. Such a rename overwrites the existing entry on platforms
// with replace-on-rename semantics.
func (p *Plan) Conflicts() []Rename {
	present := make(map[string]bool, len(p.Renames)+len(p.Skipped))
	for _, name := range p.Skipped {
		present[name] = true
	}
	for _, r := range p.Renames {
		present[r.Old] = true
	}

	var conflicts []Rename
	for _, r := range p.Renames {
		if r.New != r.Old && present[r.New] {
			conflicts = append(conflicts, r)
		}
		delete(present, r.Old)
		present[r.New] = true
	}
	return conflicts
}
