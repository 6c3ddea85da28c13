package chain

// Group is a run of labelled commits that maps to one remote branch and one pull request.
type Group struct {
	Label   string   // label from the commit annotations
	Name    string   // remote branch name, prefixed
	Base    string   // branch the pull request targets
	Commits []Commit // oldest first
}

// Head returns the last commit of the group, the one pushed to Name
func (g Group) Head() Commit {
	return g.Commits[len(g.Commits)-1]
}

// BuildGroups collapses a validated chain into ordered branch groups.
// The first group is based on upstreamBranch and each later group on the
// group before it. Unlabelled and stopped commits form no group.
func BuildGroups(commits []Commit, upstreamBranch, prefix string) []Group {
	var groups []Group
	base := upstreamBranch
	for _, r := range Runs(commits) {
		if r.Label == "" || r.Stopped() {
			continue
		}
		g := Group{
			Label:   r.Label,
			Name:    prefix + r.Label,
			Base:    base,
			Commits: r.Commits,
		}
		groups = append(groups, g)
		base = g.Name
	}
	return groups
}
