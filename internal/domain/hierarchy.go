package domain

// HierarchyNode is one entry of a plan's structure tree. There must be
// exactly one node per phase and per milestone; Key matches the element's
// name and ElementIndex its position in the containing array.
type HierarchyNode struct {
	Key          string
	ParentKey    string
	ChildKeys    []string
	ElementIndex int
}

// FindNode returns the hierarchy node with the given key, or nil.
func (p *Plan) FindNode(key string) *HierarchyNode {
	for i := range p.Hierarchy {
		if p.Hierarchy[i].Key == key {
			return &p.Hierarchy[i]
		}
	}
	return nil
}

// ElementCount returns the number of phases plus milestones in the plan,
// which must match the hierarchy size for a structurally valid plan.
func (p *Plan) ElementCount() int {
	n := len(p.Phases)
	for i := range p.Phases {
		n += len(p.Phases[i].Milestones)
	}
	return n
}
