// Package tree models the retrosynthesis and synthesis plan trees returned by
// the RXN platform and provides the traversal helpers used to turn a plan
// into an ordered list of actions.
package tree

import "encoding/json"

// Border colors the platform uses to mark commercially available leaves.
// Any other color (unavailable materials carry #ce4e04) means not available.
var commercialBorderColors = map[string]bool{"#28a30d": true, "#0f62fe": true, "#002d9c": true}

// Action is a single synthesis action attached to a plan node. The platform
// emits heterogeneous action objects; only the fields the client inspects are
// typed, the rest travels in Content.
type Action struct {
	Name               string          `json:"name,omitempty"`
	HasSpectrometerPDF bool            `json:"hasSpectrometerPdf,omitempty"`
	Content            json.RawMessage `json:"content,omitempty"`
}

// Metadata carries the presentation metadata the platform attaches to nodes.
// The border color doubles as the availability marker for leaves.
type Metadata struct {
	BorderColor string `json:"borderColor,omitempty"`
}

// Node is one node of a plan tree. IsCommercial is nil when the platform gave
// no availability information for the node.
type Node struct {
	ID           string    `json:"id,omitempty"`
	SequenceID   string    `json:"sequenceId,omitempty"`
	SMILES       string    `json:"smiles,omitempty"`
	Actions      []Action  `json:"actions,omitempty"`
	Children     []*Node   `json:"children,omitempty"`
	IsCommercial *bool     `json:"isCommercial,omitempty"`
	Metadata     *Metadata `json:"metaData,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// PostOrder returns the nodes of the tree children-first, the order in which
// the corresponding reactions have to be carried out.
func PostOrder(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range root.Children {
		nodes = append(nodes, PostOrder(child)...)
	}
	return append(nodes, root)
}

// FlattenActions collects the actions of every node in post order, yielding
// the full action list for executing the plan.
func FlattenActions(root *Node) []Action {
	var actions []Action
	for _, node := range PostOrder(root) {
		actions = append(actions, node.Actions...)
	}
	return actions
}

// AnnotateAvailability fills IsCommercial on every leaf from its border
// color: commercial when the color is in the commercial set, unavailable for
// any other color. Leaves without a border color are left unannotated.
func AnnotateAvailability(root *Node) {
	if root == nil {
		return
	}
	if root.IsLeaf() {
		if root.Metadata != nil && root.Metadata.BorderColor != "" {
			commercial := commercialBorderColors[root.Metadata.BorderColor]
			root.IsCommercial = &commercial
		}
		return
	}
	for _, child := range root.Children {
		AnnotateAvailability(child)
	}
}

// StartingMaterialsAvailable reports whether every leaf of the tree is
// commercially available. Leaves lacking availability information count as
// unavailable.
func StartingMaterialsAvailable(root *Node) bool {
	if root == nil {
		return false
	}
	if root.IsLeaf() {
		return root.IsCommercial != nil && *root.IsCommercial
	}
	for _, child := range root.Children {
		if !StartingMaterialsAvailable(child) {
			return false
		}
	}
	return true
}

// AvailabilityBySequence maps each retrosynthetic path to whether all of its
// starting materials are commercially available, keyed by sequence id.
func AvailabilityBySequence(paths []*Node) map[string]bool {
	result := make(map[string]bool, len(paths))
	for _, path := range paths {
		if path == nil {
			continue
		}
		result[path.SequenceID] = StartingMaterialsAvailable(path)
	}
	return result
}
