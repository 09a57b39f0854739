package prefab

import "slices"

// Cocos type names of document records.
const (
	TypePrefab         = "cc.Prefab"
	TypeNode           = "cc.Node"
	TypeUITransform    = "cc.UITransform"
	TypeSprite         = "cc.Sprite"
	TypeLabel          = "cc.Label"
	TypeWidget         = "cc.Widget"
	TypeButton         = "cc.Button"
	TypeCompPrefabInfo = "cc.CompPrefabInfo"
	TypePrefabInfo     = "cc.PrefabInfo"
)

// Fixed positions of the asset and root node.
const (
	rootAsset Ref = 0
	rootNode  Ref = 1
)

// Item is one record of a prefab document.
type Item interface {
	// TypeName returns the record's __type__.
	TypeName() string
	// Refs lists every positional reference the record holds.
	Refs() []Ref

	clone() Item
}

// Component is an Item attached to the root node.
type Component interface {
	Item
	// Owner is the node the component is attached to.
	Owner() Ref
	// PrefabRef is the component's cc.CompPrefabInfo position.
	PrefabRef() Ref

	base() *componentBase
}

// Asset is the cc.Prefab record at position 0.
type Asset struct {
	Type               string       `json:"__type__"`
	Name               string       `json:"_name"`
	ObjFlags           int          `json:"_objFlags"`
	EditorExtras       editorExtras `json:"__editorExtras__"`
	Native             string       `json:"_native"`
	Data               Ref          `json:"data"`
	OptimizationPolicy int          `json:"optimizationPolicy"`
	Persistent         bool         `json:"persistent"`
}

func newAsset(name string) *Asset {
	return &Asset{Type: TypePrefab, Name: name, Data: rootNode}
}

func (a *Asset) TypeName() string { return a.Type }
func (a *Asset) Refs() []Ref      { return []Ref{a.Data} }
func (a *Asset) clone() Item      { c := *a; return &c }

// Node is the cc.Node record at position 1.
type Node struct {
	Type         string       `json:"__type__"`
	Name         string       `json:"_name"`
	ObjFlags     int          `json:"_objFlags"`
	EditorExtras editorExtras `json:"__editorExtras__"`
	Parent       *Ref         `json:"_parent"`
	Children     []Ref        `json:"_children"`
	Active       bool         `json:"_active"`
	Components   []Ref        `json:"_components"`
	Prefab       Ref          `json:"_prefab"`
	LPos         Vec3         `json:"_lpos"`
	LRot         Quat         `json:"_lrot"`
	LScale       Vec3         `json:"_lscale"`
	Mobility     int          `json:"_mobility"`
	Layer        int          `json:"_layer"`
	Euler        Vec3         `json:"_euler"`
	ID           string       `json:"_id"`
}

func newNode(name string, layer int) *Node {
	return &Node{
		Type:       TypeNode,
		Name:       name,
		Children:   []Ref{},
		Active:     true,
		Components: []Ref{},
		Prefab:     unresolved,
		LRot:       Quat{W: 1},
		LScale:     Vec3{1, 1, 1},
		Layer:      layer,
	}
}

func (n *Node) TypeName() string { return n.Type }

func (n *Node) Refs() []Ref {
	refs := make([]Ref, 0, len(n.Children)+len(n.Components)+2)
	if n.Parent != nil {
		refs = append(refs, *n.Parent)
	}
	refs = append(refs, n.Children...)
	refs = append(refs, n.Components...)
	return append(refs, n.Prefab)
}

func (n *Node) clone() Item {
	c := *n
	c.Children = slices.Clone(n.Children)
	c.Components = slices.Clone(n.Components)
	return &c
}

// componentBase carries the header every component shares. Embedding keeps
// the Cocos field order: header, node, _enabled, __prefab, then the
// component's own properties, then _id.
type componentBase struct {
	Type         string       `json:"__type__"`
	Name         string       `json:"_name"`
	ObjFlags     int          `json:"_objFlags"`
	EditorExtras editorExtras `json:"__editorExtras__"`
	Node         Ref          `json:"node"`
	Enabled      bool         `json:"_enabled"`
	Prefab       Ref          `json:"__prefab"`
}

func newComponentBase(typ string) componentBase {
	return componentBase{Type: typ, Node: rootNode, Enabled: true, Prefab: unresolved}
}

func (c *componentBase) TypeName() string     { return c.Type }
func (c *componentBase) Owner() Ref           { return c.Node }
func (c *componentBase) PrefabRef() Ref       { return c.Prefab }
func (c *componentBase) base() *componentBase { return c }
func (c *componentBase) Refs() []Ref          { return []Ref{c.Node, c.Prefab} }

// CompPrefabInfo carries a component's file id.
type CompPrefabInfo struct {
	Type   string `json:"__type__"`
	FileID string `json:"fileId"`
}

func (i *CompPrefabInfo) TypeName() string { return i.Type }
func (i *CompPrefabInfo) Refs() []Ref      { return nil }
func (i *CompPrefabInfo) clone() Item      { c := *i; return &c }

// PrefabInfo is the trailing record tying the root node to the asset.
type PrefabInfo struct {
	Type                      string `json:"__type__"`
	Root                      Ref    `json:"root"`
	Asset                     Ref    `json:"asset"`
	FileID                    string `json:"fileId"`
	Instance                  any    `json:"instance"`
	TargetOverrides           any    `json:"targetOverrides"`
	NestedPrefabInstanceRoots any    `json:"nestedPrefabInstanceRoots"`
}

func (i *PrefabInfo) TypeName() string { return i.Type }
func (i *PrefabInfo) Refs() []Ref      { return []Ref{i.Root, i.Asset} }
func (i *PrefabInfo) clone() Item      { c := *i; return &c }
