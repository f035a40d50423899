package pixelscene

// nodeIDCounter is a plain counter; node trees are single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Motion integrates per-node speed and acceleration each update.
type Motion struct {
	SpeedX, SpeedY float64
	AccX, AccY     float64
	// AngularSpeed is in radians per second.
	AngularSpeed float64
}

// Reset zeroes speed, acceleration and angular speed.
func (m *Motion) Reset() {
	*m = Motion{}
}

// Shadow draws a flattened, darkened copy of the node's quad just before the
// node itself. Width and Height are fractions of the node size; Offset moves
// the shadow down in local units.
type Shadow struct {
	Enabled bool
	Width   float64
	Height  float64
	Offset  float64
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types; optional capabilities (children, Motion, Shadow, NinePatch,
// Emitter, Area) are explicit fields instead of a type hierarchy.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is in radians around (OriginX, OriginY).
	X, Y             float64
	Width, Height    float64
	ScaleX, ScaleY   float64
	OriginX, OriginY float64
	Rotation         float64

	// Lighting is the multiply/additive color pair submitted with every draw.
	Lighting  Lighting
	BlendMode BlendMode

	// Visible nodes are drawn; Active nodes are updated.
	Visible bool
	Active  bool

	// Image fields (NodeTypeImage)
	Region   TextureRegion
	FlipH    bool
	FlipV    bool
	geometry *QuadGeometry
	frameW   float64
	frameH   float64

	// Capabilities
	Motion    *Motion
	Shadow    *Shadow
	NinePatch *NinePatch
	Emitter   *ParticleEmitter
	Area      *PointerArea
	Item      *ItemSprite

	// OnUpdate runs every update while the node is active.
	OnUpdate func(dt float64)

	// Metadata
	UserData any

	camera *Camera

	worldTransform [6]float64
	transformDirty bool
	destroyed      bool
}

// newNode sets the common default field values shared by all constructors.
func newNode(name string, t NodeType) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Type:           t,
		ScaleX:         1,
		ScaleY:         1,
		Lighting:       IdentityLighting,
		Visible:        true,
		Active:         true,
		worldTransform: identityTransform,
		transformDirty: true,
	}
}

// NewGroup creates a container node with no visual representation.
func NewGroup(name string) *Node {
	return newNode(name, NodeTypeGroup)
}

// NewImage creates a node that draws region as a single quad.
func NewImage(name string, region TextureRegion) *Node {
	n := newNode(name, NodeTypeImage)
	n.geometry = NewQuadGeometry(1)
	n.SetRegion(region)
	return n
}

// NewColorBlock creates a solid rectangle of the given size and color.
func NewColorBlock(name string, width, height float64, c Color) *Node {
	n := NewImage(name, FullRegion(WhiteTexture))
	n.ScaleX, n.ScaleY = width, height
	n.ColorFill(c)
	return n
}

// SetRegion switches the image to region and resizes the node to match.
// With an unloaded texture the node keeps zero size until the next draw.
func (n *Node) SetRegion(region TextureRegion) {
	n.Region = region
	n.updateFrame()
}

// SetFlip mirrors the image's texture content.
func (n *Node) SetFlip(h, v bool) {
	if n.FlipH == h && n.FlipV == v {
		return
	}
	n.FlipH, n.FlipV = h, v
	n.updateFrame()
}

// updateFrame rebuilds the image quad. Returns false if the texture is not loaded.
func (n *Node) updateFrame() bool {
	if n.geometry == nil {
		return false
	}
	uv, err := n.Region.UV()
	if err != nil {
		n.frameW, n.frameH = 0, 0
		return false
	}
	w, h := n.Region.Size()
	n.Width, n.Height = float64(w), float64(h)
	n.frameW, n.frameH = n.Width, n.Height
	q := Quad{X2: float32(w), Y2: float32(h), U1: uv.Left, U2: uv.Right, V1: uv.Top, V2: uv.Bottom}
	if n.FlipH {
		q.U1, q.U2 = q.U2, q.U1
	}
	if n.FlipV {
		q.V1, q.V2 = q.V2, q.V1
	}
	n.geometry.SetQuad(0, q)
	n.transformDirty = true
	return true
}

// Geometry returns the image quad buffer, or nil for non-image nodes.
func (n *Node) Geometry() *QuadGeometry {
	return n.geometry
}

// --- Camera ---

// SetCamera binds the node (and any children without their own camera) to
// cam. The node does not own the camera.
func (n *Node) SetCamera(cam *Camera) {
	n.camera = cam
}

// Camera returns the node's camera, inherited from the nearest ancestor
// that has one. Returns nil when no ancestor is bound.
func (n *Node) Camera() *Camera {
	for p := n; p != nil; p = p.Parent {
		if p.camera != nil {
			return p.camera
		}
	}
	return nil
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, drawn after (on top of) its
// siblings. If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.insertChild(child, len(n.children))
}

// AddToBack inserts child before all siblings.
func (n *Node) AddToBack(child *Node) {
	n.insertChild(child, 0)
}

func (n *Node) insertChild(child *Node, index int) {
	if child == nil {
		panic("pixelscene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("pixelscene: adding child would create a cycle")
	}
	if child.Parent == n {
		return
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// BringToFront moves child to the end of the draw order.
func (n *Node) BringToFront(child *Node) {
	if child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("pixelscene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Destruction ---

// Destroy detaches the node, recursively destroys its children and releases
// any GPU geometry. Cameras and external emitters referenced by the subtree
// are left alone.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.RemoveFromParent()
	n.destroy()
}

func (n *Node) destroy() {
	n.destroyed = true
	for _, child := range n.children {
		child.Parent = nil
		child.destroy()
	}
	n.children = nil
	if n.geometry != nil {
		n.geometry.Release()
	}
	if n.NinePatch != nil {
		n.NinePatch.geometry.Release()
	}
	if n.Emitter != nil {
		n.Emitter.geometry.Release()
	}
	if n.Item != nil {
		n.Item.discard()
	}
	n.camera = nil
	n.OnUpdate = nil
	n.Area = nil
	n.UserData = nil
}

// IsDestroyed returns true if this node has been destroyed.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// --- Visibility ---

// IsVisible reports whether the node and all of its ancestors are visible.
func (n *Node) IsVisible() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// --- Geometry helpers ---

// ScaledWidth returns Width * ScaleX.
func (n *Node) ScaledWidth() float64 {
	return n.Width * n.ScaleX
}

// ScaledHeight returns Height * ScaleY.
func (n *Node) ScaledHeight() float64 {
	return n.Height * n.ScaleY
}

// Center returns the center point of the node in parent space.
func (n *Node) Center() Vec2 {
	return Vec2{X: n.X + n.ScaledWidth()/2, Y: n.Y + n.ScaledHeight()/2}
}

// SetCenter positions the node so its center lands on p.
func (n *Node) SetCenter(p Vec2) {
	n.SetPosition(p.X-n.ScaledWidth()/2, p.Y-n.ScaledHeight()/2)
}

// OverlapsPoint reports whether (x, y) in parent space lies over the node's
// unrotated bounds.
func (n *Node) OverlapsPoint(x, y float64) bool {
	return Rect{X: n.X, Y: n.Y, Width: n.ScaledWidth(), Height: n.ScaledHeight()}.Contains(x, y)
}

// OverlapsScreenPoint reports whether the device pixel (x, y) lands on the
// node through its camera.
func (n *Node) OverlapsScreenPoint(x, y float64) bool {
	cam := n.Camera()
	if cam == nil || !cam.HitTest(x, y) {
		return false
	}
	cx, cy := cam.ScreenToCamera(x, y)
	if n.Parent != nil {
		cx, cy = n.Parent.WorldToLocal(cx, cy)
	}
	return n.OverlapsPoint(cx, cy)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
