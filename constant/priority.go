package constant

// System Execution Priorities (lower runs first)
const (
	PriorityPicking = 10 // Input collaborator, writes hover/selection flags
	PriorityRaycast = 20 // Drag-plane point for this frame
	PriorityHover   = 30
	PriorityFacing  = 40
	PriorityDrag    = 50 // Must follow Hover so the drag translation wins
)
