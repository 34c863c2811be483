package component

// PickableComponent marks entities the picking collaborator may hover and select
type PickableComponent struct{}

// HoverComponent is written by the picking collaborator only
type HoverComponent struct {
	Hovered bool
}

// SelectionComponent is set by the picking collaborator on press and cleared on release
type SelectionComponent struct {
	Selected bool
}
