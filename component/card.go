package component

// Owner identifies which side a card belongs to
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "Enemy"
	}
	return "Player"
}

// CardComponent marks an entity as a physical card
type CardComponent struct {
	// Slot is the card's index within its hand, left to right
	Slot int
}

// OwnerComponent tags a card with its side
// Determines pickability and face orientation at spawn
type OwnerComponent struct {
	Owner Owner
}
