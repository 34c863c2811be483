package core

// Entity is a stable handle into the world's component stores
// Zero is never allocated and means "no entity"
type Entity uint64

// NoEntity is the zero handle
const NoEntity Entity = 0
