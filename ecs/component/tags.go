package component

// VehicleTag marks the player's vehicle. Only contacts involving a tagged
// body count as hits.
type VehicleTag struct{}

var VehicleTagComponent = NewComponent[VehicleTag]()
