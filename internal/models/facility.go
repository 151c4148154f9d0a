package models

// Building is a physical structure containing exam rooms.
type Building struct {
	ID   string `db:"building_id" json:"building_id"`
	Name string `db:"building_name" json:"building_name"`
}

// Room is an exam venue inside a building. Responses denormalise the building
// name so the frontend need not resolve it separately.
type Room struct {
	ID           string  `db:"room_id" json:"room_id"`
	Name         string  `db:"room_name" json:"room_name"`
	Type         string  `db:"room_type" json:"room_type"`
	Capacity     int     `db:"room_capacity" json:"room_capacity"`
	BuildingID   string  `db:"building_id" json:"building_id"`
	BuildingName *string `db:"building_name" json:"building_name,omitempty"`
}

// RoomFilter narrows room listings.
type RoomFilter struct {
	BuildingID string
	Type       string
}
