package dto

// HouseInput carries create/update payloads. Pointer fields distinguish
// "absent" from zero values so partial updates only touch what the client
// sent.
type HouseInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Category      string   `json:"category"`
	RegularPrice  *float64 `json:"regularPrice"`
	DiscountPrice *float64 `json:"discountPrice"`
	Bathroom      *int     `json:"bathroom"`
	Bedroom       *int     `json:"bedroom"`
	Kitchen       *int     `json:"kitchen"`
	LivingRoom    *int     `json:"livingRoom"`
	Parking       *bool    `json:"parking"`
	Available     *bool    `json:"available"`
	Offer         *bool    `json:"offer"`
	Type          string   `json:"type"`
	ImageURLs     []string `json:"imageUrls"`
}

type ToggleLikeRequest struct {
	HouseID int64 `json:"houseId"`
}
