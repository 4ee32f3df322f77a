package models

// TripRequest holds the caller-supplied constraints for a budget itinerary.
type TripRequest struct {
	FromCity        string
	DestinationCity string
	NumDays         int
	Interests       string
	MaxBudget       int
}

// TripPlan is the model's budget itinerary. Every field is mandatory free
// text; no cross-field consistency is checked.
type TripPlan struct {
	TravelMode               string `json:"travel_mode"`
	HotelType                string `json:"hotel_type"`
	LocationDetails          string `json:"location_details"`
	FoodRecommendation       string `json:"food_recommendation"`
	ActivitiesRecommendation string `json:"activities_recommendation"`
}
