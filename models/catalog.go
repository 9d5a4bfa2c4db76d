package models

// Shared enumerations for the booking and offer forms. Every screen and
// every validation rule reads from here so the lists cannot drift apart.

var Services = []string{
	"Laser Hair Removal",
	"Skin Rejuvenation",
	"Acne Treatment",
	"Pigmentation Treatment",
	"Vascular Lesions",
	"Tattoo Removal",
	"General Consultation",
}

var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM",
}

// OfferColors are the presentation theme tags the offer cards understand.
var OfferColors = []string{"blue", "purple", "green", "red", "yellow", "indigo"}

const DefaultOfferColor = "blue"

type Catalog struct {
	Services    []string `json:"services"`
	TimeSlots   []string `json:"time_slots"`
	OfferColors []string `json:"offer_colors"`
}

func GetCatalog() Catalog {
	return Catalog{
		Services:    Services,
		TimeSlots:   TimeSlots,
		OfferColors: OfferColors,
	}
}

func IsService(v string) bool    { return contains(Services, v) }
func IsTimeSlot(v string) bool   { return contains(TimeSlots, v) }
func IsOfferColor(v string) bool { return contains(OfferColors, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
