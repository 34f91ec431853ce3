package match

// synonymTable maps canonical scooter-support terms to related words.
// Static, hand-curated for the retailer's FAQ phrasing; loaded once at
// process start and read-only afterwards.
var synonymTable = map[string][]string{
	"speed":       {"fast", "quick", "velocity", "mph", "kmh", "pace"},
	"range":       {"distance", "mileage", "miles", "kilometers", "far"},
	"battery":     {"charge", "charging", "power", "cell", "capacity"},
	"waterproof":  {"water", "rain", "wet", "weather", "splash"},
	"warranty":    {"guarantee", "coverage", "repair", "defect"},
	"legal":       {"law", "laws", "street", "road", "license", "permit"},
	"service":     {"maintenance", "repair", "servicing", "fix", "tune"},
	"track":       {"tracking", "shipment", "shipping", "status", "locate"},
	"payment":     {"pay", "card", "installment", "financing", "price"},
	"return":      {"refund", "exchange", "money-back", "send"},
	"models":      {"model", "version", "versions", "lineup", "series"},
	"differences": {"difference", "compare", "comparison", "versus"},
	"features":    {"feature", "specs", "specifications", "capabilities"},
	"delivery":    {"deliver", "ship", "shipping", "arrive", "courier"},
	"accessories": {"accessory", "helmet", "lock", "charger", "parts"},
}

// Similar reports whether two tokens are linked through the synonym table:
// one is a canonical key and the other appears in its list, or both appear
// in the same list. Symmetric by construction.
func Similar(a, b string) bool {
	if a == b {
		return true
	}
	for key, words := range synonymTable {
		aHit := a == key
		bHit := b == key
		for _, w := range words {
			if w == a {
				aHit = true
			}
			if w == b {
				bHit = true
			}
		}
		if aHit && bHit {
			return true
		}
	}
	return false
}
