package portal

// Descriptor is one landing-page card.
type Descriptor struct {
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

func Catalog() []Descriptor {
	return []Descriptor{
		{
			Kind:        KindCustomer,
			Title:       "Customer Portal",
			Description: "File and track your credit disputes",
			Features:    []string{"Submit new disputes via chat", "Real-time AI assistance", "Instant case analysis", "Track dispute status"},
		},
		{
			Kind:        KindSupport,
			Title:       "Support Dashboard",
			Description: "Review and resolve escalated cases",
			Features:    []string{"Review escalated disputes", "Access AI analysis insights", "Make final decisions", "Human-in-the-loop controls"},
		},
		{
			Kind:        KindMerchant,
			Title:       "Merchant Dashboard",
			Description: "Validate disputed transactions",
			Features:    []string{"View disputed transactions", "AI-assisted validation", "Upload supporting evidence", "Submit transaction proofs"},
		},
	}
}
