package bank

// Metadata describes one of the supported bank presets.
type Metadata struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
}

var supported = []Metadata{
	{ID: "hdfc", Name: "HDFC Bank", Color: "#004c8f", TextColor: "#ffffff"},
	{ID: "sbi", Name: "State Bank of India", Color: "#29aae1", TextColor: "#ffffff"},
	{ID: "icici", Name: "ICICI Bank", Color: "#f37021", TextColor: "#ffffff"},
	{ID: "axis", Name: "Axis Bank", Color: "#97144d", TextColor: "#ffffff"},
	{ID: "kotak", Name: "Kotak Mahindra", Color: "#ed1c24", TextColor: "#ffffff"},
	{ID: "bob", Name: "Bank of Baroda", Color: "#fe5100", TextColor: "#ffffff"},
	{ID: "pnb", Name: "Punjab National Bank", Color: "#a2192e", TextColor: "#ffffff"},
	{ID: "canara", Name: "Canara Bank", Color: "#0091d3", TextColor: "#ffffff"},
	{ID: "union", Name: "Union Bank", Color: "#e21e26", TextColor: "#ffffff"},
	{ID: "indusind", Name: "IndusInd Bank", Color: "#91282c", TextColor: "#ffffff"},
}

// Supported returns a copy of the preset catalog in display order.
func Supported() []Metadata {
	out := make([]Metadata, len(supported))
	copy(out, supported)

	return out
}

// Lookup finds a preset by id.
func Lookup(id string) (Metadata, bool) {
	for _, m := range supported {
		if m.ID == id {
			return m, true
		}
	}

	return Metadata{}, false
}

// Display returns the preset for id, falling back to the first preset.
func Display(id string) Metadata {
	if m, ok := Lookup(id); ok {
		return m
	}

	return supported[0]
}
