package types

// Creative output -----------------------------------------------------------------

// ImageRef points at one generated image for a headline.
type ImageRef struct {
	URL string `json:"url"`
}

// Headline is one candidate ad line plus supporting copy.
type Headline struct {
	Text       string    `json:"text"`
	FollowUp   string    `json:"followUp"`
	Reasoning  string    `json:"reasoning"`
	Confidence int       `json:"confidence"`
	ImageRef   *ImageRef `json:"imageRef,omitempty"`
	Starred    bool      `json:"starred"`
}

// Territory is a distinct creative positioning generated from a brief.
// ID stays stable across regeneration cycles for starred territories.
type Territory struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Positioning string     `json:"positioning"`
	Tone        string     `json:"tone"`
	Headlines   []Headline `json:"headlines"`
	Starred     bool       `json:"starred"`
}

// Compliance carries the provider's compliance notes for a generation.
type Compliance struct {
	Output    []string `json:"output"`
	PoweredBy string   `json:"poweredBy"`
}

// RawOutput is the validated provider response at the client boundary.
type RawOutput struct {
	Territories []Territory `json:"territories"`
	Compliance  Compliance  `json:"compliance"`
}

// FinalOutput is what the pipeline hands back: scored territories with
// whatever images the batch run managed to attach.
type FinalOutput struct {
	Territories []Territory `json:"territories"`
	Compliance  Compliance  `json:"compliance"`
}

// Starred selections -------------------------------------------------------------

// StarredItems records what the user pinned across regeneration cycles.
// Headlines maps a territory id to the pinned headline indexes within it.
type StarredItems struct {
	Territories []string         `json:"territories"`
	Headlines   map[string][]int `json:"headlines"`
}

// TerritoryStarred reports whether the whole territory is pinned.
func (s StarredItems) TerritoryStarred(id string) bool {
	for _, t := range s.Territories {
		if t == id {
			return true
		}
	}
	return false
}

// HeadlineStarred reports whether headline index h of territory id is pinned.
func (s StarredItems) HeadlineStarred(id string, h int) bool {
	for _, i := range s.Headlines[id] {
		if i == h {
			return true
		}
	}
	return false
}
