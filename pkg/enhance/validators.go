package enhance

// DescriptionPayload is the game card payload sent when a user asks for an
// AI-rewritten description. EnhanceDescription is always forced on before the
// request is proxied upstream.
type DescriptionPayload struct {
	ID                 string `json:"id" mod:"trim" validate:"required"`
	Name               string `json:"name" mod:"trim" validate:"required,max=200"`
	Genre              string `json:"genre" mod:"trim"`
	Subgenre           string `json:"subgenre" mod:"trim"`
	Description        string `json:"description"`
	EnhanceDescription bool   `json:"enhance_description"`
}

// DescriptionResult is the upstream's rewritten description.
type DescriptionResult struct {
	Enhanced string `json:"enhanced"`
}
