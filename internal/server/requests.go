package server

// Request types for the viewer API with validation tags. These define the
// expected input for each endpoint and use go-playground/validator struct
// tags for automatic validation.

// LocationsUpdateRequest is the request body for POST /api/locations.
// Keys are mic names (integer-looking keys address integer names); values
// are 3D coordinates.
type LocationsUpdateRequest struct {
	Locations map[string][]float64 `json:"locations" validate:"required,min=1,dive,len=3"`
}

// AudioUpdateRequest is the request body for POST /api/audio. Channels maps
// a channel name to its signal samples.
type AudioUpdateRequest struct {
	SampleRate float64              `json:"fS" validate:"required,gt=0"`
	Channels   map[string][]float64 `json:"channels" validate:"required,min=1"`
}
