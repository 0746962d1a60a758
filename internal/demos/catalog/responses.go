package catalog

// wger API payloads, only the fields we use.
// https://wger.de/api/v2/

type searchResponse struct {
	Suggestions []struct {
		Value string `json:"value"`
		Data  struct {
			ID             int    `json:"id"`
			BaseID         int    `json:"base_id"`
			Name           string `json:"name"`
			Category       string `json:"category"`
			Image          string `json:"image"`
			ImageThumbnail string `json:"image_thumbnail"`
		} `json:"data"`
	} `json:"suggestions"`
}

type videoListResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID           int    `json:"id"`
		Video        string `json:"video"`
		ExerciseBase int    `json:"exercise_base"`
	} `json:"results"`
}

type imageListResponse struct {
	Count   int `json:"count"`
	Results []struct {
		ID     int    `json:"id"`
		Image  string `json:"image"`
		IsMain bool   `json:"is_main"`
	} `json:"results"`
}

// Suggestion is the best catalog match for a search term.
type Suggestion struct {
	ID           int
	Name         string
	ThumbnailURL string
}
