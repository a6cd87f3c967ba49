package content

// Resource is a curated self-help link.
type Resource struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Track is an ambient sound file served from static assets.
type Track struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// SoundCatalog groups the ambient tracks the way the sounds page presents them.
type SoundCatalog struct {
	WhiteNoises   []Track `json:"whiteNoises"`
	NatureTracks  []Track `json:"natureTracks"`
	TibetanTracks []Track `json:"tibetanTracks"`
}

var resources = []Resource{
	{
		Title:       "5-Minute Breathing Exercise",
		Category:    "Breathwork",
		URL:         "https://www.youtube.com/results?search_query=5+minute+breathing+exercise",
		Description: "A short guided breathing practice to reset your nervous system.",
	},
	{
		Title:       "Body Scan Meditation",
		Category:    "Meditation",
		URL:         "https://www.youtube.com/results?search_query=body+scan+meditation+10+minutes",
		Description: "Gently notice and relax each part of your body.",
	},
	{
		Title:       "Understanding Anxiety",
		Category:    "Article",
		URL:         "https://www.healthline.com/health/anxiety",
		Description: "Learn more about anxiety, symptoms, and supportive strategies.",
	},
	{
		Title:       "Sleep Hygiene Tips",
		Category:    "Sleep",
		URL:         "https://www.sleepfoundation.org/sleep-hygiene",
		Description: "Simple changes to help you rest more deeply at night.",
	},
}

var sounds = SoundCatalog{
	WhiteNoises: []Track{
		{Filename: "white_noise_1.wav", Title: "Soft white noise"},
		{Filename: "white_noise_2.wav", Title: "Gentle white noise"},
		{Filename: "pink_noise.wav", Title: "Pink noise (soft highs)"},
		{Filename: "brown_noise.wav", Title: "Brown noise (deep & warm)"},
	},
	NatureTracks: []Track{
		{Filename: "ocean_wave_noise.wav", Title: "Ocean-like waves"},
		{Filename: "forest_wind.wav", Title: "Forest wind ambience"},
		{Filename: "soft_rain.wav", Title: "Soft rain ambience"},
	},
	TibetanTracks: []Track{
		{Filename: "tibetan_drone.wav", Title: "Tibetan-style calming drone"},
		{Filename: "tibetan_bells.wav", Title: "Soft Tibetan bowl & bells"},
		{Filename: "tibetan_chant_like.wav", Title: "Tibetan-inspired low chant tones"},
	},
}

// Resources returns the curated resource list.
func Resources() []Resource {
	return resources
}

// Sounds returns the ambient sound catalog.
func Sounds() SoundCatalog {
	return sounds
}
