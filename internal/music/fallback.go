package music

import "mindmate/internal/domain"

// fallbackTracks se usa cuando el proveedor no responde o una categoría
// vuelve vacía.
var fallbackTracks = map[string][]domain.Track{
	"Meditation": {
		{
			ID:         "1320267",
			Title:      "Peaceful Meditation",
			Artist:     "Relaxing Music",
			Category:   "Meditation",
			Duration:   "5:30",
			Thumbnail:  "https://usercontent.jamendo.com?type=album&id=98793",
			URL:        "https://www.jamendo.com/track/1320267",
			PreviewURL: "https://mp3d.jamendo.com/?trackid=1320267",
			StreamURL:  "https://mp3d.jamendo.com/?trackid=1320267",
		},
	},
	"Nature Sounds": {
		{
			ID:         "1225340",
			Title:      "Forest Ambience",
			Artist:     "Nature Sounds",
			Category:   "Nature Sounds",
			Duration:   "6:00",
			Thumbnail:  "https://usercontent.jamendo.com?type=album&id=102340",
			URL:        "https://www.jamendo.com/track/1225340",
			PreviewURL: "https://mp3d.jamendo.com/?trackid=1225340",
			StreamURL:  "https://mp3d.jamendo.com/?trackid=1225340",
		},
	},
	"Sleep": {
		{
			ID:         "1225341",
			Title:      "Sleeping Sounds",
			Artist:     "Sleep Music",
			Category:   "Sleep",
			Duration:   "6:00",
			Thumbnail:  "https://usercontent.jamendo.com?type=album&id=102340",
			URL:        "https://www.jamendo.com/track/1225341",
			PreviewURL: "https://mp3d.jamendo.com/?trackid=1225341",
			StreamURL:  "https://mp3d.jamendo.com/?trackid=1225341",
		},
	},
	"Relaxation": {
		{
			ID:         "1320268",
			Title:      "Relaxing Music",
			Artist:     "Relaxation Music",
			Category:   "Relaxation",
			Duration:   "5:30",
			Thumbnail:  "https://usercontent.jamendo.com?type=album&id=98793",
			URL:        "https://www.jamendo.com/track/1320268",
			PreviewURL: "https://mp3d.jamendo.com/?trackid=1320268",
			StreamURL:  "https://mp3d.jamendo.com/?trackid=1320268",
		},
	},
}

// FallbackByCategory devuelve las pistas estáticas de la categoría.
func FallbackByCategory(category string) []domain.Track {
	return fallbackTracks[category]
}
