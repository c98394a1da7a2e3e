package domain

// Track es una pista del catálogo de música relajante, ya transformada al
// formato que consume el cliente.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Category   string `json:"category"`
	Duration   string `json:"duration"` // MM:SS
	Thumbnail  string `json:"thumbnail,omitempty"`
	URL        string `json:"url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	StreamURL  string `json:"stream_url"`
}
