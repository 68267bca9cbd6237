package domain

// DefaultOrientation is used when no orientation hint is given.
const DefaultOrientation = "landscape"

// ImageResult is the normalized top search hit for a query.
type ImageResult struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Regular     string `json:"regular"`
	Thumb       string `json:"thumb"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Topic maps a short topic name to the free-text query used to search for it.
type Topic struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// ImageLookup is the per-topic outcome of an image batch.
// Image is nil when nothing matched or the lookup failed; Err tells which.
type ImageLookup struct {
	Topic Topic        `json:"topic"`
	Image *ImageResult `json:"image"`
	Err   error        `json:"-"`
}

// DefaultTopics returns the built-in topic list, in print order.
func DefaultTopics() []Topic {
	return []Topic{
		{Name: "ai-development", Query: "artificial intelligence programming code screen"},
		{Name: "docker", Query: "docker containers software development"},
		{Name: "performance", Query: "website performance optimization analytics dashboard"},
		{Name: "infrastructure", Query: "cloud infrastructure servers data center"},
		{Name: "automation", Query: "workflow automation robots machinery"},
	}
}
