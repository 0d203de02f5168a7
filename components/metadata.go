package components

// GalleryItem is one entry of the flat-file gallery manifest. The field
// engine reads it and never mutates it.
type GalleryItem struct {
	ID          string `json:"id" csv:"id"`
	Src         string `json:"src" csv:"src"`
	Description string `json:"description" csv:"description"`
	LeftText    string `json:"leftText" csv:"left_text"`
	RightText   string `json:"rightText" csv:"right_text"`
	Timestamp   string `json:"timestamp,omitempty" csv:"timestamp"`
}

// ItemView is what a cell shows: either a resolved gallery item or a
// deterministic placeholder.
type ItemView struct {
	ItemID      string
	ImageRef    string
	Caption     string
	LeftText    string
	RightText   string
	Placeholder bool
}
