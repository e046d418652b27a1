package domain

// ItemLimit is the number of products a channel feed carries.
const ItemLimit = 50

// ContentType returns the MIME type of a rendered feed.
func (f Format) ContentType() string {
	switch f {
	case FormatAtom:
		return "application/atom+xml; charset=utf-8"
	case FormatJson:
		return "application/feed+json; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}
