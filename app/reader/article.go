// Package reader fetches the pages stories link to and turns them into
// readable articles, optionally summarized by ChatGPT.
package reader

// Article is the readable content of a story page.
type Article struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"`
	Author       string `json:"author"`
	ImageURL     string `json:"image_url"`
	BulletPoints string `json:"bullet_points"`
}
