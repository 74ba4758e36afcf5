// Package avatar builds placeholder avatar URLs for accounts that have no
// photo of their own, including the synthetic authors minted by the AI lab.
package avatar

import (
	"fmt"
	"net/url"
)

const baseURL = "https://ui-avatars.com/api/"

// PlaceholderURL returns a generated-avatar URL derived from a display name.
func PlaceholderURL(name string) string {
	return fmt.Sprintf("%s?name=%s&background=random", baseURL, url.QueryEscape(name))
}
