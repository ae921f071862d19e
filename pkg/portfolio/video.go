package portfolio

import (
	"errors"
	"net/url"
	"strings"
)

var ErrUnknownVideoHost = errors.New("video url is neither youtube nor vimeo")

// DetectVideoType tells youtube and vimeo links apart by host.
func DetectVideoType(rawURL string) (VideoType, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") || host == "youtube-nocookie.com":
		return VideoTypeYoutube, nil
	case host == "vimeo.com" || strings.HasSuffix(host, ".vimeo.com"):
		return VideoTypeVimeo, nil
	}
	return "", ErrUnknownVideoHost
}

// YoutubeID extracts the video id from watch, short, embed and shorts links.
func YoutubeID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	if strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "youtu.be") {
		return firstSegment(u.Path)
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return firstSegment(strings.TrimPrefix(u.Path, prefix))
		}
	}
	return ""
}

// VimeoID returns the numeric id of a vimeo or player.vimeo link.
func VimeoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if seg != "" && strings.Trim(seg, "0123456789") == "" {
			return seg
		}
	}
	return ""
}

// EmbedURL is the player url for a video. Uploaded videos play from their own url.
func EmbedURL(t VideoType, rawURL string) string {
	switch t {
	case VideoTypeYoutube:
		if id := YoutubeID(rawURL); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case VideoTypeVimeo:
		if id := VimeoID(rawURL); id != "" {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return rawURL
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
