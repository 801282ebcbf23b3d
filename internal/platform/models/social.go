package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SocialPlatform is the closed set of networks the site links to. Stored
// values outside this set are rejected on write.
type SocialPlatform int

const (
	PlatformFacebook SocialPlatform = iota + 1
	PlatformInstagram
	PlatformLinkedIn
	PlatformX
	PlatformYouTube
	PlatformTikTok
	PlatformDribbble
	PlatformBehance
)

var platformNames = map[SocialPlatform]string{
	PlatformFacebook:  "facebook",
	PlatformInstagram: "instagram",
	PlatformLinkedIn:  "linkedin",
	PlatformX:         "x",
	PlatformYouTube:   "youtube",
	PlatformTikTok:    "tiktok",
	PlatformDribbble:  "dribbble",
	PlatformBehance:   "behance",
}

func ParseSocialPlatform(s string) (SocialPlatform, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "twitter" {
		key = "x"
	}
	for p, name := range platformNames {
		if name == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown social platform %q", s)
}

func (p SocialPlatform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return fmt.Sprintf("SocialPlatform(%d)", int(p))
}

// Icon returns the icon identifier the public site renders for p.
func (p SocialPlatform) Icon() string {
	switch p {
	case PlatformFacebook:
		return "brand-facebook"
	case PlatformInstagram:
		return "brand-instagram"
	case PlatformLinkedIn:
		return "brand-linkedin"
	case PlatformX:
		return "brand-x"
	case PlatformYouTube:
		return "brand-youtube"
	case PlatformTikTok:
		return "brand-tiktok"
	case PlatformDribbble:
		return "brand-dribbble"
	case PlatformBehance:
		return "brand-behance"
	}
	return "link"
}

// Label is the human name printed on documents.
func (p SocialPlatform) Label() string {
	switch p {
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformX:
		return "X"
	case PlatformYouTube:
		return "YouTube"
	case PlatformTikTok:
		return "TikTok"
	}
	name := p.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (p SocialPlatform) MarshalJSON() ([]byte, error) {
	if _, ok := platformNames[p]; !ok {
		return nil, fmt.Errorf("unknown social platform %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *SocialPlatform) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseSocialPlatform(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
