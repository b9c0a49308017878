package ranking

import "strings"

// PlatformFamily is a named group of concrete platform strings
type PlatformFamily struct {
	Name      string
	Platforms []string
}

// familyTokens maps each family to the lowercase substrings that claim a
// platform, checked in order. Retro has named tokens too, but it is also
// the catch-all for anything unmatched.
var familyTokens = []struct {
	name   string
	tokens []string
}{
	{"Nintendo", []string{"nintendo", "game boy", "wii", "switch", "nes", "snes", "n64", "gamecube", "3ds", "ds"}},
	{"PlayStation", []string{"playstation", "ps", "psp", "vita"}},
	{"Xbox", []string{"xbox", "360"}},
	{"PC", []string{"pc", "windows", "mac", "linux", "steam"}},
	{"Mobile", []string{"android", "ios", "mobile", "iphone", "ipad"}},
	{"Retro", []string{"atari", "commodore", "amiga", "sega", "neo geo", "dreamcast", "coleco", "msx"}},
}

// GroupPlatforms sorts platform names into the fixed console families.
// Unmatched platforms fall into Retro, and empty families are omitted.
// Family order is fixed: Nintendo, PlayStation, Xbox, PC, Mobile, Retro.
func GroupPlatforms(platforms []string) []PlatformFamily {
	grouped := make(map[string][]string)
	for _, plat := range platforms {
		grouped[familyFor(plat)] = append(grouped[familyFor(plat)], plat)
	}

	families := make([]PlatformFamily, 0, len(familyTokens))
	for _, fam := range familyTokens {
		if members := grouped[fam.name]; len(members) > 0 {
			families = append(families, PlatformFamily{Name: fam.name, Platforms: members})
		}
	}
	return families
}

func familyFor(platform string) string {
	lower := strings.ToLower(platform)
	for _, fam := range familyTokens {
		for _, token := range fam.tokens {
			if strings.Contains(lower, token) {
				return fam.name
			}
		}
	}
	return "Retro"
}
