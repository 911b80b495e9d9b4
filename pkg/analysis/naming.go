package analysis

import (
	"regexp"
	"strings"
)

var (
	unsafeCharRe    = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
	dashRunRe       = regexp.MustCompile(`-+`)
	edgeDashRe      = regexp.MustCompile(`^-|-$`)
	unicodeReplacer = strings.NewReplacer(
		"‑", "-", // non-breaking hyphen
		"–", "-", // en dash
		"—", "-", // em dash
		"'", "",
		`"`, "",
		"’", "", // right single quote
		"&", "and",
	)
)

// SanitizeFilename maps an arbitrary tape or clip name onto the safe charset
// used for flat object keys, capped at 60 characters. Must stay in sync with
// the clip optimization step that names the files on disk.
func SanitizeFilename(name string) string {
	s := unicodeReplacer.Replace(name)
	s = unsafeCharRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = edgeDashRe.ReplaceAllString(s, "")
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

// ActsForVideo maps a tape's directory name to the act numbers its footage
// belongs to, by keyword. The first act returned is the primary one. Most
// footage is construction-era material, so act 2 is the default.
func ActsForVideo(videoDir string) []int {
	name := strings.ToLower(videoDir)

	// Act I: coal mining origins and the early vision.
	if strings.Contains(name, "coal") || strings.Contains(name, "mining") || strings.Contains(name, "joung") {
		return []int{1}
	}
	if strings.Contains(name, "narrated_by_harris") {
		return []int{1}
	}

	// Act III: opening, tournaments, awards.
	if strings.Contains(name, "opening") || strings.Contains(name, "grand_open") {
		return []int{3}
	}
	if strings.Contains(name, "classic") || strings.Contains(name, "nationwide") {
		return []int{3}
	}
	if strings.Contains(name, "citizen_of_the_year") || strings.Contains(name, "award") {
		return []int{3}
	}
	if strings.Contains(name, "cbs_promo") {
		return []int{3}
	}
	if strings.Contains(name, "disc_i") || strings.Contains(name, "disc_iii") {
		return []int{3}
	}

	// The long-form Pete Dye interview spans the dream and the struggle.
	if strings.Contains(name, "interview") && strings.Contains(name, "pete_dye") {
		return []int{1, 2}
	}

	// Highlights compilations span everything.
	if strings.Contains(name, "highlights") && strings.Contains(name, "interviews") {
		return []int{1, 2, 3}
	}

	return []int{2}
}
