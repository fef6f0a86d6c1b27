package sectionmark

// Normalize replaces every known section mark in lyrics with its label.
//
// Matching is done per token: the text is scanned once for mark-shaped
// tokens and each token is looked up whole, so "[V]" can never eat the
// front of "[V1]". Unknown tokens are left as they are so they stay visible
// in the converted song. Replaced text is not scanned again.
func Normalize(lyrics string) string {
	return markPattern.ReplaceAllStringFunc(lyrics, func(token string) string {
		if label, ok := markLabels[token]; ok {
			return label
		}
		return token
	})
}

// FindMarks returns every mark-shaped token in lyrics, in order of
// appearance, duplicates included.
func FindMarks(lyrics string) []string {
	return markPattern.FindAllString(lyrics, -1)
}
