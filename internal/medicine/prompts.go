package medicine

import "fmt"

// IdentifyPrompt accompanies the uploaded image when asking for the medicine name.
const IdentifyPrompt = "Provide only the medicine name of the image. Strictly only the name"

// DetailPrompt asks for the 2-3 line per section format parsed by Normalize.
func DetailPrompt(name string) string {
	return fmt.Sprintf(`As a doctor, provide SHORT medical information about '%s'.

Format each section in exactly 2-3 lines maximum:

Uses: [Exactly 2-3 lines - what conditions it treats]
Dosage: [Exactly 2-3 lines - standard adult dosage]
Precautions: [Exactly 2-3 lines - main warnings]
Side Effects: [Exactly 2-3 lines - common effects]
Food Restrictions: [Exactly 2-3 lines - food/alcohol interactions]
Category: [One line - medicine type]
Brand: [One line - common brand names]

IMPORTANT: Keep each section VERY CONCISE. Maximum 3 lines per section.
Each line should be short and clear. No long paragraphs.`, name)
}

// SimplePrompt asks for the 1-2 line per section format parsed by NormalizeSimple.
func SimplePrompt(name string) string {
	return fmt.Sprintf(`Provide medical information about '%s' in this EXACT format:

Uses: [2 lines maximum]
Dosage: [2 lines maximum]
Precautions: [2 lines maximum]
Side Effects: [2 lines maximum]
Food: [2 lines maximum]
Type: [1 line]
Brands: [1 line]

Keep every section SHORT. 2 lines maximum per section.`, name)
}

// SearchPrompt wraps a free-text question from /search.
func SearchPrompt(query string) string {
	return "As a medical assistant, provide short answer: " + query
}
