package medicine

// seedSummary is the record Normalize starts from before parsing.
func seedSummary(name string) Summary {
	return Summary{
		Uses:            name + " treats various medical conditions.",
		Dosage:          "Dosage depends on condition. Consult doctor.",
		Precautions:     "Always consult healthcare provider before use.",
		SideEffects:     "May cause side effects. Monitor your response.",
		FoodRestriction: "Take as directed. Follow food guidelines.",
		Category:        "General Medicine",
		Brand:           "Various pharmaceutical brands",
	}
}

// paddingLine is appended to a multi-line field until it holds two lines.
func paddingLine(f Field, name string) string {
	switch f {
	case Uses:
		return name + " is used for medical treatment."
	case Dosage:
		return "Consult your doctor for proper dosage."
	case Precautions:
		return "Always follow medical advice."
	case SideEffects:
		return "Report any unusual symptoms."
	case FoodRestriction:
		return "Follow dietary guidelines."
	}
	return ""
}

// FallbackSummary is returned by Normalize when the oracle produced nothing usable.
func FallbackSummary(name string) Summary {
	return Summary{
		Uses:            name + " treats medical conditions.\nConsult doctor for specific uses.\nUsed for appropriate symptoms.",
		Dosage:          "Dosage varies by condition.\nFollow doctor's prescription.\nNever self-medicate.",
		Precautions:     "Consult doctor before use.\nInform about existing conditions.\nMonitor for reactions.",
		SideEffects:     "May cause mild effects.\nReport severe symptoms.\nSeek help if needed.",
		FoodRestriction: "Take as directed.\nSome food interactions possible.\nFollow dietary advice.",
		Category:        "Medicine",
		Brand:           "Various brands available",
	}
}

// simpleDefaults replaces any field NormalizeSimple finds too short.
func simpleDefaults(name string) Summary {
	return Summary{
		Uses:            name + " treats medical conditions.\nConsult doctor for uses.",
		Dosage:          "Follow prescribed dosage.\nNever exceed recommended amount.",
		Precautions:     "Consult doctor first.\nInform about medical history.",
		SideEffects:     "Monitor for reactions.\nReport severe symptoms.",
		FoodRestriction: "Follow food guidelines.\nSome interactions possible.",
		Category:        "Medicine",
		Brand:           "Various brands",
	}
}

// SimpleFallbackSummary is returned by NormalizeSimple when the oracle produced nothing usable.
func SimpleFallbackSummary(name string) Summary {
	return Summary{
		Uses:            name + " treats conditions.\nSee doctor for details.",
		Dosage:          "Take as prescribed.\nFollow instructions.",
		Precautions:     "Consult doctor.\nBe cautious.",
		SideEffects:     "May cause effects.\nMonitor yourself.",
		FoodRestriction: "Take properly.\nWatch interactions.",
		Category:        "Medicine",
		Brand:           "Various",
	}
}

// DemoInfo is served by /result when the session has no scan yet.
func DemoInfo() Info {
	return Info{
		MedicineName: "Paracetamol",
		Summary: Summary{
			Brand:           "Crocin, Tylenol, Calpol",
			Category:        "Analgesic/Antipyretic",
			Uses:            "Pain relief and fever reduction. Used for headaches, muscle aches.",
			Dosage:          "Adults: 500-1000mg every 4-6 hours. Maximum 4000mg per day.",
			Precautions:     "Do not exceed recommended dose. Avoid if allergic. Consult doctor.",
			SideEffects:     "Rare: skin rash. Overdose may cause liver damage.",
			FoodRestriction: "Can be taken with or without food. Avoid alcohol.",
		},
		ImageURL:        PlaceholderImageURL,
		DetectionMethod: DemoMode,
		TamilData: Secondary{
			Name:        "பாராசிட்டமால்",
			Uses:        "வலி நிவாரணம் மற்றும் காய்ச்சல் குறைப்பு.",
			Dosage:      "பெரியவர்கள்: 500-1000 மி.கி ஒவ்வொரு 4-6 மணி நேரத்திற்கு.",
			Precautions: "வைத்தியரைக் கலந்தாலோசிக்கவும்.",
		},
	}
}

// ScanRequiredInfo is stored when an accepted upload could not be processed.
func ScanRequiredInfo() Info {
	return Info{
		MedicineName: "Medicine",
		Summary: Summary{
			Brand:           "Various brands",
			Category:        "General",
			Uses:            "Upload a medicine image to get information.",
			Dosage:          "Consult doctor for proper dosage.",
			Precautions:     "Always verify medicine with healthcare provider.",
			SideEffects:     "Information will appear after scan.",
			FoodRestriction: "Take as directed by your doctor.",
		},
		ImageURL:        PlaceholderImageURL,
		DetectionMethod: ScanRequired,
		TamilData: Secondary{
			Name:        "மருந்து",
			Uses:        "தகவல் இல்லை",
			Dosage:      "வைத்தியரைக் கலந்தாலோசிக்கவும்",
			Precautions: "வைத்தியரைக் கலந்தாலோசிக்கவும்",
		},
	}
}
