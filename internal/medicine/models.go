package medicine

// DetectionMethod records how a MedicineInfo was produced.
type DetectionMethod string

const (
	AIRecognition DetectionMethod = "AI Recognition"
	ScanRequired  DetectionMethod = "Scan Required"
	DemoMode      DetectionMethod = "Demo Mode"
)

// PlaceholderImageURL is shown when no uploaded image is available.
const PlaceholderImageURL = "/static/images/medicine-placeholder.jpg"

// Field names one of the seven normalized sections.
type Field int

const (
	Uses Field = iota
	Dosage
	Precautions
	SideEffects
	FoodRestriction
	Category
	Brand
	numFields
)

var fieldNames = [numFields]string{"uses", "dosage", "precautions", "side_effects", "food_restriction", "category", "brand"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "none"
	}
	return fieldNames[f]
}

// MultiLine reports whether the field holds several lines of text.
func (f Field) MultiLine() bool {
	return f >= Uses && f <= FoodRestriction
}

// Summary is the normalized, fixed-shape part of a medicine record.
type Summary struct {
	Uses            string `json:"uses"`
	Dosage          string `json:"dosage"`
	Precautions     string `json:"precautions"`
	SideEffects     string `json:"side_effects"`
	FoodRestriction string `json:"food_restriction"`
	Category        string `json:"category"`
	Brand           string `json:"brand"`
}

// Get returns the value of field f.
func (s *Summary) Get(f Field) string {
	if p := s.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set stores v in field f.
func (s *Summary) Set(f Field, v string) {
	if p := s.ptr(f); p != nil {
		*p = v
	}
}

func (s *Summary) ptr(f Field) *string {
	switch f {
	case Uses:
		return &s.Uses
	case Dosage:
		return &s.Dosage
	case Precautions:
		return &s.Precautions
	case SideEffects:
		return &s.SideEffects
	case FoodRestriction:
		return &s.FoodRestriction
	case Category:
		return &s.Category
	case Brand:
		return &s.Brand
	}
	return nil
}

// Secondary is the short secondary-language (Tamil) record.
type Secondary struct {
	Name        string `json:"name"`
	Uses        string `json:"uses"`
	Dosage      string `json:"dosage"`
	Precautions string `json:"precautions"`
}

// Info is the complete record shown on the result view.
type Info struct {
	MedicineName string `json:"medicine_name"`
	Summary
	ImageURL        string          `json:"image_url"`
	DetectionMethod DetectionMethod `json:"detection_method"`
	TamilData       Secondary       `json:"tamil_data"`
}
