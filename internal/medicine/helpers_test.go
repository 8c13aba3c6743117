package medicine

import "strings"

// missingFields lists the names of empty fields. A complete record returns nil.
func missingFields(i Info) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("medicine_name", i.MedicineName)
	for f := Field(0); f < numFields; f++ {
		check(f.String(), i.Get(f))
	}
	check("image_url", i.ImageURL)
	check("detection_method", string(i.DetectionMethod))
	check("tamil_data.name", i.TamilData.Name)
	check("tamil_data.uses", i.TamilData.Uses)
	check("tamil_data.dosage", i.TamilData.Dosage)
	check("tamil_data.precautions", i.TamilData.Precautions)
	return missing
}
