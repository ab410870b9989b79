package tables

import "strings"

// Histology holds per-sample clinical metadata from the histologies table.
type Histology struct {
	Sample         string
	PatientID      string
	BroadHistology string
	Predisposition string // cancer predisposition syndrome label, "" when none
}

// Histology table column names.
const (
	ColPatientID       = "Kids_First_Participant_ID"
	ColBroadHistology  = "broad_histology"
	ColPredispositions = "cancer_predispositions"
)

// LoadHistologies loads the histologies metadata table keyed by sample id.
func LoadHistologies(path string) (map[string]Histology, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require(ColBiospecimenID)
	if err != nil {
		return nil, err
	}
	patientIdx := r.Optional(ColPatientID)
	broadIdx := r.Optional(ColBroadHistology)
	predIdx := r.Optional(ColPredispositions)

	histologies := make(map[string]Histology)
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		h := Histology{Sample: strings.TrimSpace(fields[idx[0]])}
		if h.Sample == "" {
			continue
		}
		if patientIdx >= 0 {
			h.PatientID = strings.TrimSpace(fields[patientIdx])
		}
		if broadIdx >= 0 {
			h.BroadHistology = strings.TrimSpace(fields[broadIdx])
		}
		if predIdx >= 0 {
			h.Predisposition = normalizePredisposition(fields[predIdx])
		}
		histologies[h.Sample] = h
	}
	return histologies, nil
}

// normalizePredisposition maps table encodings of "no syndrome" to the
// empty string and trims the label otherwise.
func normalizePredisposition(raw string) string {
	p := strings.TrimSpace(raw)
	switch p {
	case "", "NA", "None documented", "Not Applicable", "Not Reported":
		return ""
	}
	return p
}
