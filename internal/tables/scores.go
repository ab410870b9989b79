package tables

import (
	"strconv"
	"strings"
)

// Classifier score table column names.
const (
	ColScore = "score"
)

// LoadScores loads the per-sample expression classifier scores.
// Scores must be in [0,1]; samples absent from the table have no score.
func LoadScores(path string) (map[string]float64, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require(ColBiospecimenID, ColScore)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		sample := strings.TrimSpace(fields[idx[0]])
		raw := strings.TrimSpace(fields[idx[1]])
		if sample == "" || raw == "" || raw == "NA" {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, r.errf("invalid score %q: %v", raw, err)
		}
		if score < 0 || score > 1 {
			return nil, r.errf("score %v out of range [0,1]", score)
		}
		scores[sample] = score
	}
	return scores, nil
}
