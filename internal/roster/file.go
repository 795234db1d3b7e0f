package roster

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/i18n"
)

// fileLearner is the YAML shape of a learner:
//
//	learners:
//	  - id: 1
//	    language: ta
//	    scores:
//	      data_structures: 85
//	      algorithms: 78
type fileLearner struct {
	ID       int            `yaml:"id"`
	Language string         `yaml:"language"`
	Scores   map[string]int `yaml:"scores"`
}

type fileRoster struct {
	Learners []fileLearner `yaml:"learners"`
}

// Decode reads a YAML roster document.
func Decode(r io.Reader) (*Roster, error) {
	var doc fileRoster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	records := make([]LearnerRecord, 0, len(doc.Learners))
	for _, fl := range doc.Learners {
		rec, err := fromStrings(fl.ID, fl.Language, fl.Scores)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return New(records...)
}

// LoadFile reads a YAML roster from path.
func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes r as a YAML roster document.
func Encode(w io.Writer, r *Roster) error {
	var doc fileRoster
	for _, id := range r.IDs() {
		rec := r.records[id]
		fl := fileLearner{ID: rec.ID, Language: string(rec.Language), Scores: map[string]int{}}
		for m, s := range rec.Scores {
			fl.Scores[string(m)] = s
		}
		doc.Learners = append(doc.Learners, fl)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}

func fromStrings(id int, language string, scores map[string]int) (LearnerRecord, error) {
	rec := LearnerRecord{
		ID:       id,
		Language: i18n.Language(language),
		Scores:   make(map[curriculum.Module]int, len(scores)),
	}
	for k, v := range scores {
		m, err := curriculum.ParseModule(k)
		if err != nil {
			return LearnerRecord{}, &InvalidRecordError{ID: id, Reason: err.Error()}
		}
		rec.Scores[m] = v
	}
	return rec, nil
}
