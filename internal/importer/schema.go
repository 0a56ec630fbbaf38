package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TimetableSchema is the top-level structure of a timetable import file.
type TimetableSchema struct {
	Semester SemesterImport  `json:"semester" yaml:"semester"`
	Rooms    []string        `json:"rooms" yaml:"rooms"`
	Lessons  []LessonImport  `json:"lessons,omitempty" yaml:"lessons,omitempty"`
	Sessions []SessionImport `json:"sessions" yaml:"sessions"`
}

// SemesterImport holds the semester bounds, both dd/MM/yyyy.
type SemesterImport struct {
	Name           string `json:"name" yaml:"name"`
	FirstWeekStart string `json:"first_week_start" yaml:"first_week_start"`
	LastWeekEnd    string `json:"last_week_end" yaml:"last_week_end"`
}

type LessonImport struct {
	Number int    `json:"number" yaml:"number"`
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
}

// SessionImport defines one recurring session. Day accepts full names in any
// case or three-letter abbreviations.
type SessionImport struct {
	Room        string   `json:"room" yaml:"room"`
	Day         string   `json:"day" yaml:"day"`
	StartPeriod int      `json:"start_period" yaml:"start_period"`
	EndPeriod   int      `json:"end_period" yaml:"end_period"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	Course      string   `json:"course" yaml:"course"`
	Instructor  string   `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Note        string   `json:"note,omitempty" yaml:"note,omitempty"`
	CancelledOn []string `json:"cancelled_on,omitempty" yaml:"cancelled_on,omitempty"`
}

// LoadTimetableSchema reads an import file, choosing the decoder from the
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadTimetableSchema(path string) (*TimetableSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTimetableSchema(data, filepath.Ext(path))
}

// ParseTimetableSchema decodes data in the format named by ext.
func ParseTimetableSchema(data []byte, ext string) (*TimetableSchema, error) {
	var schema TimetableSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
