package counselor

import (
	"strings"
	"testing"
)

func TestLookupEducation(t *testing.T) {
	tests := []struct {
		name        string
		careerName  string
		cluster     string
		wantCourse  string
		wantCollege string
	}{
		{
			name:        "software keyword in career name",
			careerName:  "Software Engineer",
			cluster:     "Technology",
			wantCourse:  "Computer Science",
			wantCollege: "MIT",
		},
		{
			name:        "keyword match is case insensitive",
			careerName:  "DATA Scientist",
			cluster:     "",
			wantCourse:  "Data Science",
			wantCollege: "Harvard",
		},
		{
			name:        "keyword found via cluster",
			careerName:  "Pediatrician",
			cluster:     "Doctor / Healthcare",
			wantCourse:  "MBBS",
			wantCollege: "Johns Hopkins",
		},
		{
			name:        "earlier table entry wins over later",
			careerName:  "Software Data Engineer",
			cluster:     "",
			wantCourse:  "Computer Science",
			wantCollege: "MIT",
		},
		{
			name:        "no match falls back to defaults",
			careerName:  "Marine Biologist",
			cluster:     "Ocean",
			wantCourse:  "Related Field Fundamentals",
			wantCollege: "Top universities in your region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping := LookupEducation(tt.careerName, tt.cluster)

			if len(mapping.Courses) == 0 || mapping.Courses[0] != tt.wantCourse {
				t.Errorf("Courses[0] = %v, want %q", mapping.Courses, tt.wantCourse)
			}
			if len(mapping.Colleges) == 0 || mapping.Colleges[0] != tt.wantCollege {
				t.Errorf("Colleges[0] = %v, want %q", mapping.Colleges, tt.wantCollege)
			}
		})
	}
}

func TestLookupVideo(t *testing.T) {
	t.Run("keyword match", func(t *testing.T) {
		got := LookupVideo("Software Engineer", "Technology")
		if !strings.Contains(got, "software+engineer") {
			t.Errorf("URL = %q, want software engineer search", got)
		}
	})

	t.Run("first keyword wins", func(t *testing.T) {
		// "software" sits before "engineer" in the table.
		got := LookupVideo("Software Engineer", "")
		want := dayInLifeSearch("software engineer")
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})

	t.Run("fallback searches the career name itself", func(t *testing.T) {
		got := LookupVideo("Ethnomusicologist", "")
		want := dayInLifeSearch("Ethnomusicologist")
		if got != want {
			t.Errorf("URL = %q, want %q", got, want)
		}
	})
}

func TestEnrichPaths(t *testing.T) {
	paths := []CareerPath{
		{
			Name:    "Software Engineer",
			Cluster: "Technology",
		},
		{
			Name:              "UX Designer",
			Cluster:           "Design",
			DayInLifeVideo:    "https://example.com/custom",
			SuggestedCourses:  []string{"Custom Course"},
			SuggestedColleges: []string{"Custom College"},
		},
	}

	EnrichPaths(paths)

	if len(paths[0].SuggestedCourses) == 0 {
		t.Error("empty courses should be backfilled")
	}
	if len(paths[0].SuggestedColleges) == 0 {
		t.Error("empty colleges should be backfilled")
	}
	if paths[0].DayInLifeVideo == "" {
		t.Error("empty video should be backfilled")
	}

	// Model supplied values stay untouched.
	if paths[1].DayInLifeVideo != "https://example.com/custom" {
		t.Errorf("DayInLifeVideo = %q, want custom value kept", paths[1].DayInLifeVideo)
	}
	if len(paths[1].SuggestedCourses) != 1 || paths[1].SuggestedCourses[0] != "Custom Course" {
		t.Errorf("SuggestedCourses = %v, want custom value kept", paths[1].SuggestedCourses)
	}
	if len(paths[1].SuggestedColleges) != 1 || paths[1].SuggestedColleges[0] != "Custom College" {
		t.Errorf("SuggestedColleges = %v, want custom value kept", paths[1].SuggestedColleges)
	}
}
